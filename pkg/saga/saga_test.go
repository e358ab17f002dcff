package saga

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

func recordStep(log *[]string, name string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		*log = append(*log, name)
		return nil
	}
}

func TestSaga_Execute_Success(t *testing.T) {
	var executed []string

	s := NewSaga("test", 5*time.Second)
	s.AddStep("创建账号", recordStep(&executed, "创建账号"), recordStep(&executed, "删除账号"))
	s.AddStep("发布事件", recordStep(&executed, "发布事件"), nil)

	require.NoError(t, s.Execute(context.Background()))
	assert.Equal(t, []string{"创建账号", "发布事件"}, executed)
}

func TestSaga_Execute_FailureAndCompensate(t *testing.T) {
	var executed []string

	s := NewSaga("test", 5*time.Second)
	s.AddStep("创建账号", recordStep(&executed, "创建账号"), recordStep(&executed, "删除账号"))
	s.AddStep("创建资料", recordStep(&executed, "创建资料"), recordStep(&executed, "删除资料"))
	s.AddStep("发布事件",
		func(ctx context.Context) error {
			executed = append(executed, "发布事件")
			return errors.New("broker unavailable")
		},
		recordStep(&executed, "不应执行"),
	)

	err := s.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "发布事件")

	// 失败步骤自身不补偿，已完成步骤逆序补偿
	assert.Equal(t, []string{"创建账号", "创建资料", "发布事件", "删除资料", "删除账号"}, executed)
}

func TestSaga_Execute_PreservesAppError(t *testing.T) {
	s := NewSaga("test", 0)
	s.AddStep("创建账号", func(ctx context.Context) error {
		return apperrors.BadRequest("邮箱已被注册")
	}, nil)

	err := s.Execute(context.Background())
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.StatusOf(err))
	assert.Equal(t, "邮箱已被注册", apperrors.GetAppError(err).Message)
}

func TestSaga_Execute_Timeout(t *testing.T) {
	var executed []string

	s := NewSaga("test", 20*time.Millisecond)
	s.AddStep("创建账号", recordStep(&executed, "创建账号"), func(ctx context.Context) error {
		// 补偿使用不可取消的Context
		if ctx.Err() != nil {
			return ctx.Err()
		}
		executed = append(executed, "删除账号")
		return nil
	})
	s.AddStep("慢步骤", func(ctx context.Context) error {
		time.Sleep(50 * time.Millisecond)
		return nil
	}, nil)
	s.AddStep("不会执行", recordStep(&executed, "不会执行"), nil)

	err := s.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, []string{"创建账号", "删除账号"}, executed)
}

func TestSaga_CompensateFailureContinues(t *testing.T) {
	var executed []string

	s := NewSaga("test", 0)
	s.AddStep("a", recordStep(&executed, "a"), recordStep(&executed, "undo a"))
	s.AddStep("b", recordStep(&executed, "b"), func(ctx context.Context) error {
		return errors.New("undo failed")
	})
	s.AddStep("c", func(ctx context.Context) error { return errors.New("boom") }, nil)

	require.Error(t, s.Execute(context.Background()))
	assert.Equal(t, []string{"a", "b", "undo a"}, executed)
}
