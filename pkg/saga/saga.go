// Package saga 编排式Saga：按顺序执行步骤，任一步骤失败时逆序执行已完成步骤的补偿
//
// 用户注册使用它保证"创建账号"和"发布注册事件"要么都完成，要么账号被回滚：
//
//	s := saga.NewSaga("register_user", 10*time.Second)
//	s.AddStep("create_account", createAccount, purgeAccount)
//	s.AddStep("publish_registered", publishRegistered, nil)
//	if err := s.Execute(ctx); err != nil { ... }
package saga

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/xiebiao/bookclub/pkg/metrics"
)

// Step Saga步骤
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error // 可为nil（最后一步通常不需要补偿）
}

// Saga 一次性使用，不要并发调用Execute
type Saga struct {
	name     string
	steps    []Step
	executed []Step
	timeout  time.Duration
}

// NewSaga 创建Saga，timeout<=0表示不限制整体耗时
func NewSaga(name string, timeout time.Duration) *Saga {
	return &Saga{
		name:    name,
		steps:   make([]Step, 0),
		timeout: timeout,
	}
}

// AddStep 追加步骤
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) *Saga {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
	return s
}

// Execute 执行所有步骤
// 失败时返回的错误包装了步骤的原始错误，errors.As可以取到业务错误
func (s *Saga) Execute(ctx context.Context) (err error) {
	start := time.Now()
	defer func() {
		metrics.RecordSaga(s.name, time.Since(start).Seconds(), err)
	}()

	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log := zerolog.Ctx(ctx).With().Str("saga", s.name).Logger()

	for i, step := range s.steps {
		if ctxErr := runCtx.Err(); ctxErr != nil {
			s.compensate(ctx, log)
			return fmt.Errorf("saga[%s]超时: %w", s.name, ctxErr)
		}

		if step.Action != nil {
			if stepErr := step.Action(runCtx); stepErr != nil {
				log.Warn().Err(stepErr).Str("step", step.Name).Msg("saga步骤失败，开始补偿")
				s.compensate(ctx, log)
				return fmt.Errorf("saga[%s]步骤[%d:%s]执行失败: %w", s.name, i, step.Name, stepErr)
			}
		}

		s.executed = append(s.executed, step)
	}

	log.Debug().Int("steps", len(s.steps)).Msg("saga执行完成")
	return nil
}

// compensate 逆序补偿已执行步骤
// 使用不可取消的Context，避免补偿也因超时而中断；补偿失败只记录日志，继续补偿其余步骤
func (s *Saga) compensate(ctx context.Context, log zerolog.Logger) {
	ctx = context.WithoutCancel(ctx)
	for i := len(s.executed) - 1; i >= 0; i-- {
		step := s.executed[i]
		if step.Compensate == nil {
			continue
		}

		metrics.InitMetrics()
		metrics.SagaCompensationsTotal.WithLabelValues(s.name).Inc()
		if err := step.Compensate(ctx); err != nil {
			log.Error().Err(err).Str("step", step.Name).Msg("saga补偿失败")
		}
	}

	s.executed = nil
}
