package user

import (
	"context"
	"time"

	"github.com/xiebiao/bookclub/internal/domain/profile"
	"github.com/xiebiao/bookclub/internal/domain/user"
	"github.com/xiebiao/bookclub/internal/infrastructure/events"
	"github.com/xiebiao/bookclub/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookclub/pkg/metrics"
	"github.com/xiebiao/bookclub/pkg/saga"
)

const registerSagaTimeout = 10 * time.Second

// RegisterUseCase 用户注册用例
// 注册是一个Saga：
//  1. 创建账号：同一事务内创建用户和空资料；补偿为物理删除两者
//  2. 发布user.registered事件；失败时触发补偿，注册整体失败
type RegisterUseCase struct {
	userService user.Service
	users       user.Repository
	profiles    profile.Repository
	txManager   *mysql.TxManager
	publisher   events.Publisher
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(
	userService user.Service,
	users user.Repository,
	profiles profile.Repository,
	txManager *mysql.TxManager,
	publisher events.Publisher,
) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
		users:       users,
		profiles:    profiles,
		txManager:   txManager,
		publisher:   publisher,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

// UserRegisteredPayload user.registered事件内容
type UserRegisteredPayload struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	var created *user.User

	s := saga.NewSaga("register_user", registerSagaTimeout)
	s.AddStep("创建账号",
		func(ctx context.Context) error {
			return uc.txManager.Transaction(ctx, func(ctx context.Context) error {
				u, err := uc.userService.Register(ctx, req.Username, req.Email, req.Password)
				if err != nil {
					return err
				}
				if err := uc.profiles.Create(ctx, profile.NewEmptyProfile(u.ID, u.Username)); err != nil {
					return err
				}
				created = u
				return nil
			})
		},
		func(ctx context.Context) error {
			if created == nil {
				return nil
			}
			return uc.txManager.Transaction(ctx, func(ctx context.Context) error {
				if err := uc.profiles.DeleteByUserID(ctx, created.ID); err != nil {
					return err
				}
				return uc.users.Purge(ctx, created.ID)
			})
		},
	)
	s.AddStep("发布注册事件",
		func(ctx context.Context) error {
			return uc.publisher.Publish(ctx, events.New(events.UserRegistered, UserRegisteredPayload{
				UserID:   created.ID,
				Username: created.Username,
				Email:    created.Email,
			}))
		},
		nil,
	)

	if err := s.Execute(ctx); err != nil {
		return nil, err
	}

	metrics.RecordAction("user", metrics.ActionCreate)
	resp := toResponse(created)
	return &resp, nil
}
