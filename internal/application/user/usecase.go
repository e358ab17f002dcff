package user

import (
	"context"

	"github.com/xiebiao/bookclub/internal/application/common"
	"github.com/xiebiao/bookclub/internal/domain/profile"
	"github.com/xiebiao/bookclub/internal/domain/user"
	"github.com/xiebiao/bookclub/pkg/metrics"
)

// UseCase 用户查询、修改、删除
type UseCase struct {
	userService user.Service
	profiles    profile.Repository
	cascade     *common.Cascade
}

// NewUseCase 创建用户用例
func NewUseCase(userService user.Service, profiles profile.Repository, cascade *common.Cascade) *UseCase {
	return &UseCase{userService: userService, profiles: profiles, cascade: cascade}
}

func (uc *UseCase) Get(ctx context.Context, id uint) (*UserResponse, error) {
	u, err := uc.userService.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(u)
	return &resp, nil
}

// Update 只能修改自己的账号
func (uc *UseCase) Update(ctx context.Context, actorID, id uint, req UpdateRequest) (*UserResponse, error) {
	if err := common.Authorize(actorID, id); err != nil {
		return nil, err
	}
	u, err := uc.userService.Update(ctx, id, user.UpdateParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordAction("user", metrics.ActionUpdate)
	resp := toResponse(u)
	return &resp, nil
}

// Delete 软删除用户，同时删除资料和社交关系
func (uc *UseCase) Delete(ctx context.Context, actorID, id uint) error {
	if err := common.Authorize(actorID, id); err != nil {
		return err
	}
	err := uc.cascade.DeleteUser(ctx, id, func(ctx context.Context) error {
		if err := uc.userService.Delete(ctx, id); err != nil {
			return err
		}
		return uc.profiles.DeleteByUserID(ctx, id)
	})
	if err != nil {
		return err
	}
	metrics.RecordAction("user", metrics.ActionDelete)
	return nil
}

func (uc *UseCase) List(ctx context.Context, req ListRequest) (*common.Page[UserResponse], error) {
	p := req.Pagination()
	users, total, err := uc.userService.List(ctx, user.ListParams{Pagination: p, Keyword: req.Keyword})
	if err != nil {
		return nil, err
	}
	return common.NewPage(users, total, p, toResponse), nil
}
