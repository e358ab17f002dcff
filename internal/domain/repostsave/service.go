package repostsave

import (
	"context"
	"errors"

	"github.com/xiebiao/bookclub/internal/domain/content"
	"github.com/xiebiao/bookclub/internal/domain/shared"
	"github.com/xiebiao/bookclub/internal/domain/user"
)

// Service 转发/收藏领域服务
type Service interface {
	// Create 同一用户对同一对象的同一动作只能有一条记录
	Create(ctx context.Context, userID uint, action ActionType, target shared.Target) (*RepostSave, error)
	Get(ctx context.Context, id uint) (*RepostSave, error)
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, userID uint, target shared.Target, action ActionType) (bool, error)
	Count(ctx context.Context, target shared.Target, action ActionType) (int64, error)
	List(ctx context.Context, params ListParams) ([]*RepostSave, int64, error)
}

type service struct {
	repo    Repository
	users   user.Repository
	targets *content.Checker
}

// NewService 创建转发/收藏领域服务
func NewService(repo Repository, users user.Repository, targets *content.Checker) Service {
	return &service{repo: repo, users: users, targets: targets}
}

func (s *service) Create(ctx context.Context, userID uint, action ActionType, target shared.Target) (*RepostSave, error) {
	rs, err := New(userID, action, target)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.targets.Ensure(ctx, target); err != nil {
		return nil, err
	}

	exists, err := s.Exists(ctx, userID, target, action)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	if err := s.repo.Create(ctx, rs); err != nil {
		return nil, err
	}
	return rs, nil
}

func (s *service) Get(ctx context.Context, id uint) (*RepostSave, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Exists(ctx context.Context, userID uint, target shared.Target, action ActionType) (bool, error) {
	if !action.Valid() {
		return false, ErrInvalidAction
	}
	if err := target.Check(AllowedTargets...); err != nil {
		return false, err
	}
	_, err := s.repo.Find(ctx, userID, target, action)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrRepostSaveNotFound) {
		return false, nil
	}
	return false, err
}

func (s *service) Count(ctx context.Context, target shared.Target, action ActionType) (int64, error) {
	if !action.Valid() {
		return 0, ErrInvalidAction
	}
	if err := target.Check(AllowedTargets...); err != nil {
		return 0, err
	}
	return s.repo.Count(ctx, target, action)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*RepostSave, int64, error) {
	if params.Target != nil {
		if err := params.Target.Check(AllowedTargets...); err != nil {
			return nil, 0, err
		}
	}
	return s.repo.List(ctx, params)
}
