package like

import (
	"context"
	"errors"

	"github.com/xiebiao/bookclub/internal/domain/content"
	"github.com/xiebiao/bookclub/internal/domain/shared"
	"github.com/xiebiao/bookclub/internal/domain/user"
)

// Service 点赞领域服务
type Service interface {
	// Like 点赞（幂等）
	// 已点赞时返回已有记录，created=false
	Like(ctx context.Context, userID uint, target shared.Target) (l *Like, created bool, err error)
	Get(ctx context.Context, id uint) (*Like, error)
	Delete(ctx context.Context, id uint) error
	// Unlike 取消点赞，未点赞时返回ErrLikeNotFound
	Unlike(ctx context.Context, userID uint, target shared.Target) error
	HasLiked(ctx context.Context, userID uint, target shared.Target) (bool, error)
	Count(ctx context.Context, target shared.Target) (int64, error)
	List(ctx context.Context, params ListParams) ([]*Like, int64, error)
}

type service struct {
	repo    Repository
	users   user.Repository
	targets *content.Checker
}

// NewService 创建点赞领域服务
func NewService(repo Repository, users user.Repository, targets *content.Checker) Service {
	return &service{repo: repo, users: users, targets: targets}
}

func (s *service) Like(ctx context.Context, userID uint, target shared.Target) (*Like, bool, error) {
	l, err := New(userID, target)
	if err != nil {
		return nil, false, err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, false, err
	}
	if err := s.targets.Ensure(ctx, target); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.FindByUserAndTarget(ctx, userID, target)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrLikeNotFound) {
		return nil, false, err
	}

	if err := s.repo.Create(ctx, l); err != nil {
		// 并发点赞：唯一索引冲突时返回胜出的那条记录
		if errors.Is(err, ErrAlreadyLiked) {
			existing, findErr := s.repo.FindByUserAndTarget(ctx, userID, target)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return l, true, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Like, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Unlike(ctx context.Context, userID uint, target shared.Target) error {
	if err := target.Check(AllowedTargets...); err != nil {
		return err
	}
	l, err := s.repo.FindByUserAndTarget(ctx, userID, target)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, l.ID)
}

func (s *service) HasLiked(ctx context.Context, userID uint, target shared.Target) (bool, error) {
	if err := target.Check(AllowedTargets...); err != nil {
		return false, err
	}
	_, err := s.repo.FindByUserAndTarget(ctx, userID, target)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrLikeNotFound) {
		return false, nil
	}
	return false, err
}

func (s *service) Count(ctx context.Context, target shared.Target) (int64, error) {
	if err := target.Check(AllowedTargets...); err != nil {
		return 0, err
	}
	return s.repo.Count(ctx, target)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Like, int64, error) {
	if params.Target != nil {
		if err := params.Target.Check(AllowedTargets...); err != nil {
			return nil, 0, err
		}
	}
	return s.repo.List(ctx, params)
}
