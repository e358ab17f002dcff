package follow

import (
	"context"
	"errors"

	"github.com/xiebiao/bookclub/internal/domain/book"
	"github.com/xiebiao/bookclub/internal/domain/shared"
	"github.com/xiebiao/bookclub/internal/domain/user"
)

// Service 关注领域服务
type Service interface {
	// Follow 业务规则：关注者和被关注对象必须存在，不能关注自己，不能重复关注
	Follow(ctx context.Context, followerID uint, target shared.Target) (*Follow, error)
	Get(ctx context.Context, id uint) (*Follow, error)
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, followerID uint, target shared.Target) (bool, error)
	List(ctx context.Context, params ListParams) ([]*Follow, int64, error)
	Stats(ctx context.Context, userID uint) (*Stats, error)
}

type service struct {
	repo  Repository
	users user.Repository
	books book.Repository
}

// NewService 创建关注领域服务
func NewService(repo Repository, users user.Repository, books book.Repository) Service {
	return &service{repo: repo, users: users, books: books}
}

func (s *service) Follow(ctx context.Context, followerID uint, target shared.Target) (*Follow, error) {
	f, err := New(followerID, target)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.FindByID(ctx, followerID); err != nil {
		return nil, err
	}
	switch target.Kind {
	case shared.TargetUser:
		_, err = s.users.FindByID(ctx, target.ID)
	case shared.TargetBook:
		_, err = s.books.FindByID(ctx, target.ID)
	}
	if err != nil {
		return nil, err
	}

	exists, err := s.Exists(ctx, followerID, target)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFollow
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Follow, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Exists(ctx context.Context, followerID uint, target shared.Target) (bool, error) {
	if err := target.Check(AllowedTargets...); err != nil {
		return false, err
	}
	_, err := s.repo.FindByFollowerAndTarget(ctx, followerID, target)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrFollowNotFound) {
		return false, nil
	}
	return false, err
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Follow, int64, error) {
	return s.repo.List(ctx, params)
}

func (s *service) Stats(ctx context.Context, userID uint) (*Stats, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	followers, err := s.repo.CountFollowers(ctx, shared.Target{Kind: shared.TargetUser, ID: userID})
	if err != nil {
		return nil, err
	}
	users, err := s.repo.CountFollowing(ctx, userID, shared.TargetUser)
	if err != nil {
		return nil, err
	}
	books, err := s.repo.CountFollowing(ctx, userID, shared.TargetBook)
	if err != nil {
		return nil, err
	}

	return &Stats{
		UserID:         userID,
		Followers:      followers,
		FollowingUsers: users,
		FollowingBooks: books,
	}, nil
}
