package review

import (
	"context"
	"time"

	"github.com/xiebiao/bookclub/internal/domain/book"
	"github.com/xiebiao/bookclub/internal/domain/user"
)

// Service 书评领域服务
type Service interface {
	// Create 业务规则：作者和图书必须存在，评分1-5
	Create(ctx context.Context, r *Review) error
	Get(ctx context.Context, id uint) (*Review, error)
	Update(ctx context.Context, id uint, params UpdateParams) (*Review, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*Review, int64, error)
}

type service struct {
	repo  Repository
	users user.Repository
	books book.Repository
}

// NewService 创建书评领域服务
func NewService(repo Repository, users user.Repository, books book.Repository) Service {
	return &service{repo: repo, users: users, books: books}
}

func (s *service) Create(ctx context.Context, r *Review) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if _, err := s.users.FindByID(ctx, r.UserID); err != nil {
		return err
	}
	if _, err := s.books.FindByID(ctx, r.BookID); err != nil {
		return err
	}

	now := time.Now()
	r.CreatedAt, r.UpdatedAt = now, now
	return s.repo.Create(ctx, r)
}

func (s *service) Get(ctx context.Context, id uint) (*Review, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id uint, params UpdateParams) (*Review, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.Apply(params)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Review, int64, error) {
	return s.repo.List(ctx, params)
}
