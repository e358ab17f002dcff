package quote

import (
	"context"
	"time"

	"github.com/xiebiao/bookclub/internal/domain/book"
	"github.com/xiebiao/bookclub/internal/domain/user"
)

// Service 书摘领域服务
type Service interface {
	Create(ctx context.Context, q *Quote) error
	Get(ctx context.Context, id uint) (*Quote, error)
	Update(ctx context.Context, id uint, params UpdateParams) (*Quote, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*Quote, int64, error)
}

type service struct {
	repo  Repository
	users user.Repository
	books book.Repository
}

// NewService 创建书摘领域服务
func NewService(repo Repository, users user.Repository, books book.Repository) Service {
	return &service{repo: repo, users: users, books: books}
}

func (s *service) Create(ctx context.Context, q *Quote) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if _, err := s.users.FindByID(ctx, q.UserID); err != nil {
		return err
	}
	if _, err := s.books.FindByID(ctx, q.BookID); err != nil {
		return err
	}

	now := time.Now()
	q.CreatedAt, q.UpdatedAt = now, now
	return s.repo.Create(ctx, q)
}

func (s *service) Get(ctx context.Context, id uint) (*Quote, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id uint, params UpdateParams) (*Quote, error) {
	q, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	q.Apply(params)
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Quote, int64, error) {
	return s.repo.List(ctx, params)
}
