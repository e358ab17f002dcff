package interaction

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/bookclub/internal/domain/book"
	"github.com/xiebiao/bookclub/internal/domain/user"
)

// Service 阅读记录领域服务
type Service interface {
	// Create 业务规则：用户和图书必须存在，同一用户对同一本书只能有一条记录
	Create(ctx context.Context, i *Interaction) error
	Get(ctx context.Context, id uint) (*Interaction, error)
	Update(ctx context.Context, id uint, params UpdateParams) (*Interaction, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*Interaction, int64, error)
}

type service struct {
	repo  Repository
	users user.Repository
	books book.Repository
}

// NewService 创建阅读记录领域服务
func NewService(repo Repository, users user.Repository, books book.Repository) Service {
	return &service{repo: repo, users: users, books: books}
}

func (s *service) Create(ctx context.Context, i *Interaction) error {
	// 1. 关联实体必须存在
	if _, err := s.users.FindByID(ctx, i.UserID); err != nil {
		return err
	}
	if _, err := s.books.FindByID(ctx, i.BookID); err != nil {
		return err
	}

	// 2. 重复检查（唯一索引兜底）
	_, err := s.repo.FindByUserAndBook(ctx, i.UserID, i.BookID)
	if err == nil {
		return ErrInteractionExists
	}
	if !errors.Is(err, ErrInteractionNotFound) {
		return err
	}

	// 3. 默认值与校验
	now := time.Now()
	if i.Status == "" {
		i.Status = StatusWantToRead
	}
	i.stampProgress(now)
	if err := i.Validate(); err != nil {
		return err
	}

	i.CreatedAt, i.UpdatedAt = now, now
	return s.repo.Create(ctx, i)
}

func (s *service) Get(ctx context.Context, id uint) (*Interaction, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id uint, params UpdateParams) (*Interaction, error) {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	i.Apply(params, time.Now())
	if err := i.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Interaction, int64, error) {
	return s.repo.List(ctx, params)
}
