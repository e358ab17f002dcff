package profile

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/bookclub/internal/domain/user"
)

// Service 用户资料领域服务
type Service interface {
	// Create 创建资料
	// 业务规则：用户必须存在，每个用户只能有一份资料
	Create(ctx context.Context, p *Profile) error
	Get(ctx context.Context, id uint) (*Profile, error)
	GetByUserID(ctx context.Context, userID uint) (*Profile, error)
	Update(ctx context.Context, id uint, params UpdateParams) (*Profile, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*Profile, int64, error)
}

type service struct {
	repo  Repository
	users user.Repository
}

// NewService 创建用户资料领域服务
func NewService(repo Repository, users user.Repository) Service {
	return &service{repo: repo, users: users}
}

func (s *service) Create(ctx context.Context, p *Profile) error {
	if _, err := s.users.FindByID(ctx, p.UserID); err != nil {
		return err
	}

	_, err := s.repo.FindByUserID(ctx, p.UserID)
	if err == nil {
		return ErrProfileExists
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return err
	}

	if err := validateBirthDate(p.BirthDate); err != nil {
		return err
	}
	if p.Gender == "" {
		p.Gender = GenderUnspecified
	}

	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	return s.repo.Create(ctx, p)
}

func (s *service) Get(ctx context.Context, id uint) (*Profile, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetByUserID(ctx context.Context, userID uint) (*Profile, error) {
	return s.repo.FindByUserID(ctx, userID)
}

func (s *service) Update(ctx context.Context, id uint, params UpdateParams) (*Profile, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateBirthDate(params.BirthDate); err != nil {
		return nil, err
	}

	p.Apply(params)
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Profile, int64, error) {
	return s.repo.List(ctx, params)
}

func validateBirthDate(d *time.Time) error {
	if d != nil && d.After(time.Now()) {
		return ErrInvalidBirthDate
	}
	return nil
}
