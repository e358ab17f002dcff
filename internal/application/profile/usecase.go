package profile

import (
	"context"
	"time"

	"github.com/xiebiao/bookclub/internal/application/common"
	"github.com/xiebiao/bookclub/internal/domain/profile"
	"github.com/xiebiao/bookclub/pkg/metrics"
)

// ProfileResponse 用户资料
type ProfileResponse struct {
	ID          uint           `json:"id"`
	UserID      uint           `json:"user_id"`
	DisplayName string         `json:"display_name"`
	Bio         string         `json:"bio"`
	AvatarURL   string         `json:"avatar_url"`
	Location    string         `json:"location"`
	Website     string         `json:"website"`
	BirthDate   *time.Time     `json:"birth_date"`
	Gender      profile.Gender `json:"gender"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func toResponse(p *profile.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		Bio:         p.Bio,
		AvatarURL:   p.AvatarURL,
		Location:    p.Location,
		Website:     p.Website,
		BirthDate:   p.BirthDate,
		Gender:      p.Gender,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// CreateRequest 创建资料
type CreateRequest struct {
	UserID      uint
	DisplayName string
	Bio         string
	AvatarURL   string
	Location    string
	Website     string
	BirthDate   *time.Time
	Gender      profile.Gender
}

// ListRequest 列表查询
type ListRequest struct {
	common.PageQuery
	Location string
}

// UseCase 用户资料用例
type UseCase struct {
	service profile.Service
}

// NewUseCase 创建用户资料用例
func NewUseCase(service profile.Service) *UseCase {
	return &UseCase{service: service}
}

func (uc *UseCase) Create(ctx context.Context, actorID uint, req CreateRequest) (*ProfileResponse, error) {
	userID, err := common.ResolveOwner(actorID, req.UserID)
	if err != nil {
		return nil, err
	}
	p := &profile.Profile{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		Location:    req.Location,
		Website:     req.Website,
		BirthDate:   req.BirthDate,
		Gender:      req.Gender,
	}
	if err := uc.service.Create(ctx, p); err != nil {
		return nil, err
	}
	metrics.RecordAction("user_profile", metrics.ActionCreate)
	resp := toResponse(p)
	return &resp, nil
}

func (uc *UseCase) Get(ctx context.Context, id uint) (*ProfileResponse, error) {
	p, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(p)
	return &resp, nil
}

func (uc *UseCase) GetByUserID(ctx context.Context, userID uint) (*ProfileResponse, error) {
	p, err := uc.service.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toResponse(p)
	return &resp, nil
}

func (uc *UseCase) Update(ctx context.Context, actorID, id uint, params profile.UpdateParams) (*ProfileResponse, error) {
	if err := uc.authorize(ctx, actorID, id); err != nil {
		return nil, err
	}
	p, err := uc.service.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	metrics.RecordAction("user_profile", metrics.ActionUpdate)
	resp := toResponse(p)
	return &resp, nil
}

func (uc *UseCase) Delete(ctx context.Context, actorID, id uint) error {
	if err := uc.authorize(ctx, actorID, id); err != nil {
		return err
	}
	if err := uc.service.Delete(ctx, id); err != nil {
		return err
	}
	metrics.RecordAction("user_profile", metrics.ActionDelete)
	return nil
}

func (uc *UseCase) List(ctx context.Context, req ListRequest) (*common.Page[ProfileResponse], error) {
	p := req.Pagination()
	profiles, total, err := uc.service.List(ctx, profile.ListParams{Pagination: p, Location: req.Location})
	if err != nil {
		return nil, err
	}
	return common.NewPage(profiles, total, p, toResponse), nil
}

func (uc *UseCase) authorize(ctx context.Context, actorID, id uint) error {
	if actorID == common.Anonymous {
		return nil
	}
	p, err := uc.service.Get(ctx, id)
	if err != nil {
		return err
	}
	return common.Authorize(actorID, p.UserID)
}
