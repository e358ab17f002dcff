package follow

import (
	"context"
	"time"

	"github.com/xiebiao/bookclub/internal/application/common"
	"github.com/xiebiao/bookclub/internal/domain/follow"
	"github.com/xiebiao/bookclub/internal/domain/shared"
	"github.com/xiebiao/bookclub/internal/infrastructure/events"
	"github.com/xiebiao/bookclub/pkg/metrics"
)

// FollowResponse 关注关系，followed_user_id和followed_book_id恰好一个非空
type FollowResponse struct {
	ID             uint      `json:"id"`
	FollowerID     uint      `json:"follower_id"`
	FollowedUserID *uint     `json:"followed_user_id"`
	FollowedBookID *uint     `json:"followed_book_id"`
	CreatedAt      time.Time `json:"created_at"`
}

func toResponse(f *follow.Follow) FollowResponse {
	return FollowResponse{
		ID:             f.ID,
		FollowerID:     f.FollowerID,
		FollowedUserID: f.FollowedUserID,
		FollowedBookID: f.FollowedBookID,
		CreatedAt:      f.CreatedAt,
	}
}

// StatsResponse 关注统计
type StatsResponse struct {
	UserID         uint  `json:"user_id"`
	Followers      int64 `json:"followers"`
	FollowingUsers int64 `json:"following_users"`
	FollowingBooks int64 `json:"following_books"`
}

// CreateRequest 关注用户或图书
type CreateRequest struct {
	FollowerID uint
	Target     shared.Target
}

// ListRequest 列表查询
type ListRequest struct {
	common.PageQuery
	FollowerID     uint
	FollowedUserID uint
	FollowedBookID uint
}

// UseCase 关注用例
type UseCase struct {
	service   follow.Service
	publisher events.Publisher
}

// NewUseCase 创建关注用例
func NewUseCase(service follow.Service, publisher events.Publisher) *UseCase {
	return &UseCase{service: service, publisher: publisher}
}

func (uc *UseCase) Create(ctx context.Context, actorID uint, req CreateRequest) (*FollowResponse, error) {
	followerID, err := common.ResolveOwner(actorID, req.FollowerID)
	if err != nil {
		return nil, err
	}
	f, err := uc.service.Follow(ctx, followerID, req.Target)
	if err != nil {
		return nil, err
	}
	metrics.RecordAction("follow", metrics.ActionCreate)

	resp := toResponse(f)
	events.BestEffort(ctx, uc.publisher, events.New(events.FollowCreated, resp))
	return &resp, nil
}

func (uc *UseCase) Get(ctx context.Context, id uint) (*FollowResponse, error) {
	f, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(f)
	return &resp, nil
}

// Delete 取消关注，只有关注者本人可以操作
func (uc *UseCase) Delete(ctx context.Context, actorID, id uint) error {
	if actorID != common.Anonymous {
		f, err := uc.service.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := common.Authorize(actorID, f.FollowerID); err != nil {
			return err
		}
	}
	if err := uc.service.Delete(ctx, id); err != nil {
		return err
	}
	metrics.RecordAction("follow", metrics.ActionDelete)
	return nil
}

func (uc *UseCase) Exists(ctx context.Context, followerID uint, target shared.Target) (bool, error) {
	return uc.service.Exists(ctx, followerID, target)
}

func (uc *UseCase) Stats(ctx context.Context, userID uint) (*StatsResponse, error) {
	s, err := uc.service.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &StatsResponse{
		UserID:         s.UserID,
		Followers:      s.Followers,
		FollowingUsers: s.FollowingUsers,
		FollowingBooks: s.FollowingBooks,
	}, nil
}

func (uc *UseCase) List(ctx context.Context, req ListRequest) (*common.Page[FollowResponse], error) {
	p := req.Pagination()
	follows, total, err := uc.service.List(ctx, follow.ListParams{
		Pagination:     p,
		FollowerID:     req.FollowerID,
		FollowedUserID: req.FollowedUserID,
		FollowedBookID: req.FollowedBookID,
	})
	if err != nil {
		return nil, err
	}
	return common.NewPage(follows, total, p, toResponse), nil
}
