package user

import (
	"time"

	"github.com/xiebiao/bookclub/internal/application/common"
	"github.com/xiebiao/bookclub/internal/domain/user"
)

// UserResponse 用户信息，不含密码
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UpdateRequest 更新请求（nil字段不修改）
type UpdateRequest struct {
	Username *string
	Email    *string
	Password *string
}

// ListRequest 列表查询
type ListRequest struct {
	common.PageQuery
	Keyword string
}
