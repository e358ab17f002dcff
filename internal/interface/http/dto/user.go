package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30" example:"alice"`
	Email    string `json:"email" binding:"required,email,max=100" example:"alice@example.com"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"secret123"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// RefreshRequest 刷新Token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateUserRequest 更新用户，未传的字段不修改
type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=30" example:"alice"`
	Email    *string `json:"email" binding:"omitempty,email,max=100" example:"alice@example.com"`
	Password *string `json:"password" binding:"omitempty,min=8,max=20"`
}

// ListUsersQuery 用户列表
type ListUsersQuery struct {
	PageQuery
	Keyword string `form:"keyword" binding:"omitempty,max=100" example:"ali"`
}
