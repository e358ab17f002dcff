package user

import (
	"time"
)

// User 用户实体（聚合根）
// 设计说明：
// 1. 纯领域模型，不依赖GORM等基础设施
// 2. Password只保存bcrypt哈希值
// 3. Username和Email在数据库层保证唯一
type User struct {
	ID        uint
	Username  string
	Email     string
	Password  string // bcrypt哈希值
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// 注意：hashedPassword必须是已加密的密码
func NewUser(username, email, hashedPassword string) *User {
	now := time.Now()
	return &User{
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Rename 修改用户名
func (u *User) Rename(username string) {
	u.Username = username
	u.UpdatedAt = time.Now()
}

// ChangeEmail 修改邮箱
func (u *User) ChangeEmail(email string) {
	u.Email = email
	u.UpdatedAt = time.Now()
}

// ChangePassword 修改密码（传入哈希值）
func (u *User) ChangePassword(hashedPassword string) {
	u.Password = hashedPassword
	u.UpdatedAt = time.Now()
}
