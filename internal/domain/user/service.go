package user

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

// Service 用户领域服务接口
type Service interface {
	// Register 注册
	// 业务规则：
	// - 用户名3-30个字符（字母、数字、下划线）
	// - 邮箱格式合法且未被注册
	// - 密码8-20位，包含字母和数字
	Register(ctx context.Context, username, email, password string) (*User, error)

	// Login 校验邮箱和密码，失败统一返回ErrInvalidCredentials
	Login(ctx context.Context, email, password string) (*User, error)

	Get(ctx context.Context, id uint) (*User, error)

	// Update 部分更新，nil字段保持不变
	Update(ctx context.Context, id uint, params UpdateParams) (*User, error)

	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, params ListParams) ([]*User, int64, error)
}

// UpdateParams 更新参数
type UpdateParams struct {
	Username *string
	Email    *string
	Password *string
}

// bcryptCost 密码哈希成本
// 12在常见服务器上约250ms，测试可调低
var bcryptCost = 12

type service struct {
	repo Repository
}

// NewService 创建用户领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, username, email, password string) (*User, error) {
	// 1. 格式校验
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if !isValidUsername(username) {
		return nil, ErrInvalidUsername
	}
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	// 2. 唯一性预检（数据库唯一索引兜底）
	if err := s.ensureUnique(ctx, 0, username, email); err != nil {
		return nil, err
	}

	// 3. 密码加密
	hashed, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	// 4. 持久化
	u := NewUser(username, email, hashed)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(err, "密码验证失败")
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id uint, params UpdateParams) (*User, error) {
	if params.Username == nil && params.Email == nil && params.Password == nil {
		return nil, ErrNothingToUpdate
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var username, email string
	if params.Username != nil {
		username = strings.TrimSpace(*params.Username)
		if !isValidUsername(username) {
			return nil, ErrInvalidUsername
		}
	}
	if params.Email != nil {
		email = strings.ToLower(strings.TrimSpace(*params.Email))
		if !isValidEmail(email) {
			return nil, ErrInvalidEmail
		}
	}
	if err := s.ensureUnique(ctx, u.ID, username, email); err != nil {
		return nil, err
	}

	if username != "" {
		u.Rename(username)
	}
	if email != "" {
		u.ChangeEmail(email)
	}
	if params.Password != nil {
		if err := validatePasswordStrength(*params.Password); err != nil {
			return nil, err
		}
		hashed, err := hashPassword(*params.Password)
		if err != nil {
			return nil, err
		}
		u.ChangePassword(hashed)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*User, int64, error) {
	return s.repo.List(ctx, params)
}

// ensureUnique 检查用户名、邮箱是否被其他用户占用（空字符串跳过）
func (s *service) ensureUnique(ctx context.Context, selfID uint, username, email string) error {
	if username != "" {
		existing, err := s.repo.FindByUsername(ctx, username)
		if err == nil && existing.ID != selfID {
			return ErrUsernameDuplicate
		}
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return err
		}
	}
	if email != "" {
		existing, err := s.repo.FindByEmail(ctx, email)
		if err == nil && existing.ID != selfID {
			return ErrEmailDuplicate
		}
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return err
		}
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", apperrors.Wrap(err, "密码加密失败")
	}
	return string(hashed), nil
}

// =========================================
// 辅助函数：业务规则校验
// =========================================

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	letterPattern   = regexp.MustCompile(`[a-zA-Z]`)
	digitPattern    = regexp.MustCompile(`[0-9]`)
)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func isValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// validatePasswordStrength 密码强度：8-20位，必须同时包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return ErrWeakPassword
	}
	if !letterPattern.MatchString(password) || !digitPattern.MatchString(password) {
		return ErrWeakPassword
	}
	return nil
}
