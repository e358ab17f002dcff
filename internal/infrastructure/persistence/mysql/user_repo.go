package mysql

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookclub/internal/domain/user"
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

// userRepository 用户仓储实现
// 负责domain实体与GORM模型之间的转换，并把数据库错误（如邮箱重复）转换为业务错误
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
// 返回domain层的接口类型（依赖倒置）
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
// 用户名、邮箱唯一性最终由数据库UNIQUE索引保证，冲突时转换为业务错误
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := toUserModel(u)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return duplicateUserError(err)
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *userRepository) findOne(ctx context.Context, cond string, arg interface{}) (*user.User, error) {
	var model UserModel
	if err := getDB(ctx, r.db).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	model := toUserModel(u)
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return duplicateUserError(err)
		}
		return apperrors.Wrap(err, "更新用户失败")
	}
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 软删除，同时清空active释放用户名和邮箱
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Unscoped().Model(&UserModel{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]interface{}{"deleted_at": time.Now(), "active": nil})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除用户失败")
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Purge 物理删除，释放用户名和邮箱的唯一索引
func (r *userRepository) Purge(ctx context.Context, id uint) error {
	if err := getDB(ctx, r.db).Unscoped().Delete(&UserModel{}, id).Error; err != nil {
		return apperrors.Wrap(err, "删除用户失败")
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, params user.ListParams) ([]*user.User, int64, error) {
	query := getDB(ctx, r.db).Model(&UserModel{})
	if params.Keyword != "" {
		kw := likePattern(params.Keyword)
		query = query.Where("username LIKE ?"+likeEscape+" OR email LIKE ?"+likeEscape, kw, kw)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询用户总数失败")
	}

	var models []UserModel
	if err := paginate(query.Order("id ASC"), params.Pagination).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询用户列表失败")
	}

	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserEntity(&models[i])
	}
	return users, total, nil
}

// duplicateUserError 根据冲突的索引区分用户名和邮箱
func duplicateUserError(err error) error {
	msg := err.Error()
	if strings.Contains(msg, "idx_users_username") || strings.Contains(msg, "users.username") {
		return user.ErrUsernameDuplicate
	}
	return user.ErrEmailDuplicate
}

func toUserModel(u *user.User) *UserModel {
	active := true
	return &UserModel{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		Active:    &active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserEntity(model *UserModel) *user.User {
	return &user.User{
		ID:        model.ID,
		Username:  model.Username,
		Email:     model.Email,
		Password:  model.Password,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
