package mysql

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookclub/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 1. driver=mysql使用gorm.io/driver/mysql，driver=sqlite使用纯Go的glebarez/sqlite（开发、测试）
// 2. 配置连接池参数
// 3. 开发环境开启SQL日志
// 4. 自动迁移表结构
func NewDB(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.DSN())
	default:
		dialector = mysql.Open(cfg.Database.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time { return time.Now() },
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	if cfg.Database.Driver == "sqlite" {
		// sqlite单写者，多连接只会带来SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info().Str("driver", cfg.Database.Driver).Msg("数据库连接成功")

	// 生产环境应使用版本化的迁移脚本
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// AutoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段和约束，不会删除或修改现有字段
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&UserModel{},
		&ProfileModel{},
		&BookModel{},
		&BookSaleModel{},
		&InteractionModel{},
		&ReviewModel{},
		&QuoteModel{},
		&MessageModel{},
		&FollowModel{},
		&LikeModel{},
		&RepostSaveModel{},
	); err != nil {
		return err
	}
	return migrateUserUniqueIndexes(db)
}

// migrateUserUniqueIndexes 旧版本的用户名、邮箱唯一索引不含active列，会挡住注销用户的重新注册
func migrateUserUniqueIndexes(db *gorm.DB) error {
	m := db.Migrator()
	for _, name := range []string{"idx_users_username", "idx_users_email"} {
		if m.HasIndex(&UserModel{}, name) {
			if err := m.DropIndex(&UserModel{}, name); err != nil {
				return fmt.Errorf("删除索引%s失败: %w", name, err)
			}
		}
	}
	return db.Unscoped().Model(&UserModel{}).
		Where("deleted_at IS NOT NULL AND active IS NOT NULL").
		Update("active", nil).Error
}
