package book

import (
	"context"
	"errors"
	"time"

	"github.com/xiebiao/bookclub/internal/domain/shared"
)

// Repository 图书仓储接口（依赖倒置原则）
// 设计说明：
// 1. 由domain层定义接口，infrastructure层实现
// 2. 便于Mock测试，不依赖具体数据库实现
type Repository interface {
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书，不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	Update(ctx context.Context, book *Book) error

	// Delete 删除图书（软删除）
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = errors.New("book cache miss")

// Cache 图书缓存（Cache-Aside）
// Get未命中时返回ErrCacheMiss
type Cache interface {
	Get(ctx context.Context, id uint) (*Book, error)
	Set(ctx context.Context, b *Book, ttl time.Duration) error
	Delete(ctx context.Context, id uint) error
}

// 排序方式
const (
	SortCreatedDesc = "created_desc"
	SortTitleAsc    = "title_asc"
	SortYearAsc     = "year_asc"
	SortYearDesc    = "year_desc"
)

// ListParams 列表查询参数
type ListParams struct {
	shared.Pagination
	Keyword  string // 模糊匹配标题、作者、出版社
	Author   string // 作者精确匹配
	Genre    Genre
	Language string
	YearFrom int // 0表示不限
	YearTo   int
	SortBy   string
}
