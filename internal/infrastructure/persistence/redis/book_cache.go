package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookclub/internal/domain/book"
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
	"github.com/xiebiao/bookclub/pkg/metrics"
)

const bookCacheName = "book"

// BookCache 图书详情缓存（Cache-Aside）
// Key: bookclub:book:{id}，Value为JSON
type BookCache struct {
	client *redis.Client
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client) book.Cache {
	return &BookCache{client: client}
}

type cachedBook struct {
	ID            uint      `json:"id"`
	ISBN          string    `json:"isbn"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Publisher     string    `json:"publisher"`
	PublishedYear int       `json:"published_year"`
	PageCount     int       `json:"page_count"`
	Language      string    `json:"language"`
	Genre         string    `json:"genre"`
	Description   string    `json:"description"`
	CoverURL      string    `json:"cover_url"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Get 未命中返回book.ErrCacheMiss
func (c *BookCache) Get(ctx context.Context, id uint) (*book.Book, error) {
	data, err := c.client.Get(ctx, key(bookCacheName, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCache(bookCacheName, metrics.CacheMiss)
			return nil, book.ErrCacheMiss
		}
		metrics.RecordCache(bookCacheName, metrics.CacheError)
		return nil, apperrors.Wrap(err, "读取图书缓存失败")
	}

	var cb cachedBook
	if err := json.Unmarshal(data, &cb); err != nil {
		// 格式不兼容的旧数据按未命中处理
		metrics.RecordCache(bookCacheName, metrics.CacheMiss)
		return nil, book.ErrCacheMiss
	}
	metrics.RecordCache(bookCacheName, metrics.CacheHit)
	return &book.Book{
		ID:            cb.ID,
		ISBN:          cb.ISBN,
		Title:         cb.Title,
		Author:        cb.Author,
		Publisher:     cb.Publisher,
		PublishedYear: cb.PublishedYear,
		PageCount:     cb.PageCount,
		Language:      cb.Language,
		Genre:         book.Genre(cb.Genre),
		Description:   cb.Description,
		CoverURL:      cb.CoverURL,
		CreatedAt:     cb.CreatedAt,
		UpdatedAt:     cb.UpdatedAt,
	}, nil
}

func (c *BookCache) Set(ctx context.Context, b *book.Book, ttl time.Duration) error {
	data, err := json.Marshal(cachedBook{
		ID:            b.ID,
		ISBN:          b.ISBN,
		Title:         b.Title,
		Author:        b.Author,
		Publisher:     b.Publisher,
		PublishedYear: b.PublishedYear,
		PageCount:     b.PageCount,
		Language:      b.Language,
		Genre:         string(b.Genre),
		Description:   b.Description,
		CoverURL:      b.CoverURL,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	})
	if err != nil {
		return apperrors.Wrap(err, "序列化图书缓存失败")
	}
	if err := c.client.Set(ctx, key(bookCacheName, b.ID), data, ttl).Err(); err != nil {
		return apperrors.Wrap(err, "写入图书缓存失败")
	}
	return nil
}

func (c *BookCache) Delete(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, key(bookCacheName, id)).Err(); err != nil {
		return apperrors.Wrap(err, "删除图书缓存失败")
	}
	return nil
}
