package booksale

import (
	"time"
)

// BookSale 图书在某个书店的售卖信息
// 价格使用int64存储最小货币单位（如分、美分），避免浮点数精度问题
type BookSale struct {
	ID        uint
	BookID    uint
	StoreName string
	Price     int64
	Currency  string // ISO 4217，如CNY、USD、TRY
	URL       string
	InStock   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UpdateParams 更新参数（nil表示不修改）
type UpdateParams struct {
	StoreName *string
	Price     *int64
	Currency  *string
	URL       *string
	InStock   *bool
}

// Apply 应用更新
func (s *BookSale) Apply(u UpdateParams) {
	if u.StoreName != nil {
		s.StoreName = *u.StoreName
	}
	if u.Price != nil {
		s.Price = *u.Price
	}
	if u.Currency != nil {
		s.Currency = *u.Currency
	}
	if u.URL != nil {
		s.URL = *u.URL
	}
	if u.InStock != nil {
		s.InStock = *u.InStock
	}
	s.UpdatedAt = time.Now()
}
