package dto

import (
	"github.com/xiebiao/bookclub/internal/domain/book"
)

// CreateBookRequest 创建图书
type CreateBookRequest struct {
	ISBN          string     `json:"isbn" binding:"required,isbn" example:"9787536692930"`
	Title         string     `json:"title" binding:"required,max=200" example:"三体"`
	Author        string     `json:"author" binding:"required,max=100" example:"刘慈欣"`
	Publisher     string     `json:"publisher" binding:"max=100" example:"重庆出版社"`
	PublishedYear int        `json:"published_year" binding:"omitempty,min=0,max=9999" example:"2008"`
	PageCount     int        `json:"page_count" binding:"omitempty,min=1" example:"302"`
	Language      string     `json:"language" binding:"omitempty,max=20" example:"zh"`
	Genre         book.Genre `json:"genre" example:"fiction"`
	Description   string     `json:"description" binding:"max=5000"`
	CoverURL      string     `json:"cover_url" binding:"omitempty,url,max=500" example:"https://example.com/cover.jpg"`
}

// UpdateBookRequest 更新图书，未传的字段不修改
type UpdateBookRequest struct {
	ISBN          *string     `json:"isbn" binding:"omitempty,isbn"`
	Title         *string     `json:"title" binding:"omitempty,min=1,max=200"`
	Author        *string     `json:"author" binding:"omitempty,min=1,max=100"`
	Publisher     *string     `json:"publisher" binding:"omitempty,max=100"`
	PublishedYear *int        `json:"published_year" binding:"omitempty,min=0,max=9999"`
	PageCount     *int        `json:"page_count" binding:"omitempty,min=1"`
	Language      *string     `json:"language" binding:"omitempty,max=20"`
	Genre         *book.Genre `json:"genre"`
	Description   *string     `json:"description" binding:"omitempty,max=5000"`
	CoverURL      *string     `json:"cover_url" binding:"omitempty,url,max=500"`
}

func (r UpdateBookRequest) Params() book.UpdateParams {
	return book.UpdateParams{
		ISBN:          r.ISBN,
		Title:         r.Title,
		Author:        r.Author,
		Publisher:     r.Publisher,
		PublishedYear: r.PublishedYear,
		PageCount:     r.PageCount,
		Language:      r.Language,
		Genre:         r.Genre,
		Description:   r.Description,
		CoverURL:      r.CoverURL,
	}
}

// ListBooksQuery 图书列表
type ListBooksQuery struct {
	PageQuery
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"三体"`
	Author   string `form:"author" binding:"omitempty,max=100"`
	Genre    string `form:"genre" example:"fiction"`
	Language string `form:"language" binding:"omitempty,max=20"`
	YearFrom int    `form:"year_from" binding:"omitempty,min=0"`
	YearTo   int    `form:"year_to" binding:"omitempty,min=0"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=created_desc title_asc year_asc year_desc" example:"created_desc"`
}

// CreateBookSaleRequest 创建售卖信息，价格以最小货币单位表示
type CreateBookSaleRequest struct {
	BookID    uint   `json:"book_id" binding:"required,min=1" example:"1"`
	StoreName string `json:"store_name" binding:"required,max=100" example:"当当"`
	Price     int64  `json:"price" binding:"min=0" example:"5900"`
	Currency  string `json:"currency" binding:"required,currency" example:"CNY"`
	URL       string `json:"url" binding:"omitempty,url,max=500"`
	InStock   bool   `json:"in_stock" example:"true"`
}

// UpdateBookSaleRequest 更新售卖信息
type UpdateBookSaleRequest struct {
	StoreName *string `json:"store_name" binding:"omitempty,min=1,max=100"`
	Price     *int64  `json:"price" binding:"omitempty,min=0"`
	Currency  *string `json:"currency" binding:"omitempty,currency"`
	URL       *string `json:"url" binding:"omitempty,url,max=500"`
	InStock   *bool   `json:"in_stock"`
}

// ListBookSalesQuery 售卖信息列表
type ListBookSalesQuery struct {
	PageQuery
	BookID    uint   `form:"book_id"`
	StoreName string `form:"store_name" binding:"omitempty,max=100"`
	MinPrice  *int64 `form:"min_price" binding:"omitempty,min=0"`
	MaxPrice  *int64 `form:"max_price" binding:"omitempty,min=0"`
	InStock   *bool  `form:"in_stock"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=price_asc price_desc"`
}
