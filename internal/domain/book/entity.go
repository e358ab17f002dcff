package book

import (
	"time"

	"github.com/xiebiao/bookclub/pkg/enumjson"
)

// Genre 图书分类
type Genre string

const (
	GenreFiction    Genre = "FICTION"
	GenreNonFiction Genre = "NON_FICTION"
	GenreScience    Genre = "SCIENCE"
	GenreHistory    Genre = "HISTORY"
	GenreBiography  Genre = "BIOGRAPHY"
	GenrePoetry     Genre = "POETRY"
	GenreFantasy    Genre = "FANTASY"
	GenreOther      Genre = "OTHER"
)

var genreNames = []string{
	string(GenreFiction), string(GenreNonFiction), string(GenreScience), string(GenreHistory),
	string(GenreBiography), string(GenrePoetry), string(GenreFantasy), string(GenreOther),
}

// ParseGenre 解析接口传入的分类
func ParseGenre(raw string) (Genre, error) {
	v, err := enumjson.Parse(raw, genreNames...)
	return Genre(v), err
}

func (g Genre) MarshalJSON() ([]byte, error) {
	return enumjson.Marshal(string(g))
}

func (g *Genre) UnmarshalJSON(data []byte) error {
	v, err := enumjson.Unmarshal(data, genreNames...)
	if err != nil {
		return err
	}
	*g = Genre(v)
	return nil
}

// Book 图书实体（聚合根）
// DDD设计说明：
// 1. ISBN作为业务唯一标识（数据库层保证唯一性）
// 2. 图书只是目录信息，售价由BookSale聚合维护
type Book struct {
	ID            uint
	ISBN          string
	Title         string
	Author        string
	Publisher     string
	PublishedYear int
	PageCount     int
	Language      string
	Genre         Genre
	Description   string
	CoverURL      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UpdateParams 更新参数（nil表示不修改）
type UpdateParams struct {
	ISBN          *string
	Title         *string
	Author        *string
	Publisher     *string
	PublishedYear *int
	PageCount     *int
	Language      *string
	Genre         *Genre
	Description   *string
	CoverURL      *string
}

// Apply 应用更新（调用方负责校验）
func (b *Book) Apply(u UpdateParams) {
	if u.ISBN != nil {
		b.ISBN = *u.ISBN
	}
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Author != nil {
		b.Author = *u.Author
	}
	if u.Publisher != nil {
		b.Publisher = *u.Publisher
	}
	if u.PublishedYear != nil {
		b.PublishedYear = *u.PublishedYear
	}
	if u.PageCount != nil {
		b.PageCount = *u.PageCount
	}
	if u.Language != nil {
		b.Language = *u.Language
	}
	if u.Genre != nil {
		b.Genre = *u.Genre
	}
	if u.Description != nil {
		b.Description = *u.Description
	}
	if u.CoverURL != nil {
		b.CoverURL = *u.CoverURL
	}
	b.UpdatedAt = time.Now()
}
