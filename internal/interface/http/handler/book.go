package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookclub/internal/application/book"
	"github.com/xiebiao/bookclub/internal/domain/book"
	"github.com/xiebiao/bookclub/internal/interface/http/dto"
	"github.com/xiebiao/bookclub/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	useCase *appbook.UseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(useCase *appbook.UseCase) *BookHandler {
	return &BookHandler{useCase: useCase}
}

// Create 创建图书
// @Summary      创建图书
// @Description  ISBN支持10位或13位，可带连字符，保存时去掉连字符
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookResponse}
// @Failure      400 {object} response.ErrorBody "参数错误或ISBN已存在"
// @Router       /api/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.useCase.Create(c.Request.Context(), appbook.CreateRequest{
		ISBN:          req.ISBN,
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		PublishedYear: req.PublishedYear,
		PageCount:     req.PageCount,
		Language:      req.Language,
		Genre:         req.Genre,
		Description:   req.Description,
		CoverURL:      req.CoverURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Get 图书详情（优先读缓存）
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Failure      404 {object} response.ErrorBody
// @Router       /api/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Update 更新图书
// @Summary      更新图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id      path int                   true "图书ID"
// @Param        request body dto.UpdateBookRequest true "更新内容"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Failure      400 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBookRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.useCase.Update(c.Request.Context(), id, req.Params())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除图书
// @Summary      删除图书
// @Tags         图书
// @Param        id path int true "图书ID"
// @Success      204
// @Failure      404 {object} response.ErrorBody
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.useCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// List 图书列表
// @Summary      图书列表
// @Tags         图书
// @Produce      json
// @Param        page      query int    false "页码"
// @Param        page_size query int    false "每页数量"
// @Param        keyword   query string false "书名或作者关键字"
// @Param        author    query string false "作者"
// @Param        genre     query string false "分类，如fiction"
// @Param        language  query string false "语言"
// @Param        year_from query int    false "出版年份下限"
// @Param        year_to   query int    false "出版年份上限"
// @Param        sort_by   query string false "created_desc | title_asc | year_asc | year_desc"
// @Success      200 {object} response.Response{data=common.Page[appbook.BookResponse]}
// @Router       /api/books [get]
func (h *BookHandler) List(c *gin.Context) {
	var q dto.ListBooksQuery
	if !bindQuery(c, &q) {
		return
	}

	var genre book.Genre
	if q.Genre != "" {
		g, err := book.ParseGenre(q.Genre)
		if err != nil {
			response.Error(c, badParam(err))
			return
		}
		genre = g
	}

	result, err := h.useCase.List(c.Request.Context(), appbook.ListRequest{
		PageQuery: q.ToPageQuery(),
		Keyword:   q.Keyword,
		Author:    q.Author,
		Genre:     genre,
		Language:  q.Language,
		YearFrom:  q.YearFrom,
		YearTo:    q.YearTo,
		SortBy:    q.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
