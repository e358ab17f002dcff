package handler

import (
	"github.com/gin-gonic/gin"

	appquote "github.com/xiebiao/bookclub/internal/application/quote"
	"github.com/xiebiao/bookclub/internal/interface/http/dto"
	"github.com/xiebiao/bookclub/internal/interface/http/middleware"
	"github.com/xiebiao/bookclub/pkg/response"
)

// QuoteHandler 书摘
type QuoteHandler struct {
	useCase *appquote.UseCase
}

func NewQuoteHandler(useCase *appquote.UseCase) *QuoteHandler {
	return &QuoteHandler{useCase: useCase}
}

// @Summary      摘录书摘
// @Tags         书摘
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateQuoteRequest true "书摘"
// @Success      201 {object} response.Response{data=appquote.QuoteResponse}
// @Failure      400 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/quotes [post]
func (h *QuoteHandler) Create(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.useCase.Create(c.Request.Context(), middleware.GetUserID(c), appquote.CreateRequest{
		UserID:     req.UserID,
		BookID:     req.BookID,
		Content:    req.Content,
		PageNumber: req.PageNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// @Summary      书摘详情
// @Tags         书摘
// @Produce      json
// @Param        id path int true "书摘ID"
// @Success      200 {object} response.Response{data=appquote.QuoteResponse}
// @Failure      404 {object} response.ErrorBody
// @Router       /api/quotes/{id} [get]
func (h *QuoteHandler) Get(c *gin.Context) {
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

// @Summary      修改书摘
// @Tags         书摘
// @Accept       json
// @Produce      json
// @Param        id      path int                    true "书摘ID"
// @Param        request body dto.UpdateQuoteRequest true "更新内容"
// @Success      200 {object} response.Response{data=appquote.QuoteResponse}
// @Failure      400 {object} response.ErrorBody
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/quotes/{id} [put]
func (h *QuoteHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateQuoteRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.useCase.Update(c.Request.Context(), middleware.GetUserID(c), id, req.Params())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// @Summary      删除书摘
// @Tags         书摘
// @Param        id path int true "书摘ID"
// @Success      204
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/quotes/{id} [delete]
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.useCase.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// @Summary      书摘列表
// @Tags         书摘
// @Produce      json
// @Param        page      query int    false "页码"
// @Param        page_size query int    false "每页数量"
// @Param        user_id   query int    false "用户ID"
// @Param        book_id   query int    false "图书ID"
// @Param        keyword   query string false "内容关键字"
// @Success      200 {object} response.Response{data=common.Page[appquote.QuoteResponse]}
// @Router       /api/quotes [get]
func (h *QuoteHandler) List(c *gin.Context) {
	var q dto.ListQuotesQuery
	if !bindQuery(c, &q) {
		return
	}
	result, err := h.useCase.List(c.Request.Context(), appquote.ListRequest{
		PageQuery: q.ToPageQuery(),
		UserID:    q.UserID,
		BookID:    q.BookID,
		Keyword:   q.Keyword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
