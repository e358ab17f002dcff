package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/bookclub/internal/application/review"
	"github.com/xiebiao/bookclub/internal/interface/http/dto"
	"github.com/xiebiao/bookclub/internal/interface/http/middleware"
	"github.com/xiebiao/bookclub/pkg/response"
)

// ReviewHandler 书评HTTP处理器
type ReviewHandler struct {
	useCase *appreview.UseCase
}

// NewReviewHandler 创建书评处理器
func NewReviewHandler(useCase *appreview.UseCase) *ReviewHandler {
	return &ReviewHandler{useCase: useCase}
}

// Create 发表书评
// @Summary      发表书评
// @Description  user_id为空时使用当前登录用户；登录后不能替其他用户发表
// @Tags         书评
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateReviewRequest true "书评"
// @Success      201 {object} response.Response{data=appreview.ReviewResponse}
// @Failure      400 {object} response.ErrorBody
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody "用户或图书不存在"
// @Router       /api/reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.useCase.Create(c.Request.Context(), middleware.GetUserID(c), appreview.CreateRequest{
		UserID:          req.UserID,
		BookID:          req.BookID,
		Title:           req.Title,
		Content:         req.Content,
		Rating:          req.Rating,
		ContainsSpoiler: req.ContainsSpoiler,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Get 书评详情
// @Summary      书评详情
// @Tags         书评
// @Produce      json
// @Param        id path int true "书评ID"
// @Success      200 {object} response.Response{data=appreview.ReviewResponse}
// @Failure      404 {object} response.ErrorBody
// @Router       /api/reviews/{id} [get]
func (h *ReviewHandler) Get(c *gin.Context) {
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

// Update 修改书评
// @Summary      修改书评
// @Tags         书评
// @Accept       json
// @Produce      json
// @Param        id      path int                     true "书评ID"
// @Param        request body dto.UpdateReviewRequest true "更新内容"
// @Success      200 {object} response.Response{data=appreview.ReviewResponse}
// @Failure      400 {object} response.ErrorBody
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/reviews/{id} [put]
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
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

// Delete 删除书评
// @Summary      删除书评
// @Description  评论该书评的消息，以及书评和这些消息上的点赞、转发、收藏一并删除
// @Tags         书评
// @Param        id path int true "书评ID"
// @Success      204
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
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

// List 书评列表
// @Summary      书评列表
// @Tags         书评
// @Produce      json
// @Param        page             query int  false "页码"
// @Param        page_size        query int  false "每页数量"
// @Param        user_id          query int  false "作者ID"
// @Param        book_id          query int  false "图书ID"
// @Param        min_rating       query int  false "最低评分"
// @Param        contains_spoiler query bool false "是否含剧透"
// @Success      200 {object} response.Response{data=common.Page[appreview.ReviewResponse]}
// @Router       /api/reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	var q dto.ListReviewsQuery
	if !bindQuery(c, &q) {
		return
	}
	result, err := h.useCase.List(c.Request.Context(), appreview.ListRequest{
		PageQuery:       q.ToPageQuery(),
		UserID:          q.UserID,
		BookID:          q.BookID,
		MinRating:       q.MinRating,
		ContainsSpoiler: q.ContainsSpoiler,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
