package handler

import (
	"github.com/gin-gonic/gin"

	appinteraction "github.com/xiebiao/bookclub/internal/application/interaction"
	"github.com/xiebiao/bookclub/internal/domain/interaction"
	"github.com/xiebiao/bookclub/internal/interface/http/dto"
	"github.com/xiebiao/bookclub/internal/interface/http/middleware"
	"github.com/xiebiao/bookclub/pkg/response"
)

// InteractionHandler 阅读记录（用户与图书的交互：想读、在读、读完、弃读）
type InteractionHandler struct {
	useCase *appinteraction.UseCase
}

func NewInteractionHandler(useCase *appinteraction.UseCase) *InteractionHandler {
	return &InteractionHandler{useCase: useCase}
}

// Create 创建阅读记录，同一用户同一本书只能有一条
// @Summary      创建阅读记录
// @Tags         阅读记录
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateInteractionRequest true "阅读记录"
// @Success      201 {object} response.Response{data=appinteraction.InteractionResponse}
// @Failure      400 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/book-interactions [post]
func (h *InteractionHandler) Create(c *gin.Context) {
	var req dto.CreateInteractionRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.useCase.Create(c.Request.Context(), middleware.GetUserID(c), appinteraction.CreateRequest{
		UserID:     req.UserID,
		BookID:     req.BookID,
		Status:     req.Status,
		Rating:     req.Rating,
		Note:       req.Note,
		StartedAt:  req.StartedAt,
		FinishedAt: req.FinishedAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// @Summary      阅读记录详情
// @Tags         阅读记录
// @Produce      json
// @Param        id path int true "阅读记录ID"
// @Success      200 {object} response.Response{data=appinteraction.InteractionResponse}
// @Failure      404 {object} response.ErrorBody
// @Router       /api/book-interactions/{id} [get]
func (h *InteractionHandler) Get(c *gin.Context) {
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

// @Summary      更新阅读记录
// @Tags         阅读记录
// @Accept       json
// @Produce      json
// @Param        id      path int                          true "阅读记录ID"
// @Param        request body dto.UpdateInteractionRequest true "更新内容"
// @Success      200 {object} response.Response{data=appinteraction.InteractionResponse}
// @Failure      400 {object} response.ErrorBody
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/book-interactions/{id} [put]
func (h *InteractionHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateInteractionRequest
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

// Delete 删除阅读记录，关联的消息、点赞、转发、收藏一并删除
// @Summary      删除阅读记录
// @Tags         阅读记录
// @Param        id path int true "阅读记录ID"
// @Success      204
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/book-interactions/{id} [delete]
func (h *InteractionHandler) Delete(c *gin.Context) {
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

// @Summary      阅读记录列表
// @Tags         阅读记录
// @Produce      json
// @Param        page      query int    false "页码"
// @Param        page_size query int    false "每页数量"
// @Param        user_id   query int    false "用户ID"
// @Param        book_id   query int    false "图书ID"
// @Param        status    query string false "want_to_read | reading | read | abandoned"
// @Success      200 {object} response.Response{data=common.Page[appinteraction.InteractionResponse]}
// @Router       /api/book-interactions [get]
func (h *InteractionHandler) List(c *gin.Context) {
	var q dto.ListInteractionsQuery
	if !bindQuery(c, &q) {
		return
	}
	var status interaction.Status
	if q.Status != "" {
		s, err := interaction.ParseStatus(q.Status)
		if err != nil {
			response.Error(c, badParam(err))
			return
		}
		status = s
	}
	result, err := h.useCase.List(c.Request.Context(), appinteraction.ListRequest{
		PageQuery: q.ToPageQuery(),
		UserID:    q.UserID,
		BookID:    q.BookID,
		Status:    status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
