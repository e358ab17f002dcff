package handler

import (
	"github.com/gin-gonic/gin"

	apprepostsave "github.com/xiebiao/bookclub/internal/application/repostsave"
	"github.com/xiebiao/bookclub/internal/domain/repostsave"
	"github.com/xiebiao/bookclub/internal/interface/http/dto"
	"github.com/xiebiao/bookclub/internal/interface/http/middleware"
	"github.com/xiebiao/bookclub/pkg/response"
)

// RepostSaveHandler 转发和收藏
type RepostSaveHandler struct {
	useCase *apprepostsave.UseCase
}

func NewRepostSaveHandler(useCase *apprepostsave.UseCase) *RepostSaveHandler {
	return &RepostSaveHandler{useCase: useCase}
}

// Create 转发或收藏
// @Summary      转发或收藏
// @Description  review_id、quote_id、book_interaction_id恰好一个非空；同一用户对同一对象的同一动作只能一次
// @Tags         转发收藏
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateRepostSaveRequest true "转发或收藏"
// @Success      201 {object} response.Response{data=apprepostsave.RepostSaveResponse}
// @Failure      400 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/repost-saves [post]
func (h *RepostSaveHandler) Create(c *gin.Context) {
	var req dto.CreateRepostSaveRequest
	if !bindJSON(c, &req) {
		return
	}
	target, err := req.Target()
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.useCase.Create(c.Request.Context(), middleware.GetUserID(c), apprepostsave.CreateRequest{
		UserID:     req.UserID,
		ActionType: req.ActionType,
		Target:     target,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// @Summary      转发/收藏详情
// @Tags         转发收藏
// @Produce      json
// @Param        id path int true "ID"
// @Success      200 {object} response.Response{data=apprepostsave.RepostSaveResponse}
// @Failure      404 {object} response.ErrorBody
// @Router       /api/repost-saves/{id} [get]
func (h *RepostSaveHandler) Get(c *gin.Context) {
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

// @Summary      取消转发/收藏
// @Tags         转发收藏
// @Param        id path int true "ID"
// @Success      204
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/repost-saves/{id} [delete]
func (h *RepostSaveHandler) Delete(c *gin.Context) {
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

// @Summary      转发/收藏列表
// @Tags         转发收藏
// @Produce      json
// @Param        page        query int    false "页码"
// @Param        page_size   query int    false "每页数量"
// @Param        user_id     query int    false "用户ID"
// @Param        action_type query string false "repost | save"
// @Param        target_type query string false "review | quote | book_interaction"
// @Param        target_id   query int    false "对象ID"
// @Success      200 {object} response.Response{data=common.Page[apprepostsave.RepostSaveResponse]}
// @Failure      400 {object} response.ErrorBody
// @Router       /api/repost-saves [get]
func (h *RepostSaveHandler) List(c *gin.Context) {
	var q dto.ListRepostSavesQuery
	if !bindQuery(c, &q) {
		return
	}
	var action repostsave.ActionType
	if q.ActionType != "" {
		a, err := repostsave.ParseActionType(q.ActionType)
		if err != nil {
			response.Error(c, badParam(err))
			return
		}
		action = a
	}
	target, err := optionalTarget(q.TargetType, q.TargetID, repostsave.AllowedTargets...)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.useCase.List(c.Request.Context(), apprepostsave.ListRequest{
		PageQuery:  q.ToPageQuery(),
		UserID:     q.UserID,
		ActionType: action,
		Target:     target,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Exists 是否已转发/收藏
// @Summary      是否已转发/收藏
// @Tags         转发收藏
// @Produce      json
// @Param        user_id     query int    true "用户ID"
// @Param        action_type query string true "repost | save"
// @Param        target_type query string true "review | quote | book_interaction"
// @Param        target_id   query int    true "对象ID"
// @Success      200 {object} response.Response{data=dto.ExistsResponse}
// @Failure      400 {object} response.ErrorBody
// @Router       /api/repost-saves/exists [get]
func (h *RepostSaveHandler) Exists(c *gin.Context) {
	var q dto.RepostSaveExistsQuery
	if !bindQuery(c, &q) {
		return
	}
	action, err := repostsave.ParseActionType(q.ActionType)
	if err != nil {
		response.Error(c, badParam(err))
		return
	}
	target, err := parseTarget(q.TargetType, q.TargetID, repostsave.AllowedTargets...)
	if err != nil {
		response.Error(c, err)
		return
	}
	exists, err := h.useCase.Exists(c.Request.Context(), q.UserID, target, action)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ExistsResponse{Exists: exists})
}
