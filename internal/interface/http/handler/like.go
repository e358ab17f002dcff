package handler

import (
	"github.com/gin-gonic/gin"

	applike "github.com/xiebiao/bookclub/internal/application/like"
	"github.com/xiebiao/bookclub/internal/domain/like"
	"github.com/xiebiao/bookclub/internal/interface/http/dto"
	"github.com/xiebiao/bookclub/internal/interface/http/middleware"
	"github.com/xiebiao/bookclub/pkg/response"
)

// LikeHandler 点赞HTTP处理器
type LikeHandler struct {
	useCase *applike.UseCase
}

// NewLikeHandler 创建点赞处理器
func NewLikeHandler(useCase *applike.UseCase) *LikeHandler {
	return &LikeHandler{useCase: useCase}
}

// Create 点赞
// @Summary      点赞
// @Description  四个目标字段恰好一个非空。重复点赞返回已有记录（200），新建返回201
// @Tags         点赞
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateLikeRequest true "点赞"
// @Success      201 {object} response.Response{data=applike.LikeResponse}
// @Success      200 {object} response.Response{data=applike.LikeResponse} "已点赞过"
// @Failure      400 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/likes [post]
func (h *LikeHandler) Create(c *gin.Context) {
	var req dto.CreateLikeRequest
	if !bindJSON(c, &req) {
		return
	}
	target, err := req.Target()
	if err != nil {
		response.Error(c, err)
		return
	}
	result, created, err := h.useCase.Create(c.Request.Context(), middleware.GetUserID(c), applike.CreateRequest{
		UserID: req.UserID,
		Target: target,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	if created {
		response.Created(c, result)
		return
	}
	response.Success(c, result)
}

// Get 点赞详情
// @Summary      点赞详情
// @Tags         点赞
// @Produce      json
// @Param        id path int true "点赞ID"
// @Success      200 {object} response.Response{data=applike.LikeResponse}
// @Failure      404 {object} response.ErrorBody
// @Router       /api/likes/{id} [get]
func (h *LikeHandler) Get(c *gin.Context) {
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

// Delete 按ID取消点赞
// @Summary      删除点赞
// @Tags         点赞
// @Param        id path int true "点赞ID"
// @Success      204
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/likes/{id} [delete]
func (h *LikeHandler) Delete(c *gin.Context) {
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

// Unlike 按(用户, 目标)取消点赞
// @Summary      取消点赞
// @Tags         点赞
// @Param        user_id     query int    false "用户ID，登录时默认当前用户"
// @Param        target_type query string true  "message | book_interaction | review | quote"
// @Param        target_id   query int    true  "对象ID"
// @Success      204
// @Failure      400 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody "未点赞"
// @Router       /api/likes [delete]
func (h *LikeHandler) Unlike(c *gin.Context) {
	var q dto.UserTargetQuery
	if !bindQuery(c, &q) {
		return
	}
	target, err := parseTarget(q.TargetType, q.TargetID, like.AllowedTargets...)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.useCase.Unlike(c.Request.Context(), middleware.GetUserID(c), q.UserID, target); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Exists 是否已点赞
// @Summary      是否已点赞
// @Tags         点赞
// @Produce      json
// @Param        user_id     query int    true "用户ID"
// @Param        target_type query string true "message | book_interaction | review | quote"
// @Param        target_id   query int    true "对象ID"
// @Success      200 {object} response.Response{data=dto.ExistsResponse}
// @Failure      400 {object} response.ErrorBody
// @Router       /api/likes/exists [get]
func (h *LikeHandler) Exists(c *gin.Context) {
	var q dto.UserTargetQuery
	if !bindQuery(c, &q) {
		return
	}
	userID := q.UserID
	if userID == 0 {
		userID = middleware.GetUserID(c)
	}
	target, err := parseTarget(q.TargetType, q.TargetID, like.AllowedTargets...)
	if err != nil {
		response.Error(c, err)
		return
	}
	liked, err := h.useCase.HasLiked(c.Request.Context(), userID, target)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ExistsResponse{Exists: liked})
}

// Count 对象的点赞数
// @Summary      点赞数
// @Tags         点赞
// @Produce      json
// @Param        target_type query string true "message | book_interaction | review | quote"
// @Param        target_id   query int    true "对象ID"
// @Success      200 {object} response.Response{data=dto.CountResponse}
// @Failure      400 {object} response.ErrorBody
// @Router       /api/likes/count [get]
func (h *LikeHandler) Count(c *gin.Context) {
	var q dto.TargetQuery
	if !bindQuery(c, &q) {
		return
	}
	target, err := parseTarget(q.TargetType, q.TargetID, like.AllowedTargets...)
	if err != nil {
		response.Error(c, err)
		return
	}
	n, err := h.useCase.Count(c.Request.Context(), target)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.CountResponse{Count: n})
}

// List 点赞列表
// @Summary      点赞列表
// @Tags         点赞
// @Produce      json
// @Param        page        query int    false "页码"
// @Param        page_size   query int    false "每页数量"
// @Param        user_id     query int    false "用户ID"
// @Param        target_type query string false "message | book_interaction | review | quote"
// @Param        target_id   query int    false "对象ID"
// @Success      200 {object} response.Response{data=common.Page[applike.LikeResponse]}
// @Router       /api/likes [get]
func (h *LikeHandler) List(c *gin.Context) {
	var q dto.ListLikesQuery
	if !bindQuery(c, &q) {
		return
	}
	target, err := optionalTarget(q.TargetType, q.TargetID, like.AllowedTargets...)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.useCase.List(c.Request.Context(), applike.ListRequest{
		PageQuery: q.ToPageQuery(),
		UserID:    q.UserID,
		Target:    target,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
