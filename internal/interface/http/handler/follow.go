package handler

import (
	"github.com/gin-gonic/gin"

	appfollow "github.com/xiebiao/bookclub/internal/application/follow"
	"github.com/xiebiao/bookclub/internal/domain/follow"
	"github.com/xiebiao/bookclub/internal/interface/http/dto"
	"github.com/xiebiao/bookclub/internal/interface/http/middleware"
	"github.com/xiebiao/bookclub/pkg/response"
)

// FollowHandler 关注
type FollowHandler struct {
	useCase *appfollow.UseCase
}

func NewFollowHandler(useCase *appfollow.UseCase) *FollowHandler {
	return &FollowHandler{useCase: useCase}
}

// Create 关注用户或图书
// @Summary      关注
// @Description  followed_user_id和followed_book_id二选一；重复关注、关注自己返回400
// @Tags         关注
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateFollowRequest true "关注"
// @Success      201 {object} response.Response{data=appfollow.FollowResponse}
// @Failure      400 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/follows [post]
func (h *FollowHandler) Create(c *gin.Context) {
	var req dto.CreateFollowRequest
	if !bindJSON(c, &req) {
		return
	}
	target, err := req.Target()
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.useCase.Create(c.Request.Context(), middleware.GetUserID(c), appfollow.CreateRequest{
		FollowerID: req.FollowerID,
		Target:     target,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// @Summary      关注详情
// @Tags         关注
// @Produce      json
// @Param        id path int true "关注ID"
// @Success      200 {object} response.Response{data=appfollow.FollowResponse}
// @Failure      404 {object} response.ErrorBody
// @Router       /api/follows/{id} [get]
func (h *FollowHandler) Get(c *gin.Context) {
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

// Delete 取消关注
// @Summary      取消关注
// @Tags         关注
// @Param        id path int true "关注ID"
// @Success      204
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/follows/{id} [delete]
func (h *FollowHandler) Delete(c *gin.Context) {
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

// @Summary      关注列表
// @Tags         关注
// @Produce      json
// @Param        page             query int false "页码"
// @Param        page_size        query int false "每页数量"
// @Param        follower_id      query int false "关注者"
// @Param        followed_user_id query int false "被关注的用户"
// @Param        followed_book_id query int false "被关注的图书"
// @Success      200 {object} response.Response{data=common.Page[appfollow.FollowResponse]}
// @Router       /api/follows [get]
func (h *FollowHandler) List(c *gin.Context) {
	var q dto.ListFollowsQuery
	if !bindQuery(c, &q) {
		return
	}
	result, err := h.useCase.List(c.Request.Context(), appfollow.ListRequest{
		PageQuery:      q.ToPageQuery(),
		FollowerID:     q.FollowerID,
		FollowedUserID: q.FollowedUserID,
		FollowedBookID: q.FollowedBookID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Exists 是否已关注
// @Summary      是否已关注
// @Tags         关注
// @Produce      json
// @Param        follower_id query int    true "关注者"
// @Param        target_type query string true "user | book"
// @Param        target_id   query int    true "对象ID"
// @Success      200 {object} response.Response{data=dto.ExistsResponse}
// @Failure      400 {object} response.ErrorBody
// @Router       /api/follows/exists [get]
func (h *FollowHandler) Exists(c *gin.Context) {
	var q dto.FollowExistsQuery
	if !bindQuery(c, &q) {
		return
	}
	target, err := parseTarget(q.TargetType, q.TargetID, follow.AllowedTargets...)
	if err != nil {
		response.Error(c, err)
		return
	}
	exists, err := h.useCase.Exists(c.Request.Context(), q.FollowerID, target)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ExistsResponse{Exists: exists})
}

// Stats 粉丝数和关注数
// @Summary      关注统计
// @Tags         关注
// @Produce      json
// @Param        userId path int true "用户ID"
// @Success      200 {object} response.Response{data=appfollow.StatsResponse}
// @Failure      404 {object} response.ErrorBody
// @Router       /api/follows/stats/{userId} [get]
func (h *FollowHandler) Stats(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	result, err := h.useCase.Stats(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
