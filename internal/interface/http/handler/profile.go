package handler

import (
	"github.com/gin-gonic/gin"

	appprofile "github.com/xiebiao/bookclub/internal/application/profile"
	"github.com/xiebiao/bookclub/internal/interface/http/dto"
	"github.com/xiebiao/bookclub/internal/interface/http/middleware"
	"github.com/xiebiao/bookclub/pkg/response"
)

// ProfileHandler 用户资料
type ProfileHandler struct {
	useCase *appprofile.UseCase
}

func NewProfileHandler(useCase *appprofile.UseCase) *ProfileHandler {
	return &ProfileHandler{useCase: useCase}
}

// Create 创建用户资料
// @Summary      创建用户资料
// @Description  注册时已自动创建空资料，此接口用于资料被删除后重建
// @Tags         用户资料
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateProfileRequest true "资料"
// @Success      201 {object} response.Response{data=appprofile.ProfileResponse}
// @Failure      400 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody "用户不存在"
// @Router       /api/user-profiles [post]
func (h *ProfileHandler) Create(c *gin.Context) {
	var req dto.CreateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.useCase.Create(c.Request.Context(), middleware.GetUserID(c), appprofile.CreateRequest{
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		Location:    req.Location,
		Website:     req.Website,
		BirthDate:   req.BirthDate,
		Gender:      req.Gender,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Get 资料详情
// @Summary      资料详情
// @Tags         用户资料
// @Produce      json
// @Param        id path int true "资料ID"
// @Success      200 {object} response.Response{data=appprofile.ProfileResponse}
// @Failure      404 {object} response.ErrorBody
// @Router       /api/user-profiles/{id} [get]
func (h *ProfileHandler) Get(c *gin.Context) {
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

// GetByUser 按用户ID查询资料
// @Summary      按用户查询资料
// @Tags         用户资料
// @Produce      json
// @Param        userId path int true "用户ID"
// @Success      200 {object} response.Response{data=appprofile.ProfileResponse}
// @Failure      404 {object} response.ErrorBody
// @Router       /api/user-profiles/by-user/{userId} [get]
func (h *ProfileHandler) GetByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	result, err := h.useCase.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Update 更新资料
// @Summary      更新资料
// @Tags         用户资料
// @Accept       json
// @Produce      json
// @Param        id      path int                      true "资料ID"
// @Param        request body dto.UpdateProfileRequest true "更新内容"
// @Success      200 {object} response.Response{data=appprofile.ProfileResponse}
// @Failure      400 {object} response.ErrorBody
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/user-profiles/{id} [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
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

// Delete 删除资料
// @Summary      删除资料
// @Tags         用户资料
// @Param        id path int true "资料ID"
// @Success      204
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/user-profiles/{id} [delete]
func (h *ProfileHandler) Delete(c *gin.Context) {
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

// List 资料列表
// @Summary      资料列表
// @Tags         用户资料
// @Produce      json
// @Param        page      query int    false "页码"
// @Param        page_size query int    false "每页数量"
// @Param        location  query string false "所在地"
// @Success      200 {object} response.Response{data=common.Page[appprofile.ProfileResponse]}
// @Router       /api/user-profiles [get]
func (h *ProfileHandler) List(c *gin.Context) {
	var q dto.ListProfilesQuery
	if !bindQuery(c, &q) {
		return
	}
	result, err := h.useCase.List(c.Request.Context(), appprofile.ListRequest{
		PageQuery: q.ToPageQuery(),
		Location:  q.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
