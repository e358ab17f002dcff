package handler

import (
	"github.com/gin-gonic/gin"

	appmessage "github.com/xiebiao/bookclub/internal/application/message"
	"github.com/xiebiao/bookclub/internal/domain/message"
	"github.com/xiebiao/bookclub/internal/domain/shared"
	"github.com/xiebiao/bookclub/internal/interface/http/dto"
	"github.com/xiebiao/bookclub/internal/interface/http/middleware"
	"github.com/xiebiao/bookclub/pkg/response"
)

// 消息可以关联的对象：私信的接收者、阅读记录、书评、书摘
var messageTargets = []shared.TargetKind{
	shared.TargetUser, shared.TargetBookInteraction, shared.TargetReview, shared.TargetQuote,
}

// MessageHandler 消息HTTP处理器
type MessageHandler struct {
	useCase *appmessage.UseCase
}

// NewMessageHandler 创建消息处理器
func NewMessageHandler(useCase *appmessage.UseCase) *MessageHandler {
	return &MessageHandler{useCase: useCase}
}

// Send 发送消息
// @Summary      发送消息
// @Description  message_type决定哪个关联字段必填，其余关联字段必须为空：
// @Description  personal→receiver_id，book→book_interaction_id，review→review_id，quote→quote_id
// @Tags         消息
// @Accept       json
// @Produce      json
// @Param        request body dto.SendMessageRequest true "消息"
// @Success      201 {object} response.Response{data=appmessage.MessageResponse}
// @Failure      400 {object} response.ErrorBody "关联字段与消息类型不匹配"
// @Failure      404 {object} response.ErrorBody "关联对象不存在"
// @Router       /api/messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	var req dto.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.useCase.Send(c.Request.Context(), middleware.GetUserID(c), appmessage.SendRequest{
		SenderID:          req.SenderID,
		Type:              req.MessageType,
		ReceiverID:        req.ReceiverID,
		BookInteractionID: req.BookInteractionID,
		ReviewID:          req.ReviewID,
		QuoteID:           req.QuoteID,
		Content:           req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Get 消息详情
// @Summary      消息详情
// @Tags         消息
// @Produce      json
// @Param        id path int true "消息ID"
// @Success      200 {object} response.Response{data=appmessage.MessageResponse}
// @Failure      404 {object} response.ErrorBody
// @Router       /api/messages/{id} [get]
func (h *MessageHandler) Get(c *gin.Context) {
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

// Update 修改消息内容，类型和关联对象不可修改
// @Summary      修改消息
// @Tags         消息
// @Accept       json
// @Produce      json
// @Param        id      path int                      true "消息ID"
// @Param        request body dto.UpdateMessageRequest true "新内容"
// @Success      200 {object} response.Response{data=appmessage.MessageResponse}
// @Failure      400 {object} response.ErrorBody
// @Failure      403 {object} response.ErrorBody "不是发送者"
// @Failure      404 {object} response.ErrorBody
// @Router       /api/messages/{id} [put]
func (h *MessageHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.useCase.UpdateContent(c.Request.Context(), middleware.GetUserID(c), id, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// MarkRead 标记已读
// @Summary      标记已读
// @Tags         消息
// @Produce      json
// @Param        id path int true "消息ID"
// @Success      200 {object} response.Response{data=appmessage.MessageResponse}
// @Failure      403 {object} response.ErrorBody "不是接收者"
// @Failure      404 {object} response.ErrorBody
// @Router       /api/messages/{id}/read [patch]
func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.useCase.MarkRead(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除消息及其点赞
// @Summary      删除消息
// @Tags         消息
// @Param        id path int true "消息ID"
// @Success      204
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/messages/{id} [delete]
func (h *MessageHandler) Delete(c *gin.Context) {
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

// List 消息列表
// @Summary      消息列表
// @Tags         消息
// @Produce      json
// @Param        page         query int    false "页码"
// @Param        page_size    query int    false "每页数量"
// @Param        sender_id    query int    false "发送者"
// @Param        receiver_id  query int    false "接收者"
// @Param        message_type query string false "personal | book | review | quote"
// @Param        target_type  query string false "user | book_interaction | review | quote"
// @Param        target_id    query int    false "关联对象ID"
// @Param        unread_only  query bool   false "只看未读"
// @Success      200 {object} response.Response{data=common.Page[appmessage.MessageResponse]}
// @Failure      400 {object} response.ErrorBody
// @Router       /api/messages [get]
func (h *MessageHandler) List(c *gin.Context) {
	var q dto.ListMessagesQuery
	if !bindQuery(c, &q) {
		return
	}

	var msgType message.Type
	if q.MessageType != "" {
		t, err := message.ParseType(q.MessageType)
		if err != nil {
			response.Error(c, badParam(err))
			return
		}
		msgType = t
	}
	target, err := optionalTarget(q.TargetType, q.TargetID, messageTargets...)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.useCase.List(c.Request.Context(), appmessage.ListRequest{
		PageQuery:  q.ToPageQuery(),
		SenderID:   q.SenderID,
		ReceiverID: q.ReceiverID,
		Type:       msgType,
		Target:     target,
		UnreadOnly: q.UnreadOnly,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Conversation 两个用户之间的私信，按时间正序
// @Summary      私信会话
// @Tags         消息
// @Produce      json
// @Param        user_a    query int true  "用户A"
// @Param        user_b    query int true  "用户B"
// @Param        page      query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=common.Page[appmessage.MessageResponse]}
// @Failure      403 {object} response.ErrorBody
// @Router       /api/messages/conversation [get]
func (h *MessageHandler) Conversation(c *gin.Context) {
	var q dto.ConversationQuery
	if !bindQuery(c, &q) {
		return
	}
	result, err := h.useCase.Conversation(c.Request.Context(), middleware.GetUserID(c), q.UserA, q.UserB, q.ToPageQuery())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
