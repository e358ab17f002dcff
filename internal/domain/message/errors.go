package message

import (
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

var (
	ErrMessageNotFound = apperrors.NotFound("消息不存在")
	ErrInvalidType     = apperrors.BadRequest("无效的消息类型")
	ErrTargetMismatch  = apperrors.BadRequest("消息关联对象与消息类型不匹配")
	ErrEmptyContent    = apperrors.BadRequest("消息内容不能为空")
	ErrSendToSelf      = apperrors.BadRequest("不能给自己发私信")
	ErrNotParticipant  = apperrors.Forbidden("只有消息的发送者或接收者可以操作")
)
