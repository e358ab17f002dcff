package like

import (
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

var (
	ErrLikeNotFound = apperrors.NotFound("点赞记录不存在")
	// ErrAlreadyLiked 仓储层唯一索引冲突，服务层转换为返回已有记录
	ErrAlreadyLiked = apperrors.BadRequest("已经点过赞了")
)
