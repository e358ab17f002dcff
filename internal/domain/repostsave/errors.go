package repostsave

import (
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

var (
	ErrRepostSaveNotFound = apperrors.NotFound("转发/收藏记录不存在")
	ErrAlreadyExists      = apperrors.BadRequest("已经转发或收藏过了")
	ErrInvalidAction      = apperrors.BadRequest("无效的动作类型")
)
