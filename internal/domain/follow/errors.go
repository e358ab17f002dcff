package follow

import (
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

var (
	ErrFollowNotFound = apperrors.NotFound("关注关系不存在")
	ErrAlreadyFollow  = apperrors.BadRequest("已经关注过了")
	ErrFollowSelf     = apperrors.BadRequest("不能关注自己")
)
