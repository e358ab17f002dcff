package profile

import (
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

var (
	ErrProfileNotFound  = apperrors.NotFound("用户资料不存在")
	ErrProfileExists    = apperrors.BadRequest("该用户已有资料")
	ErrInvalidBirthDate = apperrors.BadRequest("出生日期不能晚于今天")
)
