package review

import (
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

var (
	ErrReviewNotFound = apperrors.NotFound("书评不存在")
	ErrInvalidRating  = apperrors.BadRequest("书评评分必须在1-5之间")
	ErrEmptyContent   = apperrors.BadRequest("书评内容不能为空")
)
