package quote

import (
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

var (
	ErrQuoteNotFound = apperrors.NotFound("书摘不存在")
	ErrEmptyContent  = apperrors.BadRequest("书摘内容不能为空")
	ErrInvalidPage   = apperrors.BadRequest("页码不能为负数")
)
