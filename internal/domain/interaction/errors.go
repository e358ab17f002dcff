package interaction

import (
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

var (
	ErrInteractionNotFound = apperrors.NotFound("阅读记录不存在")
	ErrInteractionExists   = apperrors.BadRequest("该用户已有这本书的阅读记录")
	ErrInvalidRating       = apperrors.BadRequest("评分必须在0-5之间")
	ErrInvalidPeriod       = apperrors.BadRequest("完成时间不能早于开始时间")
)
