package book

import (
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.NotFound("图书不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.BadRequest("ISBN号已存在")

	// ErrInvalidISBN ISBN格式不正确
	ErrInvalidISBN = apperrors.BadRequest("ISBN格式不正确")

	// ErrInvalidYear 出版年份不合法
	ErrInvalidYear = apperrors.BadRequest("出版年份不合法")

	// ErrInvalidYearRange 年份范围不合法
	ErrInvalidYearRange = apperrors.BadRequest("起始年份不能大于结束年份")
)
