package booksale

import (
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

var (
	ErrSaleNotFound     = apperrors.NotFound("售卖信息不存在")
	ErrInvalidPrice     = apperrors.BadRequest("价格不能为负数")
	ErrInvalidCurrency  = apperrors.BadRequest("币种必须是3位ISO 4217代码")
	ErrInvalidPriceSpan = apperrors.BadRequest("最低价不能大于最高价")
)
