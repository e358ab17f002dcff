package dto

import (
	"github.com/xiebiao/bookclub/internal/application/common"
)

// PageQuery 分页参数，默认第1页、每页20条，最多100条，页码最大10000
type PageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1,max=10000" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}

func (q PageQuery) ToPageQuery() common.PageQuery {
	return common.PageQuery{Page: q.Page, PageSize: q.PageSize}
}

// TargetQuery 通过query参数指定目标对象，如?target_type=review&target_id=12
type TargetQuery struct {
	TargetType string `form:"target_type" binding:"required" example:"review"`
	TargetID   uint   `form:"target_id" binding:"required,min=1" example:"12"`
}

// CountResponse 计数
type CountResponse struct {
	Count int64 `json:"count" example:"3"`
}

// ExistsResponse 存在性查询
type ExistsResponse struct {
	Exists bool `json:"exists" example:"true"`
}
