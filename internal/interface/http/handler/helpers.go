// Package handler HTTP处理器
// Handler只负责HTTP相关的事情：解析请求、调用应用层、返回响应，业务规则在domain和application层
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookclub/internal/domain/shared"
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
	"github.com/xiebiao/bookclub/pkg/response"
)

// pathID 解析路径中的ID参数，失败时已写入400响应
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, apperrors.ErrInvalidParams.WithDetails(name+": 必须是正整数"))
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.InvalidParams(c, err)
		return false
	}
	return true
}

func bindQuery(c *gin.Context, q interface{}) bool {
	if err := c.ShouldBindQuery(q); err != nil {
		response.InvalidParams(c, err)
		return false
	}
	return true
}

// badParam 枚举等参数解析错误统一为400
func badParam(err error) error {
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.ErrInvalidParams.WithDetails(err.Error())
}

// parseTarget 解析?target_type=&target_id=
func parseTarget(kind string, id uint, allowed ...shared.TargetKind) (shared.Target, error) {
	k, err := shared.ParseTargetKind(kind, allowed...)
	if err != nil {
		return shared.Target{}, err
	}
	t := shared.Target{Kind: k, ID: id}
	if err := t.Check(allowed...); err != nil {
		return shared.Target{}, err
	}
	return t, nil
}

// optionalTarget 列表过滤用，两个参数都为空时返回nil
func optionalTarget(kind string, id uint, allowed ...shared.TargetKind) (*shared.Target, error) {
	if kind == "" && id == 0 {
		return nil, nil
	}
	t, err := parseTarget(kind, id, allowed...)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
