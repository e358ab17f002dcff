package common

import (
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

// Anonymous 未携带Token的调用者
const Anonymous uint = 0

// Authorize 校验调用者是否为资源所有者
// 匿名调用（未开启强制认证时）不做限制
func Authorize(actorID, ownerID uint) error {
	if actorID == Anonymous || actorID == ownerID {
		return nil
	}
	return apperrors.ErrForbidden
}

// ResolveOwner 创建资源时确定所有者
// 请求体未指定时使用调用者，两者都有时必须一致
func ResolveOwner(actorID, requested uint) (uint, error) {
	if requested == 0 {
		if actorID == Anonymous {
			return 0, apperrors.ErrInvalidParams.WithDetails("user_id: required")
		}
		return actorID, nil
	}
	if err := Authorize(actorID, requested); err != nil {
		return 0, err
	}
	return requested, nil
}
