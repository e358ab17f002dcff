package user

import (
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

// 用户领域错误定义
var (
	ErrUserNotFound       = apperrors.NotFound("用户不存在")
	ErrEmailDuplicate     = apperrors.BadRequest("邮箱已被注册")
	ErrUsernameDuplicate  = apperrors.BadRequest("用户名已被占用")
	ErrInvalidEmail       = apperrors.BadRequest("邮箱格式不正确")
	ErrInvalidUsername    = apperrors.BadRequest("用户名应为3-30个字符，只能包含字母、数字、下划线")
	ErrWeakPassword       = apperrors.BadRequest("密码应为8-20位，且同时包含字母和数字")
	ErrInvalidCredentials = apperrors.Unauthorized("邮箱或密码错误")
	ErrNothingToUpdate    = apperrors.BadRequest("没有需要更新的字段")
)
