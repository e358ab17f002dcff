package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 应用错误（所有业务错误的基类）
// 设计说明：
// 1. Status决定HTTP状态码，只允许400/401/403/404/500五种
// 2. Message是用户友好的提示信息
// 3. Details携带字段级别的补充信息（如参数校验失败的字段）
// 4. Err是内部错误，仅记录到日志，不返回给客户端
type AppError struct {
	Status  int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	Err     error    `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 同状态码同消息的AppError视为同一错误
// 领域层的预定义错误经WithDetails复制后仍可用errors.Is判断
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Status == t.Status && e.Message == t.Message
}

// WithDetails 返回附带详情的副本（不修改预定义错误）
func (e *AppError) WithDetails(details ...string) *AppError {
	cp := *e
	cp.Details = append(append([]string(nil), e.Details...), details...)
	return &cp
}

// New 创建新的AppError
// status只应使用下方的五种状态码，其余值按500处理
func New(status int, message string) *AppError {
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden,
		http.StatusNotFound, http.StatusInternalServerError:
	default:
		status = http.StatusInternalServerError
	}
	return &AppError{
		Status:  status,
		Message: message,
	}
}

// BadRequest 400 参数或业务规则校验失败
func BadRequest(message string, details ...string) *AppError {
	return New(http.StatusBadRequest, message).WithDetails(details...)
}

// Unauthorized 401 未登录或Token无效
func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message)
}

// Forbidden 403 无权操作
func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message)
}

// NotFound 404 资源不存在
func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

// Internal 500 系统内部错误
func Internal(message string) *AppError {
	return New(http.StatusInternalServerError, message)
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为500错误，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Status:  http.StatusInternalServerError,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// =========================================
// 预定义错误
// =========================================

var (
	ErrInternal      = Internal("系统内部错误")
	ErrUnauthorized  = Unauthorized("请先登录")
	ErrInvalidToken  = Unauthorized("无效的Token")
	ErrTokenExpired  = Unauthorized("Token已过期")
	ErrTokenRevoked  = Unauthorized("Token已失效，请重新登录")
	ErrForbidden     = Forbidden("无权限访问")
	ErrInvalidParams = BadRequest("参数错误")
	ErrRouteNotFound = NotFound("接口不存在")
)

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

// StatusOf 返回错误对应的HTTP状态码
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return GetAppError(err).Status
}
