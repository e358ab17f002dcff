package response

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

// Response 统一成功响应结构
// Code=0表示成功，Data为业务数据
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorBody 统一错误响应结构
// 所有错误（业务错误、参数错误、panic、404路由）都以此结构返回
type ErrorBody struct {
	Timestamp string   `json:"timestamp"`
	Message   string   `json:"message"`
	Path      string   `json:"path"`
	Code      int      `json:"code"`
	Details   []string `json:"details"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应（201）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// NoContent 删除成功（204）
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	if err := svc.Create(...); err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	// 服务端错误记录内部原因，客户端只看到Message
	if appErr.Status >= http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().
			Err(unwrapCause(appErr)).
			Str("path", c.Request.URL.Path).
			Msg(appErr.Message)
	}

	writeError(c, appErr)
}

// InvalidParams 参数绑定/校验失败（400）
// validator.ValidationErrors会被展开为"字段: 规则"形式的details
func InvalidParams(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fieldDetail(fe))
		}
		writeError(c, apperrors.ErrInvalidParams.WithDetails(details...))
		return
	}
	writeError(c, apperrors.ErrInvalidParams.WithDetails(err.Error()))
}

// Abort 写入错误响应并终止后续Handler（中间件使用）
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

func writeError(c *gin.Context, appErr *apperrors.AppError) {
	details := appErr.Details
	if details == nil {
		details = []string{}
	}
	c.JSON(appErr.Status, ErrorBody{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Message:   appErr.Message,
		Path:      c.Request.URL.Path,
		Code:      appErr.Status,
		Details:   details,
	})
}

func fieldDetail(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
}

func unwrapCause(appErr *apperrors.AppError) error {
	if appErr.Err != nil {
		return appErr.Err
	}
	return appErr
}
