package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_StatusWhitelist(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, New(http.StatusBadRequest, "x").Status)
	assert.Equal(t, http.StatusNotFound, New(http.StatusNotFound, "x").Status)
	// 409等非体系内状态码统一降级为500
	assert.Equal(t, http.StatusInternalServerError, New(http.StatusConflict, "x").Status)
}

func TestConstructors(t *testing.T) {
	cases := map[int]*AppError{
		http.StatusBadRequest:          BadRequest("bad"),
		http.StatusUnauthorized:        Unauthorized("who"),
		http.StatusForbidden:           Forbidden("no"),
		http.StatusNotFound:            NotFound("gone"),
		http.StatusInternalServerError: Internal("boom"),
	}
	for status, err := range cases {
		assert.Equal(t, status, err.Status)
		assert.Equal(t, status, StatusOf(err))
	}
}

func TestWithDetails_DoesNotMutateOriginal(t *testing.T) {
	base := BadRequest("参数错误")
	withDetails := base.WithDetails("title: required")

	assert.Empty(t, base.Details)
	assert.Equal(t, []string{"title: required"}, withDetails.Details)
	assert.True(t, errors.Is(withDetails, base))
}

func TestGetAppError(t *testing.T) {
	t.Run("包装过的AppError可被提取", func(t *testing.T) {
		err := fmt.Errorf("context: %w", NotFound("图书不存在"))
		appErr := GetAppError(err)
		assert.Equal(t, http.StatusNotFound, appErr.Status)
		assert.Equal(t, "图书不存在", appErr.Message)
	})

	t.Run("普通错误转为500", func(t *testing.T) {
		raw := errors.New("connection refused")
		appErr := GetAppError(raw)
		assert.Equal(t, http.StatusInternalServerError, appErr.Status)
		assert.ErrorIs(t, appErr, raw)
	})

	assert.Equal(t, http.StatusOK, StatusOf(nil))
}
