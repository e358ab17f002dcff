package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, ErrorBody) {
	t.Helper()
	r := gin.New()
	r.GET("/api/things", h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/things", nil)
	r.ServeHTTP(w, req)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestError_UniformBody(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) {
		Error(c, apperrors.NotFound("图书不存在"))
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, http.StatusNotFound, body.Code)
	assert.Equal(t, "图书不存在", body.Message)
	assert.Equal(t, "/api/things", body.Path)
	assert.NotEmpty(t, body.Timestamp)
	assert.NotNil(t, body.Details)
}

func TestError_PlainErrorBecomes500(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) {
		Error(c, errors.New("dial tcp: refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "系统内部错误", body.Message)
	assert.NotContains(t, w.Body.String(), "refused")
}

func TestInvalidParams_ValidationDetails(t *testing.T) {
	type payload struct {
		Title string `validate:"required"`
		Pages int    `validate:"min=1"`
	}
	verr := validator.New().Struct(payload{})
	require.Error(t, verr)

	w, body := perform(t, func(c *gin.Context) {
		InvalidParams(c, verr)
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body.Details, "Title: required")
	assert.Contains(t, body.Details, "Pages: min=1")
}
