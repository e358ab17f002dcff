package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookclub/internal/infrastructure/config"
	"github.com/xiebiao/bookclub/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookclub/pkg/jwt"
	"github.com/xiebiao/bookclub/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuth(t *testing.T, requireAuth bool) (*AuthMiddleware, *jwt.Manager, *redis.SessionStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	manager := jwt.NewManager("test-secret", time.Minute, time.Hour)
	sessions := redis.NewSessionStore(client)
	return NewAuthMiddleware(manager, sessions, requireAuth), manager, sessions
}

func serve(r *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func whoami(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
}

func TestOptionalAuth(t *testing.T) {
	auth, manager, sessions := newAuth(t, false)
	r := gin.New()
	r.Use(auth.OptionalAuth())
	r.GET("/me", whoami)
	r.POST("/write", auth.Write(), whoami)

	// 匿名
	w := serve(r, http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":0}`, w.Body.String())

	// 未开启强制认证时写操作也允许匿名
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/write", nil).Code)

	pair, err := manager.GenerateToken(42, "alice", "alice@example.com")
	require.NoError(t, err)
	w = serve(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + pair.AccessToken})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":42}`, w.Body.String())

	// Refresh Token不能用于接口鉴权
	w = serve(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + pair.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodGet, "/me", map[string]string{"Authorization": "Token abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 登出后的Token
	claims, err := manager.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.NoError(t, sessions.AddToBlacklist(context.Background(), claims.ID, time.Minute))
	w = serve(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + pair.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWrite_RequireAuth(t *testing.T) {
	auth, manager, _ := newAuth(t, true)
	r := gin.New()
	r.Use(auth.OptionalAuth())
	r.POST("/write", auth.Write(), whoami)

	w := serve(r, http.MethodPost, "/write", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/write", body.Path)

	pair, err := manager.GenerateToken(1, "alice", "alice@example.com")
	require.NoError(t, err)
	w = serve(r, http.MethodPost, "/write", map[string]string{"Authorization": "Bearer " + pair.AccessToken})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoggerAndRecovery(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(Logger(zerolog.New(&buf)))
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/ok", func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Info().Msg("inside")
		c.Status(http.StatusOK)
	})

	w := serve(r, http.MethodGet, "/ok", map[string]string{RequestIDHeader: "req-1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-1", w.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
	assert.Contains(t, buf.String(), `"message":"inside"`)

	buf.Reset()
	w = serve(r, http.MethodGet, "/panic", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusInternalServerError, body.Code)
	assert.Contains(t, buf.String(), "boom")
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS(config.CORSConfig{
		Enabled:          true,
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           time.Hour,
	}))
	r.GET("/books", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, http.MethodGet, "/books", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(r, http.MethodGet, "/books", map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = serve(r, http.MethodOptions, "/books", map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))

	w = serve(r, http.MethodGet, "/books", map[string]string{"Origin": "http://evil.example"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
