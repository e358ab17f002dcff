package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookclub/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
	"github.com/xiebiao/bookclub/pkg/jwt"
	"github.com/xiebiao/bookclub/pkg/response"
)

const (
	userIDKey = "user_id"
	claimsKey = "claims"
)

// AuthMiddleware JWT认证中间件
//  1. 从Header提取Bearer Token
//  2. 验证签名和过期时间，拒绝Refresh Token
//  3. 按jti检查黑名单（登出后的Token）
//  4. 将用户信息注入Context
type AuthMiddleware struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
	requireAuth  bool
}

// NewAuthMiddleware 创建认证中间件
// requireAuth=false时写操作也允许匿名访问
func NewAuthMiddleware(jwtManager *jwt.Manager, sessionStore *redis.SessionStore, requireAuth bool) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		requireAuth:  requireAuth,
	}
}

// OptionalAuth 有Token则验证，没有则作为匿名用户继续
// 携带了无效Token时返回401，不静默降级为匿名
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		claims, err := m.authenticate(c, header)
		if err != nil {
			response.Abort(c, err)
			return
		}
		c.Set(userIDKey, claims.UserID)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAuth 要求登录，需放在OptionalAuth之后
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == 0 {
			response.Abort(c, apperrors.ErrUnauthorized)
			return
		}
		c.Next()
	}
}

// Write 写操作的访问控制，由security.require_auth决定
func (m *AuthMiddleware) Write() gin.HandlerFunc {
	if !m.requireAuth {
		return func(c *gin.Context) { c.Next() }
	}
	return m.RequireAuth()
}

func (m *AuthMiddleware) authenticate(c *gin.Context, header string) (*jwt.Claims, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.ErrInvalidToken.WithDetails("Authorization格式应为: Bearer <token>")
	}

	claims, err := m.jwtManager.ParseAccessToken(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, err
	}

	revoked, err := m.sessionStore.IsInBlacklist(c.Request.Context(), claims.ID)
	if err != nil {
		return nil, apperrors.Wrap(err, "验证Token失败")
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	return claims, nil
}

// GetUserID 当前登录用户ID，匿名时为0
func GetUserID(c *gin.Context) uint {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetClaims 当前Token的Claims，匿名时为nil
func GetClaims(c *gin.Context) *jwt.Claims {
	if v, ok := c.Get(claimsKey); ok {
		if claims, ok := v.(*jwt.Claims); ok {
			return claims
		}
	}
	return nil
}
