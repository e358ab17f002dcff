// Package router 注册HTTP路由和全局中间件
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookclub/internal/infrastructure/config"
	"github.com/xiebiao/bookclub/internal/interface/http/dto"
	"github.com/xiebiao/bookclub/internal/interface/http/handler"
	"github.com/xiebiao/bookclub/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
	"github.com/xiebiao/bookclub/pkg/metrics"
	"github.com/xiebiao/bookclub/pkg/response"
)

// Handlers 所有资源的处理器
type Handlers struct {
	User        *handler.UserHandler
	Profile     *handler.ProfileHandler
	Book        *handler.BookHandler
	BookSale    *handler.BookSaleHandler
	Interaction *handler.InteractionHandler
	Review      *handler.ReviewHandler
	Quote       *handler.QuoteHandler
	Message     *handler.MessageHandler
	Follow      *handler.FollowHandler
	Like        *handler.LikeHandler
	RepostSave  *handler.RepostSaveHandler
}

// New 创建Gin引擎
// 中间件顺序：Tracing → Logger → Recovery → CORS → Metrics → OptionalAuth
// Tracing在最外层，日志里才能带上trace_id
func New(cfg *config.Config, log zerolog.Logger, h *Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	dto.RegisterValidators()

	r := gin.New()
	r.Use(middleware.Tracing())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORS))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics())
	}
	r.Use(auth.OptionalAuth())

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrRouteNotFound)
	})

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong"})
	})
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	registerUserRoutes(api, h, auth)
	registerCatalogRoutes(api, h, auth)
	registerReadingRoutes(api, h, auth)
	registerSocialRoutes(api, h, auth)

	return r
}

func registerUserRoutes(api *gin.RouterGroup, h *Handlers, auth *middleware.AuthMiddleware) {
	w := auth.Write()

	users := api.Group("/users")
	{
		// 注册是公开接口，POST /api/users与/register等价
		users.POST("", h.User.Register)
		users.POST("/register", h.User.Register)
		users.POST("/login", h.User.Login)
		users.POST("/refresh", h.User.Refresh)
		users.POST("/logout", auth.RequireAuth(), h.User.Logout)

		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", w, h.User.Update)
		users.DELETE("/:id", w, h.User.Delete)
	}

	profiles := api.Group("/user-profiles")
	{
		profiles.POST("", w, h.Profile.Create)
		profiles.GET("", h.Profile.List)
		profiles.GET("/by-user/:userId", h.Profile.GetByUser)
		profiles.GET("/:id", h.Profile.Get)
		profiles.PUT("/:id", w, h.Profile.Update)
		profiles.DELETE("/:id", w, h.Profile.Delete)
	}
}

func registerCatalogRoutes(api *gin.RouterGroup, h *Handlers, auth *middleware.AuthMiddleware) {
	w := auth.Write()

	books := api.Group("/books")
	{
		books.POST("", w, h.Book.Create)
		books.GET("", h.Book.List)
		books.GET("/:id", h.Book.Get)
		books.PUT("/:id", w, h.Book.Update)
		books.DELETE("/:id", w, h.Book.Delete)
	}

	sales := api.Group("/book-sales")
	{
		sales.POST("", w, h.BookSale.Create)
		sales.GET("", h.BookSale.List)
		sales.GET("/:id", h.BookSale.Get)
		sales.PUT("/:id", w, h.BookSale.Update)
		sales.DELETE("/:id", w, h.BookSale.Delete)
	}
}

func registerReadingRoutes(api *gin.RouterGroup, h *Handlers, auth *middleware.AuthMiddleware) {
	w := auth.Write()

	interactions := api.Group("/book-interactions")
	{
		interactions.POST("", w, h.Interaction.Create)
		interactions.GET("", h.Interaction.List)
		interactions.GET("/:id", h.Interaction.Get)
		interactions.PUT("/:id", w, h.Interaction.Update)
		interactions.DELETE("/:id", w, h.Interaction.Delete)
	}

	reviews := api.Group("/reviews")
	{
		reviews.POST("", w, h.Review.Create)
		reviews.GET("", h.Review.List)
		reviews.GET("/:id", h.Review.Get)
		reviews.PUT("/:id", w, h.Review.Update)
		reviews.DELETE("/:id", w, h.Review.Delete)
	}

	quotes := api.Group("/quotes")
	{
		quotes.POST("", w, h.Quote.Create)
		quotes.GET("", h.Quote.List)
		quotes.GET("/:id", h.Quote.Get)
		quotes.PUT("/:id", w, h.Quote.Update)
		quotes.DELETE("/:id", w, h.Quote.Delete)
	}
}

// 关注、点赞、转发收藏是关系记录，没有PUT，修改即删除后重建
func registerSocialRoutes(api *gin.RouterGroup, h *Handlers, auth *middleware.AuthMiddleware) {
	w := auth.Write()

	messages := api.Group("/messages")
	{
		messages.POST("", w, h.Message.Send)
		messages.GET("", h.Message.List)
		messages.GET("/conversation", h.Message.Conversation)
		messages.GET("/:id", h.Message.Get)
		messages.PUT("/:id", w, h.Message.Update)
		messages.PATCH("/:id/read", w, h.Message.MarkRead)
		messages.DELETE("/:id", w, h.Message.Delete)
	}

	follows := api.Group("/follows")
	{
		follows.POST("", w, h.Follow.Create)
		follows.GET("", h.Follow.List)
		follows.GET("/exists", h.Follow.Exists)
		follows.GET("/stats/:userId", h.Follow.Stats)
		follows.GET("/:id", h.Follow.Get)
		follows.DELETE("/:id", w, h.Follow.Delete)
	}

	likes := api.Group("/likes")
	{
		likes.POST("", w, h.Like.Create)
		likes.GET("", h.Like.List)
		likes.GET("/exists", h.Like.Exists)
		likes.GET("/count", h.Like.Count)
		likes.GET("/:id", h.Like.Get)
		likes.DELETE("", w, h.Like.Unlike)
		likes.DELETE("/:id", w, h.Like.Delete)
	}

	repostSaves := api.Group("/repost-saves")
	{
		repostSaves.POST("", w, h.RepostSave.Create)
		repostSaves.GET("", h.RepostSave.List)
		repostSaves.GET("/exists", h.RepostSave.Exists)
		repostSaves.GET("/:id", h.RepostSave.Get)
		repostSaves.DELETE("/:id", w, h.RepostSave.Delete)
	}
}
