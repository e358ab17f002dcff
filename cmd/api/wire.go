//go:build wireinject
// +build wireinject

// Wire依赖注入配置，修改后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/rs/zerolog"

	appbooksale "github.com/xiebiao/bookclub/internal/application/booksale"
	"github.com/xiebiao/bookclub/internal/application/common"
	appfollow "github.com/xiebiao/bookclub/internal/application/follow"
	appinteraction "github.com/xiebiao/bookclub/internal/application/interaction"
	applike "github.com/xiebiao/bookclub/internal/application/like"
	appmessage "github.com/xiebiao/bookclub/internal/application/message"
	appprofile "github.com/xiebiao/bookclub/internal/application/profile"
	appquote "github.com/xiebiao/bookclub/internal/application/quote"
	apprepostsave "github.com/xiebiao/bookclub/internal/application/repostsave"
	appreview "github.com/xiebiao/bookclub/internal/application/review"
	appuser "github.com/xiebiao/bookclub/internal/application/user"
	"github.com/xiebiao/bookclub/internal/domain/book"
	"github.com/xiebiao/bookclub/internal/domain/booksale"
	"github.com/xiebiao/bookclub/internal/domain/content"
	"github.com/xiebiao/bookclub/internal/domain/follow"
	"github.com/xiebiao/bookclub/internal/domain/interaction"
	"github.com/xiebiao/bookclub/internal/domain/like"
	"github.com/xiebiao/bookclub/internal/domain/message"
	"github.com/xiebiao/bookclub/internal/domain/profile"
	"github.com/xiebiao/bookclub/internal/domain/quote"
	"github.com/xiebiao/bookclub/internal/domain/repostsave"
	"github.com/xiebiao/bookclub/internal/domain/review"
	"github.com/xiebiao/bookclub/internal/domain/user"
	"github.com/xiebiao/bookclub/internal/infrastructure/config"
	"github.com/xiebiao/bookclub/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookclub/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookclub/internal/interface/http/handler"
	"github.com/xiebiao/bookclub/internal/interface/http/router"
)

// infrastructureSet 数据库、Redis、事件发布
var infrastructureSet = wire.NewSet(
	mysql.NewDB,
	redis.NewClient,
	redis.NewBookCache,
	providePublisher,
)

// repositorySet 仓储
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewProfileRepository,
	mysql.NewBookRepository,
	mysql.NewBookSaleRepository,
	mysql.NewInteractionRepository,
	mysql.NewReviewRepository,
	mysql.NewQuoteRepository,
	mysql.NewMessageRepository,
	mysql.NewFollowRepository,
	mysql.NewLikeRepository,
	mysql.NewRepostSaveRepository,
	mysql.NewTxManager,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	content.NewChecker,
	user.NewService,
	profile.NewService,
	book.NewService,
	booksale.NewService,
	interaction.NewService,
	review.NewService,
	quote.NewService,
	message.NewService,
	follow.NewService,
	like.NewService,
	repostsave.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	common.NewCascade,
	appuser.NewRegisterUseCase,
	provideLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewRefreshUseCase,
	appuser.NewUseCase,
	appprofile.NewUseCase,
	provideBookUseCase,
	appbooksale.NewUseCase,
	appinteraction.NewUseCase,
	appreview.NewUseCase,
	appquote.NewUseCase,
	appmessage.NewUseCase,
	appfollow.NewUseCase,
	applike.NewUseCase,
	apprepostsave.NewUseCase,
)

// middlewareSet JWT、会话、认证中间件
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	provideAuthMiddleware,
)

// handlerSet HTTP处理器
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewProfileHandler,
	handler.NewBookHandler,
	handler.NewBookSaleHandler,
	handler.NewInteractionHandler,
	handler.NewReviewHandler,
	handler.NewQuoteHandler,
	handler.NewMessageHandler,
	handler.NewFollowHandler,
	handler.NewLikeHandler,
	handler.NewRepostSaveHandler,
	wire.Struct(new(router.Handlers), "*"),
)

// InitializeApp 组装整个应用，cleanup关闭事件发布连接
func InitializeApp(cfg *config.Config, log zerolog.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		router.New,
	)
	return nil, nil, nil
}
