package main

import (
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appbook "github.com/xiebiao/bookclub/internal/application/book"
	appuser "github.com/xiebiao/bookclub/internal/application/user"
	"github.com/xiebiao/bookclub/internal/domain/book"
	"github.com/xiebiao/bookclub/internal/domain/user"
	"github.com/xiebiao/bookclub/internal/infrastructure/config"
	"github.com/xiebiao/bookclub/internal/infrastructure/events"
	"github.com/xiebiao/bookclub/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookclub/internal/interface/http/middleware"
	"github.com/xiebiao/bookclub/pkg/circuitbreaker"
	"github.com/xiebiao/bookclub/pkg/jwt"
	"github.com/xiebiao/bookclub/pkg/mq"
)

// 以下Provider需要从Config中提取参数，Wire无法自动推断

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
}

func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

func provideAuthMiddleware(cfg *config.Config, jwtManager *jwt.Manager, sessions *redis.SessionStore) *middleware.AuthMiddleware {
	return middleware.NewAuthMiddleware(jwtManager, sessions, cfg.Security.RequireAuth)
}

// provideLoginUseCase 会话有效期与Refresh Token一致
func provideLoginUseCase(cfg *config.Config, userService user.Service, jwtManager *jwt.Manager, sessions *redis.SessionStore) *appuser.LoginUseCase {
	return appuser.NewLoginUseCase(userService, jwtManager, sessions, cfg.JWT.RefreshTokenExpire)
}

func provideBookUseCase(cfg *config.Config, service book.Service, cache book.Cache) *appbook.UseCase {
	return appbook.NewUseCase(service, cache, cfg.Cache.BookTTL)
}

// providePublisher mq.enabled时发布到RabbitMQ，否则只写日志
func providePublisher(cfg *config.Config, log zerolog.Logger) (events.Publisher, func(), error) {
	if !cfg.MQ.Enabled {
		return events.NewLogPublisher(log), func() {}, nil
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
	if err != nil {
		return nil, nil, err
	}

	breaker := circuitbreaker.NewCircuitBreaker("event-publisher", circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
	})
	breaker.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("熔断器状态变化")
	})

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("关闭RabbitMQ连接失败")
		}
	}
	return events.NewAMQPPublisher(publisher, breaker), cleanup, nil
}
