package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/xiebiao/bookclub/docs"
	"github.com/xiebiao/bookclub/internal/infrastructure/config"
	"github.com/xiebiao/bookclub/pkg/logger"
	"github.com/xiebiao/bookclub/pkg/metrics"
	"github.com/xiebiao/bookclub/pkg/tracing"
)

// @title           Bookclub API
// @version         1.0
// @description     读书社交：图书、阅读记录、书评、书摘、消息、关注、点赞、转发收藏
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	log, closeLog, err := logger.New(logger.Config{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = closeLog() }()

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("服务异常退出")
	}
}

// loadConfig CONFIG_PATH指定配置文件，否则按默认路径查找
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func run(cfg *config.Config, log zerolog.Logger) error {
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Error().Err(err).Msg("关闭Tracer失败")
			}
		}()
		log.Info().Str("endpoint", cfg.Tracing.Endpoint).Msg("链路追踪已开启")
	}
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}

	engine, cleanup, err := InitializeApp(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("mode", cfg.Server.Mode).
			Str("db", cfg.Database.Driver).
			Bool("mq", cfg.MQ.Enabled).
			Bool("require_auth", cfg.Security.RequireAuth).
			Msg("服务启动")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("正在优雅关闭服务")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("服务器强制关闭: %w", err)
	}
	log.Info().Msg("服务已关闭")
	return nil
}
