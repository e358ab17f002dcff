// notifier 消费领域事件，生成站内通知（当前只写日志）
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/xiebiao/bookclub/internal/infrastructure/config"
	"github.com/xiebiao/bookclub/pkg/logger"
	"github.com/xiebiao/bookclub/pkg/metrics"
	"github.com/xiebiao/bookclub/pkg/mq"
)

// 订阅的事件，user.registered由欢迎邮件之类的服务处理，这里不关心
var routingKeys = []string{"message.*", "follow.*", "like.*", "repostsave.*", "review.*", "quote.*"}

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
	metrics.InitMetrics()

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, cfg.MQ.Queue, routingKeys, log)
	if err != nil {
		log.Fatal().Err(err).Msg("创建消费者失败")
	}
	defer func() { _ = consumer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Consume(ctx, Notify); err != nil {
		log.Error().Err(err).Msg("消费中断")
	}
}

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
