package events

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/bookclub/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
	"github.com/xiebiao/bookclub/pkg/metrics"
	"github.com/xiebiao/bookclub/pkg/tracing"
)

const tracerName = "bookclub/events"

// sender 消息发送方，由*mq.Publisher实现
type sender interface {
	Publish(ctx context.Context, routingKey, messageID string, message interface{}) error
}

// AMQPPublisher 通过RabbitMQ发布事件
// Broker不可用时由熔断器快速失败，避免每个请求都等待连接超时
type AMQPPublisher struct {
	sender  sender
	breaker *circuitbreaker.CircuitBreaker
}

// NewAMQPPublisher 创建RabbitMQ事件发布器
func NewAMQPPublisher(s sender, breaker *circuitbreaker.CircuitBreaker) *AMQPPublisher {
	return &AMQPPublisher{sender: s, breaker: breaker}
}

func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	ctx, span := tracing.StartSpan(ctx, tracerName, "events.Publish")
	defer span.End()
	span.SetAttributes(
		attribute.String("event.type", event.Type),
		attribute.String("event.id", event.ID),
	)

	err := p.breaker.Execute(func() error {
		return p.sender.Publish(ctx, event.Type, event.ID, event)
	})
	metrics.RecordEvent(event.Type, err)
	if err != nil {
		tracing.RecordError(span, err)
		if errors.Is(err, circuitbreaker.ErrOpenState) {
			return apperrors.Wrap(err, "事件服务暂不可用")
		}
		return apperrors.Wrap(err, "发布事件失败")
	}
	return nil
}

// LogPublisher 只写日志的发布器（mq.enabled=false时使用）
type LogPublisher struct {
	log zerolog.Logger
}

// NewLogPublisher 创建日志发布器
func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	p.log.Info().
		Str("event_id", event.ID).
		Str("event_type", event.Type).
		Interface("payload", event.Payload).
		Msg("领域事件")
	metrics.RecordEvent(event.Type, nil)
	return nil
}

// BestEffort 发布事件，失败只记录日志
// 除注册外的事件都是通知性质，不应让已提交的写操作返回错误
func BestEffort(ctx context.Context, p Publisher, event Event) {
	if err := p.Publish(ctx, event); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("event_type", event.Type).
			Str("event_id", event.ID).
			Msg("事件发布失败")
	}
}
