// Package mq RabbitMQ发布者与消费者
//
// 领域事件以JSON发布到topic类型的Exchange，Routing Key即事件类型（如user.registered、review.created）。
// 消费者按Routing Key模式（如review.*、#）绑定队列，手动确认：
//   - 处理成功：Ack
//   - 首次处理失败：Nack并重新入队
//   - 重投后仍失败：Nack不再入队，避免毒消息无限循环
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/xiebiao/bookclub/pkg/metrics"
)

// Publisher 消息发布者
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewPublisher 连接RabbitMQ并声明持久化Exchange
func NewPublisher(url, exchange, exchangeType string) (*Publisher, error) {
	conn, channel, err := dial(url, exchange, exchangeType)
	if err != nil {
		return nil, err
	}
	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

// Publish 发布JSON消息
func (p *Publisher) Publish(ctx context.Context, routingKey, messageID string, message interface{}) error {
	publishing, err := NewPublishing(messageID, message)
	if err != nil {
		return err
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		routingKey,
		false, // Mandatory
		false, // Immediate
		publishing,
	)
	if err != nil {
		return fmt.Errorf("发布消息失败: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("exchange", p.exchange).
		Str("routing_key", routingKey).
		Str("message_id", messageID).
		Msg("消息已发布")
	return nil
}

// NewPublishing 构造持久化的JSON消息
func NewPublishing(messageID string, message interface{}) (amqp.Publishing, error) {
	body, err := json.Marshal(message)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("消息序列化失败: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    messageID,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	}, nil
}

// Close 关闭Channel和连接
func (p *Publisher) Close() error {
	return closeAll(p.channel, p.conn)
}

// Handler 消息处理函数
type Handler func(ctx context.Context, routingKey string, body []byte) error

// Consumer 消息消费者
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	log     zerolog.Logger
}

// NewConsumer 声明Exchange、持久化队列，并按routingKeys绑定
func NewConsumer(url, exchange, exchangeType, queue string, routingKeys []string, log zerolog.Logger) (*Consumer, error) {
	conn, channel, err := dial(url, exchange, exchangeType)
	if err != nil {
		return nil, err
	}

	q, err := channel.QueueDeclare(
		queue,
		true,  // Durable
		false, // AutoDelete
		false, // Exclusive
		false, // NoWait
		nil,
	)
	if err != nil {
		_ = closeAll(channel, conn)
		return nil, fmt.Errorf("声明Queue失败: %w", err)
	}

	for _, routingKey := range routingKeys {
		if err := channel.QueueBind(q.Name, routingKey, exchange, false, nil); err != nil {
			_ = closeAll(channel, conn)
			return nil, fmt.Errorf("绑定Queue失败: %w", err)
		}
	}

	log.Info().Str("queue", q.Name).Strs("routing_keys", routingKeys).Msg("消息消费者已创建")

	return &Consumer{
		conn:    conn,
		channel: channel,
		queue:   q.Name,
		log:     log,
	}, nil
}

// Consume 阻塞消费，ctx取消时返回nil
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	// 每次只取一条，处理完再取
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("设置Qos失败: %w", err)
	}

	msgs, err := c.channel.Consume(
		c.queue,
		"",    // Consumer标签（自动生成）
		false, // AutoAck
		false, // Exclusive
		false, // NoLocal
		false, // NoWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("开始消费失败: %w", err)
	}

	c.log.Info().Str("queue", c.queue).Msg("开始消费消息")

	for {
		select {
		case <-ctx.Done():
			c.log.Info().Str("queue", c.queue).Msg("消费者退出")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("消息Channel已关闭")
			}
			HandleDelivery(ctx, c.queue, msg, handler, c.log)
		}
	}
}

// HandleDelivery 处理单条消息并确认
func HandleDelivery(ctx context.Context, queue string, msg amqp.Delivery, handler Handler, log zerolog.Logger) {
	metrics.InitMetrics()
	start := time.Now()

	entry := log.With().
		Str("queue", queue).
		Str("routing_key", msg.RoutingKey).
		Str("message_id", msg.MessageId).
		Logger()

	err := handler(entry.WithContext(ctx), msg.RoutingKey, msg.Body)
	metrics.MessageProcessingDuration.Observe(time.Since(start).Seconds())

	if err == nil {
		metrics.MessagesConsumedTotal.WithLabelValues(queue, "success").Inc()
		if ackErr := msg.Ack(false); ackErr != nil {
			entry.Error().Err(ackErr).Msg("确认消息失败")
		}
		return
	}

	metrics.MessagesConsumedTotal.WithLabelValues(queue, "failure").Inc()
	requeue := !msg.Redelivered
	entry.Warn().Err(err).Bool("requeue", requeue).Msg("消息处理失败")
	if nackErr := msg.Nack(false, requeue); nackErr != nil {
		entry.Error().Err(nackErr).Msg("拒绝消息失败")
	}
}

// Close 关闭Channel和连接
func (c *Consumer) Close() error {
	return closeAll(c.channel, c.conn)
}

func dial(url, exchange, exchangeType string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("创建Channel失败: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		exchangeType,
		true,  // Durable
		false, // AutoDelete
		false, // Internal
		false, // NoWait
		nil,
	)
	if err != nil {
		_ = closeAll(channel, conn)
		return nil, nil, fmt.Errorf("声明Exchange失败: %w", err)
	}
	return conn, channel, nil
}

func closeAll(channel *amqp.Channel, conn *amqp.Connection) error {
	if channel != nil {
		_ = channel.Close()
	}
	if conn != nil {
		return conn.Close()
	}
	return nil
}
