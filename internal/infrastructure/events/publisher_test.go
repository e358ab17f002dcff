package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookclub/pkg/circuitbreaker"
	"github.com/xiebiao/bookclub/pkg/mq"
)

type fakeSender struct {
	err   error
	calls int
	keys  []string
	ids   []string
}

func (f *fakeSender) Publish(_ context.Context, routingKey, messageID string, _ interface{}) error {
	f.calls++
	f.keys = append(f.keys, routingKey)
	f.ids = append(f.ids, messageID)
	return f.err
}

func TestNew(t *testing.T) {
	e := New(LikeCreated, map[string]uint{"like_id": 1})
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, LikeCreated, e.Type)
	assert.WithinDuration(t, time.Now(), e.OccurredAt, time.Second)

	// 与mq.NewPublishing的编码一致
	p, err := mq.NewPublishing(e.ID, e)
	require.NoError(t, err)
	var decoded Event
	require.NoError(t, json.Unmarshal(p.Body, &decoded))
	assert.Equal(t, e.ID, decoded.ID)
	assert.Equal(t, e.ID, p.MessageId)
}

func TestAMQPPublisher_RoutesByType(t *testing.T) {
	s := &fakeSender{}
	p := NewAMQPPublisher(s, circuitbreaker.NewCircuitBreaker("events-test-route", circuitbreaker.Config{}))

	e := New(UserRegistered, nil)
	require.NoError(t, p.Publish(context.Background(), e))
	assert.Equal(t, []string{UserRegistered}, s.keys)
	assert.Equal(t, []string{e.ID}, s.ids)
}

func TestAMQPPublisher_BreakerOpens(t *testing.T) {
	s := &fakeSender{err: errors.New("connection refused")}
	cb := circuitbreaker.NewCircuitBreaker("events-test-open", circuitbreaker.Config{
		ReadyToTrip: func(c circuitbreaker.Counts) bool { return c.ConsecutiveFailures >= 2 },
		Timeout:     time.Minute,
	})
	p := NewAMQPPublisher(s, cb)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		assert.Error(t, p.Publish(ctx, New(FollowCreated, nil)))
	}
	assert.Equal(t, circuitbreaker.StateOpen, cb.State())

	err := p.Publish(ctx, New(FollowCreated, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, circuitbreaker.ErrOpenState)
	assert.Equal(t, 2, s.calls, "熔断后不应再调用Broker")
}

func TestLogPublisherAndBestEffort(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	require.NoError(t, NewLogPublisher(log).Publish(context.Background(), New(MessageSent, map[string]uint{"message_id": 3})))
	assert.Contains(t, buf.String(), `"event_type":"message.sent"`)

	buf.Reset()
	ctx := log.WithContext(context.Background())
	failing := NewAMQPPublisher(&fakeSender{err: errors.New("down")},
		circuitbreaker.NewCircuitBreaker("events-test-best-effort", circuitbreaker.Config{}))
	BestEffort(ctx, failing, New(QuoteCreated, nil))
	assert.Contains(t, buf.String(), "事件发布失败")
}
