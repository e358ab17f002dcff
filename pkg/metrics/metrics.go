// Package metrics 基于Prometheus的指标收集
//
// 指标分四组：
//   - HTTP：请求数、耗时、处理中的请求数（由中间件记录）
//   - 社交行为：各资源的创建、更新、删除次数（由应用层记录）
//   - 基础设施：缓存命中、熔断器状态、事件发布与消费
//   - Saga：执行次数、耗时、补偿次数
//
// 使用示例：
//
//	metrics.InitMetrics()
//	router.GET("/metrics", gin.WrapH(metrics.Handler()))
//
//	metrics.RecordAction("review", metrics.ActionCreate)
//
// 命名规范：Counter以_total结尾，Histogram以单位结尾（_seconds）。
// 不要用user_id、book_id这类高基数字段作为标签。
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 社交行为动作
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// 缓存结果
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

var (
	once sync.Once

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，如/api/books/:id）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// SocialActionsTotal 社交行为总数
	// 标签：resource（review/quote/like...）、action（create/update/delete）
	SocialActionsTotal *prometheus.CounterVec

	// CacheRequestsTotal 缓存访问总数
	// 标签：cache（book）、result（hit/miss/error）
	CacheRequestsTotal *prometheus.CounterVec

	// CircuitBreakerState 熔断器状态
	// 0=CLOSED, 1=OPEN, 2=HALF_OPEN
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数
	// 标签：name、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// SagaExecutionsTotal Saga执行总数
	// 标签：saga（名称）、result（success/failure）
	SagaExecutionsTotal *prometheus.CounterVec

	// SagaExecutionDuration Saga执行耗时
	SagaExecutionDuration *prometheus.HistogramVec

	// SagaCompensationsTotal Saga补偿步骤执行总数
	SagaCompensationsTotal *prometheus.CounterVec

	// EventsPublishedTotal 领域事件发布总数
	// 标签：event（user.registered...）、result（success/failure）
	EventsPublishedTotal *prometheus.CounterVec

	// MessagesConsumedTotal 消息消费总数
	// 标签：queue、result（success/failure）
	MessagesConsumedTotal *prometheus.CounterVec

	// MessageProcessingDuration 消息处理耗时
	MessageProcessingDuration prometheus.Histogram
)

// InitMetrics 注册所有指标到默认Registry，可重复调用
func InitMetrics() {
	once.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	SocialActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookclub_social_actions_total",
			Help: "社交行为总数",
		},
		[]string{"resource", "action"},
	)

	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookclub_cache_requests_total",
			Help: "缓存访问总数",
		},
		[]string{"cache", "result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	SagaExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saga_executions_total",
			Help: "Saga执行总数",
		},
		[]string{"saga", "result"},
	)

	SagaExecutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "saga_execution_duration_seconds",
			Help:    "Saga执行耗时（秒）",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"saga"},
	)

	SagaCompensationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saga_compensations_total",
			Help: "Saga补偿执行总数",
		},
		[]string{"saga"},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookclub_events_published_total",
			Help: "领域事件发布总数",
		},
		[]string{"event", "result"},
	)

	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_consumed_total",
			Help: "消息消费总数",
		},
		[]string{"queue", "result"},
	)

	MessageProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "message_processing_duration_seconds",
			Help:    "消息处理耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
	)
}

// Handler 暴露/metrics端点
func Handler() http.Handler {
	InitMetrics()
	return promhttp.Handler()
}

// RecordAction 记录一次社交行为
func RecordAction(resource, action string) {
	InitMetrics()
	SocialActionsTotal.WithLabelValues(resource, action).Inc()
}

// RecordCache 记录一次缓存访问
func RecordCache(cache, result string) {
	InitMetrics()
	CacheRequestsTotal.WithLabelValues(cache, result).Inc()
}

// RecordEvent 记录一次事件发布
func RecordEvent(event string, err error) {
	InitMetrics()
	EventsPublishedTotal.WithLabelValues(event, result(err)).Inc()
}

// RecordSaga 记录一次Saga执行
func RecordSaga(saga string, seconds float64, err error) {
	InitMetrics()
	SagaExecutionsTotal.WithLabelValues(saga, result(err)).Inc()
	SagaExecutionDuration.WithLabelValues(saga).Observe(seconds)
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}

func result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
