// Package metrics 基于Prometheus的指标定义
//
// 指标在包初始化时通过promauto注册到默认Registry,
// 任何组件直接引用即可,不需要额外的初始化步骤;/metrics端点由HTTP层暴露。
//
// 命名规范:
//  1. Counter以_total结尾
//  2. Histogram以单位结尾(_seconds)
//  3. 标签只用有限取值的维度(kind、operation、result),不用商品ID这类高基数字段
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "masses"

// 结果标签取值
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数,标签: method、path(路由模板)、status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP请求耗时（秒）",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_progress",
			Help:      "正在处理的HTTP请求数",
		},
	)

	// 账本业务指标

	// TransactionsRegisteredTotal 登记的交易数,标签: kind(P/V)
	TransactionsRegisteredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_registered_total",
			Help:      "登记的交易总数",
		},
		[]string{"kind"},
	)

	// PaymentsRegisteredTotal 登记的付款数
	PaymentsRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_registered_total",
			Help:      "登记的付款总数",
		},
	)

	// ProductionsRegisteredTotal 登记的生产记录数
	ProductionsRegisteredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "productions_registered_total",
			Help:      "登记的生产记录总数",
		},
	)

	// StockUnitsSoldTotal 销售扣减的库存件数
	StockUnitsSoldTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_units_sold_total",
			Help:      "销售扣减的库存件数",
		},
	)

	// LedgerOperationDuration 账本操作耗时,标签: operation、result
	LedgerOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ledger_operation_duration_seconds",
			Help:      "账本操作耗时（秒）",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"operation", "result"},
	)

	// TxRetriesTotal 因并发冲突而重试的事务次数
	TxRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tx_retries_total",
			Help:      "并发冲突导致的事务重试次数",
		},
	)

	// 缓存指标

	// CacheRequestsTotal 缓存读取次数,标签: cache、result(hit/miss/error)
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "缓存读取次数",
		},
		[]string{"cache", "result"},
	)

	// 熔断器指标

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	// CircuitBreakerRequests 熔断器请求数,标签: name、result(success/failure/rejected)
	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_requests_total",
			Help:      "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	// 消息队列指标

	// MessagesPublishedTotal 事件发布次数,标签: exchange、routing_key、result
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_published_total",
			Help:      "事件发布总数",
		},
		[]string{"exchange", "routing_key", "result"},
	)
)

// Result 把error转换为结果标签
func Result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}

// ObserveOperation 记录一次账本操作的耗时与结果
//
//	start := time.Now()
//	defer func() { metrics.ObserveOperation("register_payment", start, err) }()
func ObserveOperation(operation string, start time.Time, err error) {
	LedgerOperationDuration.WithLabelValues(operation, Result(err)).Observe(time.Since(start).Seconds())
}
