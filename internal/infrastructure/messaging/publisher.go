package messaging

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/masses/internal/domain/ledger"
	"github.com/xiebiao/masses/pkg/circuitbreaker"
	"github.com/xiebiao/masses/pkg/metrics"
	"github.com/xiebiao/masses/pkg/mq"
)

// defaultPublishTimeout 单次发布的超时时间
const defaultPublishTimeout = 3 * time.Second

// broker 消息发布的最小接口(*mq.Publisher实现)
type broker interface {
	Publish(ctx context.Context, routingKey string, event mq.Event) error
	Exchange() string
}

// EventPublisher 账本事件发布者
// 设计说明：
// 1. 事件在事务提交后发布,属于"尽力而为",失败只记录日志
// 2. 熔断器保护Broker: 连续失败后快速失败,避免每个请求都等待超时
// 3. 发布使用独立的超时context,不受请求取消影响
type EventPublisher struct {
	broker  broker
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
	timeout time.Duration
}

var _ ledger.EventPublisher = (*EventPublisher)(nil)

// NewEventPublisher 创建事件发布者
func NewEventPublisher(b broker, breaker *circuitbreaker.CircuitBreaker, logger *zap.Logger) *EventPublisher {
	breaker.OnStateChange(func(name string, from, to circuitbreaker.State) {
		logger.Warn("熔断器状态变化",
			zap.String("breaker", name),
			zap.Stringer("from", from),
			zap.Stringer("to", to),
		)
	})
	return &EventPublisher{
		broker:  b,
		breaker: breaker,
		logger:  logger,
		timeout: defaultPublishTimeout,
	}
}

// Publish 发布事件(routing key即事件类型)
func (p *EventPublisher) Publish(ctx context.Context, eventType string, payload interface{}) {
	event := mq.NewEvent(eventType, payload)

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	err := p.breaker.Execute(func() error {
		return p.broker.Publish(pubCtx, eventType, event)
	})
	metrics.MessagesPublishedTotal.WithLabelValues(p.broker.Exchange(), eventType, metrics.Result(err)).Inc()

	if err != nil {
		p.logger.Warn("事件发布失败",
			zap.String("event_type", eventType),
			zap.String("event_id", event.ID),
			zap.Error(err),
		)
	}
}

// NopPublisher 未启用消息队列时使用,只记录调试日志
type NopPublisher struct {
	logger *zap.Logger
}

var _ ledger.EventPublisher = (*NopPublisher)(nil)

func NewNopPublisher(logger *zap.Logger) *NopPublisher {
	return &NopPublisher{logger: logger}
}

func (p *NopPublisher) Publish(_ context.Context, eventType string, _ interface{}) {
	p.logger.Debug("消息队列未启用,忽略事件", zap.String("event_type", eventType))
}
