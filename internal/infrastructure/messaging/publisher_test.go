package messaging

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xiebiao/masses/internal/domain/ledger"
	"github.com/xiebiao/masses/pkg/circuitbreaker"
	"github.com/xiebiao/masses/pkg/mq"
)

type fakeBroker struct {
	mu     sync.Mutex
	err    error
	calls  int
	events []mq.Event
	keys   []string
}

func (b *fakeBroker) Publish(ctx context.Context, routingKey string, event mq.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if b.err != nil {
		return b.err
	}
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish context has no deadline")
	}
	b.keys = append(b.keys, routingKey)
	b.events = append(b.events, event)
	return nil
}

func (b *fakeBroker) Exchange() string { return "masses.test" }

func newBreaker(name string) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.NewCircuitBreaker(name, circuitbreaker.Config{
		MaxRequests: 1,
		Timeout:     time.Minute,
		ReadyToTrip: func(c circuitbreaker.Counts) bool { return c.ConsecutiveFailures >= 2 },
	})
}

func TestEventPublisher_Publish(t *testing.T) {
	b := &fakeBroker{}
	p := NewEventPublisher(b, newBreaker("publish-ok"), zap.NewNop())

	payload := ledger.PaymentRegistered{PaymentID: 1, TransactionID: 2}
	p.Publish(context.Background(), ledger.EventPaymentRegistered, payload)

	require.Len(t, b.events, 1)
	assert.Equal(t, []string{ledger.EventPaymentRegistered}, b.keys)
	assert.Equal(t, ledger.EventPaymentRegistered, b.events[0].Type)
	assert.Equal(t, payload, b.events[0].Payload)
	assert.NotEmpty(t, b.events[0].ID)
}

func TestEventPublisher_CancelledRequestContext(t *testing.T) {
	b := &fakeBroker{}
	p := NewEventPublisher(b, newBreaker("publish-cancelled"), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.Publish(ctx, ledger.EventTransactionCancelled, nil)

	assert.Len(t, b.events, 1)
}

func TestEventPublisher_FailureIsLoggedAndBreakerOpens(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	b := &fakeBroker{err: errors.New("connection reset")}
	breaker := newBreaker("publish-fail")
	p := NewEventPublisher(b, breaker, zap.New(core))

	for i := 0; i < 4; i++ {
		p.Publish(context.Background(), ledger.EventProductionRegistered, nil)
	}

	// 2次失败后熔断,后续请求不再调用Broker
	assert.Equal(t, 2, b.calls)
	assert.Equal(t, circuitbreaker.StateOpen, breaker.State())
	assert.Equal(t, 4, logs.FilterMessage("事件发布失败").Len())
	assert.Equal(t, 1, logs.FilterMessage("熔断器状态变化").Len())
}

func TestNopPublisher(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := NewNopPublisher(zap.New(core))

	p.Publish(context.Background(), ledger.EventTransactionRegistered, nil)
	assert.Equal(t, 1, logs.Len())
}
