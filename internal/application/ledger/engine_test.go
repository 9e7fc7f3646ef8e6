package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/masses/internal/domain/client"
	"github.com/xiebiao/masses/internal/domain/ledger"
	"github.com/xiebiao/masses/internal/domain/product"
	"github.com/xiebiao/masses/internal/domain/validation"
	"github.com/xiebiao/masses/internal/infrastructure/config"
	"github.com/xiebiao/masses/internal/infrastructure/persistence/store"
	apperrors "github.com/xiebiao/masses/pkg/errors"
)

type publishedEvent struct {
	Type    string
	Payload interface{}
}

// recordingPublisher 记录发布过的事件
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Payload: payload})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

// deleteRecorder 只记录删除的商品缓存
type deleteRecorder struct {
	mu      sync.Mutex
	deleted []uint
}

func (c *deleteRecorder) Get(context.Context, uint) (*product.Product, error) { return nil, nil }
func (c *deleteRecorder) Set(context.Context, *product.Product) error         { return nil }
func (c *deleteRecorder) Delete(_ context.Context, ids ...uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, ids...)
	return nil
}

type fixture struct {
	engine       *Engine
	products     product.Repository
	clients      client.Repository
	transactions ledger.TransactionRepository
	payments     ledger.PaymentRepository
	events       *recordingPublisher
	cache        *deleteRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := store.Open(config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		SQLitePath:  ":memory:",
		AutoMigrate: true,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	txManager := store.NewTxManager(db, config.LedgerConfig{
		MaxRetries:           3,
		RetryInitialInterval: time.Millisecond,
		RetryMaxInterval:     5 * time.Millisecond,
	}, zap.NewNop())

	f := &fixture{
		products:     store.NewProductRepository(db),
		clients:      store.NewClientRepository(db),
		transactions: store.NewTransactionRepository(db),
		payments:     store.NewPaymentRepository(db),
		events:       &recordingPublisher{},
		cache:        &deleteRecorder{},
	}
	f.engine = NewEngine(
		f.transactions,
		f.payments,
		store.NewProductionRepository(db),
		f.products,
		f.clients,
		txManager,
		f.cache,
		f.events,
		zap.NewNop(),
	)
	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (f *fixture) seedProduct(t *testing.T, name string, stock int) *product.Product {
	t.Helper()
	p := product.NewProduct(name, "bolo", dec("4.5"), dec("10"), 2, stock)
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func (f *fixture) stockOf(t *testing.T, id uint) int {
	t.Helper()
	p, err := f.products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.CurrentStock
}

func sale(items ...ItemInput) RegisterTransactionCommand {
	return RegisterTransactionCommand{Kind: ledger.KindSale, Items: items}
}

func TestRegisterTransaction_TotalsAndOpenValue(t *testing.T) {
	f := newFixture(t)
	a := f.seedProduct(t, "Bolo de milho", 10)
	b := f.seedProduct(t, "Pudim", 10)

	cmd := sale(
		ItemInput{ProductID: a.ID, Quantity: 3, UnitValue: dec("2.5")},
		ItemInput{ProductID: b.ID, Quantity: 2, UnitValue: dec("4")},
	)
	cmd.InitialPayment = dec("5")

	txn, err := f.engine.RegisterTransaction(context.Background(), cmd)
	require.NoError(t, err)

	assert.True(t, txn.TotalValue.Equal(dec("15.5")))
	assert.True(t, txn.OpenValue.Equal(dec("10.5")))
	assert.Equal(t, ledger.StatusOpen, txn.Status)

	stored, err := f.engine.GetTransaction(context.Background(), txn.ID)
	require.NoError(t, err)
	assert.True(t, stored.TotalValue.Equal(dec("15.5")))
	assert.True(t, stored.OpenValue.Equal(dec("10.5")))
	require.Len(t, stored.Items, 2)
	require.Len(t, stored.Payments, 1)
	assert.True(t, stored.Payments[0].Value.Equal(dec("5")))
	assert.True(t, stored.Payments[0].Date.Equal(stored.Date))
}

func TestRegisterTransaction_SaleDecrementsStock(t *testing.T) {
	tests := []struct {
		name           string
		initialPayment string
		wantStatus     ledger.Status
	}{
		{"未付款", "0", ledger.StatusOpen},
		{"部分付款", "5.99", ledger.StatusOpen},
		{"全额付款", "6", ledger.StatusClosed},
		{"超额付款", "10", ledger.StatusClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			a := f.seedProduct(t, "Bolo de milho", 10)

			cmd := sale(ItemInput{ProductID: a.ID, Quantity: 3, UnitValue: dec("2.0")})
			cmd.InitialPayment = dec(tt.initialPayment)
			txn, err := f.engine.RegisterTransaction(context.Background(), cmd)
			require.NoError(t, err)

			assert.Equal(t, 7, f.stockOf(t, a.ID))
			assert.Equal(t, tt.wantStatus, txn.Status)
			assert.Contains(t, f.cache.deleted, a.ID)
		})
	}
}

func TestRegisterTransaction_StockMayGoNegative(t *testing.T) {
	f := newFixture(t)
	a := f.seedProduct(t, "Bolo de milho", 1)

	_, err := f.engine.RegisterTransaction(context.Background(),
		sale(ItemInput{ProductID: a.ID, Quantity: 3, UnitValue: dec("1")}))
	require.NoError(t, err)
	assert.Equal(t, -2, f.stockOf(t, a.ID))
}

func TestRegisterTransaction_SameProductTwice(t *testing.T) {
	f := newFixture(t)
	a := f.seedProduct(t, "Bolo de milho", 10)

	txn, err := f.engine.RegisterTransaction(context.Background(), sale(
		ItemInput{ProductID: a.ID, Quantity: 2, UnitValue: dec("1")},
		ItemInput{ProductID: a.ID, Quantity: 3, UnitValue: dec("1.5")},
	))
	require.NoError(t, err)
	assert.Len(t, txn.Items, 2)
	assert.Equal(t, 5, f.stockOf(t, a.ID))
}

func TestRegisterTransaction_OrderLeavesStock(t *testing.T) {
	f := newFixture(t)
	a := f.seedProduct(t, "Bolo de milho", 10)

	cmd := RegisterTransactionCommand{
		Kind:           ledger.KindOrder,
		Items:          []ItemInput{{ProductID: a.ID, Quantity: 8, UnitValue: dec("3")}},
		InitialPayment: dec("4"),
	}
	txn, err := f.engine.RegisterTransaction(context.Background(), cmd)
	require.NoError(t, err)

	assert.Equal(t, 10, f.stockOf(t, a.ID))
	assert.True(t, txn.OpenValue.Equal(dec("20")))
	assert.Empty(t, f.cache.deleted)

	// 订单的首付只影响未结金额,不生成付款记录
	payments, err := f.engine.ListPayments(context.Background(), txn.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)

	stored, err := f.engine.GetTransaction(context.Background(), txn.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Payments)
	assert.True(t, stored.SettledValue().Equal(dec("4")), "首付计入已结算金额")
}

func TestRegisterTransaction_DefaultDateIsToday(t *testing.T) {
	f := newFixture(t)
	a := f.seedProduct(t, "Bolo de milho", 10)

	txn, err := f.engine.RegisterTransaction(context.Background(),
		sale(ItemInput{ProductID: a.ID, Quantity: 1, UnitValue: dec("1")}))
	require.NoError(t, err)
	assert.True(t, txn.Date.Equal(ledger.DateOf(time.Now())))

	date := time.Date(2024, 3, 15, 17, 30, 0, 0, time.UTC)
	cmd := sale(ItemInput{ProductID: a.ID, Quantity: 1, UnitValue: dec("1")})
	cmd.Date = &date
	txn, err = f.engine.RegisterTransaction(context.Background(), cmd)
	require.NoError(t, err)
	assert.Equal(t, 15, txn.Date.Day())
	assert.Zero(t, txn.Date.Hour())
}

func TestRegisterTransaction_Validation(t *testing.T) {
	f := newFixture(t)
	a := f.seedProduct(t, "Bolo de milho", 10)

	tests := []struct {
		name  string
		cmd   RegisterTransactionCommand
		field string
	}{
		{"空明细", RegisterTransactionCommand{Kind: ledger.KindSale}, "items"},
		{"非法类型", RegisterTransactionCommand{
			Kind:  "X",
			Items: []ItemInput{{ProductID: a.ID, Quantity: 1, UnitValue: dec("1")}},
		}, "kind"},
		{"数量为0", sale(ItemInput{ProductID: a.ID, Quantity: 0, UnitValue: dec("1")}), "items[0].quantity"},
		{"单价为负", sale(ItemInput{ProductID: a.ID, Quantity: 1, UnitValue: dec("-1")}), "items[0].unit_value"},
		{"单价超过两位小数", sale(ItemInput{ProductID: a.ID, Quantity: 3, UnitValue: dec("0.333")}), "items[0].unit_value"},
		{"首付为负", RegisterTransactionCommand{
			Kind:           ledger.KindSale,
			Items:          []ItemInput{{ProductID: a.ID, Quantity: 1, UnitValue: dec("1")}},
			InitialPayment: dec("-1"),
		}, "initial_payment"},
		{"首付超过两位小数", RegisterTransactionCommand{
			Kind:           ledger.KindSale,
			Items:          []ItemInput{{ProductID: a.ID, Quantity: 1, UnitValue: dec("1")}},
			InitialPayment: dec("0.005"),
		}, "initial_payment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.engine.RegisterTransaction(context.Background(), tt.cmd)
			vErr, ok := apperrors.AsValidation(err)
			require.True(t, ok, "期望字段错误,实际: %v", err)
			assert.NotEmpty(t, vErr.Fields[tt.field])
		})
	}

	assert.Equal(t, 10, f.stockOf(t, a.ID))
}

func TestRegisterTransaction_UnknownProductRollsBack(t *testing.T) {
	f := newFixture(t)
	a := f.seedProduct(t, "Bolo de milho", 10)

	_, err := f.engine.RegisterTransaction(context.Background(), sale(
		ItemInput{ProductID: a.ID, Quantity: 2, UnitValue: dec("1")},
		ItemInput{ProductID: 999, Quantity: 1, UnitValue: dec("1")},
	))
	assert.ErrorIs(t, err, product.ErrProductNotFound)

	assert.Equal(t, 10, f.stockOf(t, a.ID))
	all, err := f.engine.ListTransactions(context.Background(), ledger.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, f.events.types())
}

func TestRegisterTransaction_UnknownClient(t *testing.T) {
	f := newFixture(t)
	a := f.seedProduct(t, "Bolo de milho", 10)

	clientID := uint(42)
	cmd := sale(ItemInput{ProductID: a.ID, Quantity: 1, UnitValue: dec("1")})
	cmd.ClientID = &clientID

	_, err := f.engine.RegisterTransaction(context.Background(), cmd)
	assert.ErrorIs(t, err, client.ErrClientNotFound)
	assert.Equal(t, 10, f.stockOf(t, a.ID))
}

func TestRegisterTransaction_ConcurrentSalesLoseNoUpdate(t *testing.T) {
	f := newFixture(t)
	a := f.seedProduct(t, "Bolo de milho", 20)
	b := f.seedProduct(t, "Pudim", 20)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// 一半的事务先写b再写a,引擎内部按ID排序
			items := []ItemInput{
				{ProductID: a.ID, Quantity: 2, UnitValue: dec("1")},
				{ProductID: b.ID, Quantity: 1, UnitValue: dec("1")},
			}
			if i%2 == 1 {
				items[0], items[1] = items[1], items[0]
			}
			_, err := f.engine.RegisterTransaction(context.Background(), sale(items...))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 20-2*workers, f.stockOf(t, a.ID))
	assert.Equal(t, 20-workers, f.stockOf(t, b.ID))
}

func TestRegisterTransaction_PriceSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.seedProduct(t, "Bolo de milho", 10)

	txn, err := f.engine.RegisterTransaction(ctx, sale(ItemInput{ProductID: a.ID, Quantity: 1, UnitValue: a.SalePrice}))
	require.NoError(t, err)

	newPrice := dec("99.99")
	require.NoError(t, f.products.Update(ctx, a.ID, product.Patch{SalePrice: &newPrice}))

	item, err := f.engine.GetItem(ctx, txn.Items[0].ID)
	require.NoError(t, err)
	assert.True(t, item.UnitValue.Equal(dec("10")))

	stored, err := f.engine.GetTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.True(t, stored.TotalValue.Equal(dec("10")))
}

func TestRegisterPayment_100_40_60(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.seedProduct(t, "Bolo de milho", 10)

	txn, err := f.engine.RegisterTransaction(ctx, sale(ItemInput{ProductID: a.ID, Quantity: 10, UnitValue: dec("10")}))
	require.NoError(t, err)
	require.True(t, txn.OpenValue.Equal(dec("100")))

	_, err = f.engine.RegisterPayment(ctx, txn.ID, dec("40"), nil)
	require.NoError(t, err)
	stored, err := f.engine.GetTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.True(t, stored.OpenValue.Equal(dec("60")))
	assert.Equal(t, ledger.StatusOpen, stored.Status)

	_, err = f.engine.RegisterPayment(ctx, txn.ID, dec("60"), nil)
	require.NoError(t, err)
	stored, err = f.engine.GetTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.True(t, stored.OpenValue.IsZero())
	assert.Equal(t, ledger.StatusClosed, stored.Status)
	assert.Len(t, stored.Payments, 2)
	assert.True(t, stored.SettledValue().Equal(dec("100")))
}

func TestRegisterPayment_Overpayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.seedProduct(t, "Bolo de milho", 10)
	txn, err := f.engine.RegisterTransaction(ctx, sale(ItemInput{ProductID: a.ID, Quantity: 1, UnitValue: dec("10")}))
	require.NoError(t, err)

	_, err = f.engine.RegisterPayment(ctx, txn.ID, dec("14.5"), nil)
	require.NoError(t, err)

	stored, err := f.engine.GetTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.True(t, stored.OpenValue.Equal(dec("-4.5")))
	assert.Equal(t, ledger.StatusClosed, stored.Status)
}

func TestRegisterPayment_FractionalCents(t *testing.T) {
	tests := []struct {
		name       string
		unitValue  string
		payments   []string
		wantOpen   string
		wantStatus ledger.Status
	}{
		{"1.10分两次付清", "1.10", []string{"1.00", "0.10"}, "0", ledger.StatusClosed},
		{"0.30分两次付清", "0.30", []string{"0.10", "0.20"}, "0", ledger.StatusClosed},
		{"十次0.10付清1.00", "1.00", []string{"0.10", "0.10", "0.10", "0.10", "0.10", "0.10", "0.10", "0.10", "0.10", "0.10"}, "0", ledger.StatusClosed},
		{"差一分仍未结清", "0.30", []string{"0.10", "0.19"}, "0.01", ledger.StatusOpen},
		{"超付一分", "0.30", []string{"0.10", "0.21"}, "-0.01", ledger.StatusClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			a := f.seedProduct(t, "Bolo de milho", 10)
			txn, err := f.engine.RegisterTransaction(ctx, sale(ItemInput{ProductID: a.ID, Quantity: 1, UnitValue: dec(tt.unitValue)}))
			require.NoError(t, err)

			for _, v := range tt.payments {
				_, err := f.engine.RegisterPayment(ctx, txn.ID, dec(v), nil)
				require.NoError(t, err)
			}

			stored, err := f.engine.GetTransaction(ctx, txn.ID)
			require.NoError(t, err)
			assert.True(t, stored.OpenValue.Equal(dec(tt.wantOpen)), "open=%s", stored.OpenValue)
			assert.Equal(t, tt.wantStatus, stored.Status)
			assert.Len(t, stored.Payments, len(tt.payments))
		})
	}
}

func TestRegisterPayment_ConcurrentPaymentsSerialize(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.seedProduct(t, "Bolo de milho", 10)
	txn, err := f.engine.RegisterTransaction(ctx, sale(ItemInput{ProductID: a.ID, Quantity: 10, UnitValue: dec("10")}))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.engine.RegisterPayment(ctx, txn.ID, dec("10"), nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := f.engine.GetTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.True(t, stored.OpenValue.IsZero())
	assert.Equal(t, ledger.StatusClosed, stored.Status)
	assert.Len(t, stored.Payments, 10)
}

func TestRegisterPayment_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.seedProduct(t, "Bolo de milho", 10)
	txn, err := f.engine.RegisterTransaction(ctx, sale(ItemInput{ProductID: a.ID, Quantity: 1, UnitValue: dec("10")}))
	require.NoError(t, err)

	_, err = f.engine.RegisterPayment(ctx, 999, dec("1"), nil)
	assert.ErrorIs(t, err, ledger.ErrTransactionNotFound)

	_, err = f.engine.RegisterPayment(ctx, txn.ID, dec("-1"), nil)
	vErr, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.NotEmpty(t, vErr.Fields[ledger.FieldValue])

	_, err = f.engine.RegisterPayment(ctx, txn.ID, dec("0.001"), nil)
	vErr, ok = apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, validation.MsgMoneyScale, vErr.Fields[ledger.FieldValue])

	_, err = f.engine.CancelTransaction(ctx, txn.ID)
	require.NoError(t, err)
	_, err = f.engine.RegisterPayment(ctx, txn.ID, dec("1"), nil)
	assert.ErrorIs(t, err, ledger.ErrTransactionCancelled)

	payments, err := f.engine.ListPayments(ctx, txn.ID)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestCancelTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.seedProduct(t, "Bolo de milho", 10)

	cmd := sale(ItemInput{ProductID: a.ID, Quantity: 4, UnitValue: dec("10")})
	cmd.InitialPayment = dec("15")
	txn, err := f.engine.RegisterTransaction(ctx, cmd)
	require.NoError(t, err)

	cancelled, err := f.engine.CancelTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusCancelled, cancelled.Status)

	// 不回滚库存与付款
	assert.Equal(t, 6, f.stockOf(t, a.ID))
	stored, err := f.engine.GetTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusCancelled, stored.Status)
	assert.Len(t, stored.Payments, 1)

	_, err = f.engine.CancelTransaction(ctx, txn.ID)
	assert.ErrorIs(t, err, ledger.ErrTransactionCancelled)

	_, err = f.engine.CancelTransaction(ctx, 999)
	assert.ErrorIs(t, err, ledger.ErrTransactionNotFound)

	assert.Equal(t, []string{ledger.EventTransactionRegistered, ledger.EventTransactionCancelled}, f.events.types())
}

func TestUpdateTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.seedProduct(t, "Bolo de milho", 10)
	c := client.NewClient("Maria", "")
	require.NoError(t, f.clients.Create(ctx, c))

	txn, err := f.engine.RegisterTransaction(ctx, sale(ItemInput{ProductID: a.ID, Quantity: 1, UnitValue: dec("10")}))
	require.NoError(t, err)

	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	updated, err := f.engine.UpdateTransaction(ctx, txn.ID, ledger.TransactionPatch{ClientID: &c.ID, Date: &date})
	require.NoError(t, err)
	require.NotNil(t, updated.ClientID)
	assert.Equal(t, c.ID, *updated.ClientID)
	assert.Equal(t, 1, updated.Date.Day())
	assert.True(t, updated.TotalValue.Equal(dec("10")))

	list, err := f.engine.ListTransactions(ctx, ledger.ListFilter{ClientID: &c.ID})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.engine.UpdateTransaction(ctx, txn.ID, ledger.TransactionPatch{})
	assert.ErrorIs(t, err, ledger.ErrEmptyPatch)

	missing := uint(77)
	_, err = f.engine.UpdateTransaction(ctx, txn.ID, ledger.TransactionPatch{ClientID: &missing})
	assert.ErrorIs(t, err, client.ErrClientNotFound)

	_, err = f.engine.UpdateTransaction(ctx, 999, ledger.TransactionPatch{Date: &date})
	assert.ErrorIs(t, err, ledger.ErrTransactionNotFound)
}

func TestRegisterProduction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.seedProduct(t, "Bolo de milho", 10)
	b := f.seedProduct(t, "Pudim", 0)

	p1, err := f.engine.RegisterProduction(ctx, a.ID, 12, nil)
	require.NoError(t, err)
	_, err = f.engine.RegisterProduction(ctx, b.ID, 3, nil)
	require.NoError(t, err)

	// 生产记录不改变库存
	assert.Equal(t, 10, f.stockOf(t, a.ID))

	got, err := f.engine.GetProduction(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Quantity)

	forA, err := f.engine.ListProductions(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, forA, 1)
	all, err := f.engine.ListProductions(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.engine.RegisterProduction(ctx, 999, 1, nil)
	assert.ErrorIs(t, err, product.ErrProductNotFound)
	_, err = f.engine.RegisterProduction(ctx, a.ID, 0, nil)
	_, ok := apperrors.AsValidation(err)
	assert.True(t, ok)
	_, err = f.engine.ListProductions(ctx, 999)
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.GetTransaction(ctx, 1)
	assert.ErrorIs(t, err, ledger.ErrTransactionNotFound)
	_, err = f.engine.GetItem(ctx, 1)
	assert.ErrorIs(t, err, ledger.ErrItemNotFound)
	_, err = f.engine.GetPayment(ctx, 1)
	assert.ErrorIs(t, err, ledger.ErrPaymentNotFound)
	_, err = f.engine.GetProduction(ctx, 1)
	assert.ErrorIs(t, err, ledger.ErrProductionNotFound)
	_, err = f.engine.ListPayments(ctx, 1)
	assert.ErrorIs(t, err, ledger.ErrTransactionNotFound)
}

func TestEventsPublishedAfterCommit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.seedProduct(t, "Bolo de milho", 10)

	txn, err := f.engine.RegisterTransaction(ctx, sale(ItemInput{ProductID: a.ID, Quantity: 1, UnitValue: dec("10")}))
	require.NoError(t, err)
	payment, err := f.engine.RegisterPayment(ctx, txn.ID, dec("4"), nil)
	require.NoError(t, err)
	_, err = f.engine.RegisterProduction(ctx, a.ID, 5, nil)
	require.NoError(t, err)

	require.Equal(t, []string{
		ledger.EventTransactionRegistered,
		ledger.EventPaymentRegistered,
		ledger.EventProductionRegistered,
	}, f.events.types())

	registered, ok := f.events.events[0].Payload.(ledger.TransactionRegistered)
	require.True(t, ok)
	assert.Equal(t, txn.ID, registered.TransactionID)
	require.Len(t, registered.Items, 1)
	assert.Equal(t, a.ID, registered.Items[0].ProductID)

	paid, ok := f.events.events[1].Payload.(ledger.PaymentRegistered)
	require.True(t, ok)
	assert.Equal(t, payment.ID, paid.PaymentID)
	assert.True(t, paid.OpenValue.Equal(dec("6")))
	assert.Equal(t, ledger.StatusOpen, paid.Status)
}
