package usecase_test

import (
	"context"

	"agrimarket/internal/domain/model"
	"agrimarket/internal/notify"
	repo "agrimarket/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	markets    repo.MarketRepository
	products   repo.ProductRepository
	prices     repo.PriceRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *TxReposMock) Markets() repo.MarketRepository       { return r.markets }
func (r *TxReposMock) Products() repo.ProductRepository     { return r.products }
func (r *TxReposMock) Prices() repo.PriceRepository         { return r.prices }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByCustomerID(ctx context.Context, customerID int64, f repo.OrderListFilter) ([]model.Order, error) {
	args := m.Called(ctx, customerID, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListByMarketID(ctx context.Context, marketID int64, f repo.OrderListFilter) ([]model.Order, error) {
	args := m.Called(ctx, marketID, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatusCAS(ctx context.Context, orderID int64, from, to model.OrderStatus) error {
	args := m.Called(ctx, orderID, from, to)
	return args.Error(0)
}

func (m *OrderRepoMock) Stats(ctx context.Context, marketID *int64) (repo.OrderStats, error) {
	args := m.Called(ctx, marketID)
	s, _ := args.Get(0).(repo.OrderStats)
	return s, args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type MarketRepoMock struct{ mock.Mock }

func (m *MarketRepoMock) FindByID(ctx context.Context, marketID int64) (model.Market, error) {
	args := m.Called(ctx, marketID)
	mk, _ := args.Get(0).(model.Market)
	return mk, args.Error(1)
}

func (m *MarketRepoMock) FindOwnerID(ctx context.Context, marketID int64) (int64, error) {
	args := m.Called(ctx, marketID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MarketRepoMock) Create(ctx context.Context, market model.Market) (int64, error) {
	args := m.Called(ctx, market)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MarketRepoMock) List(ctx context.Context) ([]model.Market, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Market)
	return items, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) ListByMarketID(ctx context.Context, marketID int64) ([]model.Product, error) {
	args := m.Called(ctx, marketID)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, product model.Product) (int64, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(int64), args.Error(1)
}

type PriceRepoMock struct{ mock.Mock }

func (m *PriceRepoMock) FindLatestByProductID(ctx context.Context, productID int64) (model.Price, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Price)
	return p, args.Error(1)
}

func (m *PriceRepoMock) Create(ctx context.Context, price model.Price) (int64, error) {
	args := m.Called(ctx, price)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PriceRepoMock) ListTrend(ctx context.Context, productID int64, days int) ([]model.Price, error) {
	args := m.Called(ctx, productID, days)
	items, _ := args.Get(0).([]model.Price)
	return items, args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	user.ID = 1
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// =====================
// Emitter mock
// =====================

type EmitterMock struct{ mock.Mock }

func (m *EmitterMock) OrderCreated(ctx context.Context, ev notify.OrderCreatedEvent) {
	m.Called(ctx, ev)
}

func (m *EmitterMock) StatusChanged(ctx context.Context, ev notify.StatusChangedEvent) {
	m.Called(ctx, ev)
}
