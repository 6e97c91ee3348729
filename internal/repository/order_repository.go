package repository

import (
	"context"
	"errors"

	"agrimarket/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 見つかりませんを統一
var ErrNotFound = errors.New("not found")

// UpdateStatusCASで現在statusが一致しなかった（誰かが先に更新した）
var ErrStatusConflict = errors.New("status conflict")

type OrderListFilter struct {
	Status *model.OrderStatus
}

// 注文集計の結果
type OrderStats struct {
	TotalOrders       int64
	TotalRevenue      decimal.Decimal
	AverageOrderValue decimal.Decimal
	CountsByStatus    map[model.OrderStatus]int64
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	//新しい順
	ListByCustomerID(ctx context.Context, customerID int64, f OrderListFilter) ([]model.Order, error)
	ListByMarketID(ctx context.Context, marketID int64, f OrderListFilter) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	//compare-and-swap更新。fromが現在値と一致した時だけtoへ更新する
	//行が無ければErrNotFound、statusが既に変わっていればErrStatusConflict
	UpdateStatusCAS(ctx context.Context, orderID int64, from, to model.OrderStatus) error

	//marketIDがnilなら全体集計。revenueはcancelledを除く
	Stats(ctx context.Context, marketID *int64) (OrderStats, error)
}
