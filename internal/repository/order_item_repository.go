package repository

import (
	"context"

	"agrimarket/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	//挿入順で返す
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
