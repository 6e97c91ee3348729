package notify

import (
	"context"

	"agrimarket/internal/domain/model"
)

type OrderCreatedEvent struct {
	OrderID    int64 `json:"order_id"`
	CustomerID int64 `json:"customer_id"`
	MarketID   int64 `json:"market_id"`
}

type StatusChangedEvent struct {
	OrderID    int64             `json:"order_id"`
	CustomerID int64             `json:"customer_id"`
	OldStatus  model.OrderStatus `json:"old_status"`
	NewStatus  model.OrderStatus `json:"new_status"`
}

// fire-and-forget。ここが失敗しても注文処理は失敗させない
type Emitter interface {
	OrderCreated(ctx context.Context, ev OrderCreatedEvent)
	StatusChanged(ctx context.Context, ev StatusChangedEvent)
}
