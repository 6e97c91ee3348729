package repository

import (
	"context"

	"agrimarket/internal/domain/model"
)

type PriceRepository interface {
	//最新の記録価格＝現在のカタログ価格。記録が無ければErrNotFound
	FindLatestByProductID(ctx context.Context, productID int64) (model.Price, error)
	Create(ctx context.Context, price model.Price) (int64, error)
	//直近days日分、古い順
	ListTrend(ctx context.Context, productID int64, days int) ([]model.Price, error)
}
