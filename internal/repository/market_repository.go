package repository

import (
	"context"

	"agrimarket/internal/domain/model"
)

type MarketRepository interface {
	FindByID(ctx context.Context, marketID int64) (model.Market, error)
	//seller権限判定用。所有者は毎回引き直す（キャッシュしない）
	FindOwnerID(ctx context.Context, marketID int64) (int64, error)
	Create(ctx context.Context, market model.Market) (int64, error)
	List(ctx context.Context) ([]model.Market, error)
}
