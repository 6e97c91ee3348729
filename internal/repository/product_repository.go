package repository

import (
	"context"

	"agrimarket/internal/domain/model"
)

type ProductRepository interface {
	FindByID(ctx context.Context, productID int64) (model.Product, error)
	ListByMarketID(ctx context.Context, marketID int64) ([]model.Product, error)
	Create(ctx context.Context, product model.Product) (int64, error)
}
