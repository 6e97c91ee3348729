package repository

import (
	"context"
	"errors"
	"time"

	"agrimarket/internal/domain/model"
	repo "agrimarket/internal/repository"

	"gorm.io/gorm"
)

type PriceGormRepository struct {
	db *gorm.DB
}

func NewPriceGormRepository(db *gorm.DB) *PriceGormRepository {
	return &PriceGormRepository{db: db}
}

// 最新の記録＝現在価格
func (r *PriceGormRepository) FindLatestByProductID(ctx context.Context, productID int64) (model.Price, error) {
	var p model.Price
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("date desc, id desc").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Price{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Price{}, err
	}
	return p, nil
}

func (r *PriceGormRepository) Create(ctx context.Context, price model.Price) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&price).Error; err != nil {
		return 0, err
	}
	return price.ID, nil
}

func (r *PriceGormRepository) ListTrend(ctx context.Context, productID int64, days int) ([]model.Price, error) {
	since := time.Now().AddDate(0, 0, -days)

	var items []model.Price
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND date >= ?", productID, since).
		Order("date asc, id asc").
		Find(&items).Error
	if err != nil {
		return []model.Price{}, err
	}
	return items, nil
}
