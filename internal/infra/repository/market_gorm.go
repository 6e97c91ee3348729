package repository

import (
	"context"
	"errors"

	"agrimarket/internal/domain/model"
	repo "agrimarket/internal/repository"

	"gorm.io/gorm"
)

type MarketGormRepository struct {
	db *gorm.DB
}

func NewMarketGormRepository(db *gorm.DB) *MarketGormRepository {
	return &MarketGormRepository{db: db}
}

func (r *MarketGormRepository) FindByID(ctx context.Context, marketID int64) (model.Market, error) {
	var m model.Market
	err := r.db.WithContext(ctx).Where("id = ?", marketID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Market{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Market{}, err
	}
	return m, nil
}

func (r *MarketGormRepository) FindOwnerID(ctx context.Context, marketID int64) (int64, error) {
	m, err := r.FindByID(ctx, marketID)
	if err != nil {
		return 0, err
	}
	return m.OwnerUserID, nil
}

func (r *MarketGormRepository) Create(ctx context.Context, market model.Market) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&market).Error; err != nil {
		return 0, err
	}
	return market.ID, nil
}

func (r *MarketGormRepository) List(ctx context.Context) ([]model.Market, error) {
	var items []model.Market
	if err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return []model.Market{}, err
	}
	return items, nil
}
