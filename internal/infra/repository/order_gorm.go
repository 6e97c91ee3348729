package repository

import (
	"context"
	"errors"
	"time"

	"agrimarket/internal/domain/model"
	repo "agrimarket/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *OrderGormRepository) ListByCustomerID(ctx context.Context, customerID int64, f repo.OrderListFilter) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Where("customer_id = ?", customerID)
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var items []model.Order
	//新しい順
	if err := q.Order("created_at desc, id desc").Find(&items).Error; err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) ListByMarketID(ctx context.Context, marketID int64, f repo.OrderListFilter) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Where("market_id = ?", marketID)
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var items []model.Order
	if err := q.Order("created_at desc, id desc").Find(&items).Error; err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, err
	}
	return order.ID, nil
}

// 現在statusが一致した行だけ更新する。ブラインド上書きはしない
func (r *OrderGormRepository) UpdateStatusCAS(ctx context.Context, orderID int64, from, to model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		//行が無いのか、statusが変わったのかを区別する
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Order{}).
			Where("id = ?", orderID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return repo.ErrNotFound
		}
		return repo.ErrStatusConflict
	}
	return nil
}

type statusCountRow struct {
	Status model.OrderStatus
	Count  int64
}

func (r *OrderGormRepository) Stats(ctx context.Context, marketID *int64) (repo.OrderStats, error) {
	base := r.db.WithContext(ctx).Model(&model.Order{})
	if marketID != nil {
		base = base.Where("market_id = ?", *marketID)
	}

	//status別件数（cancelled含む）
	var rows []statusCountRow
	if err := base.Session(&gorm.Session{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return repo.OrderStats{}, err
	}

	counts := make(map[model.OrderStatus]int64, len(rows))
	var total int64
	for _, row := range rows {
		counts[row.Status] = row.Count
		total += row.Count
	}

	//売上はcancelledを除く
	type revenueRow struct {
		Revenue decimal.NullDecimal
		N       int64
	}
	var rev revenueRow
	if err := base.Session(&gorm.Session{}).
		Where("status <> ?", model.OrderStatusCancelled).
		Select("coalesce(sum(total_amount), 0) as revenue, count(*) as n").
		Scan(&rev).Error; err != nil {
		return repo.OrderStats{}, err
	}

	revenue := decimal.Zero
	if rev.Revenue.Valid {
		revenue = rev.Revenue.Decimal
	}
	avg := decimal.Zero
	if rev.N > 0 {
		avg = revenue.DivRound(decimal.NewFromInt(rev.N), 2)
	}

	return repo.OrderStats{
		TotalOrders:       total,
		TotalRevenue:      revenue,
		AverageOrderValue: avg,
		CountsByStatus:    counts,
	}, nil
}
