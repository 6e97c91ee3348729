package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 価格記録。金額は固定小数（numeric）、floatは使わない
type Price struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID  int64           `gorm:"not null;index" json:"product_id"`
	MarketID   int64           `gorm:"not null;index" json:"market_id"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Date       time.Time       `gorm:"type:date;not null;index" json:"date"`
	RecordedBy int64           `gorm:"not null" json:"recorded_by"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
