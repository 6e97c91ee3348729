package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細
// 作成時点のカタログ価格を必ずスナップショットする。後で価格が変わっても明細は不変
type OrderItem struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64           `gorm:"not null;index" json:"order_id"`
	ProductID           int64           `gorm:"not null;index" json:"product_id"`
	ProductNameSnapshot string          `gorm:"type:varchar(100);not null" json:"product_name_snapshot"`
	UnitSnapshot        string          `gorm:"type:varchar(20);not null" json:"unit_snapshot"`
	UnitPriceSnapshot   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price_snapshot"`
	Quantity            decimal.Decimal `gorm:"type:numeric(12,3);not null" json:"quantity"`
	Subtotal            decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	CreatedAt           time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
