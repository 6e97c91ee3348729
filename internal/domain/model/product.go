package model

import "time"

// 農産物。価格はpricesテーブルで別管理（最新レコードが現在価格）
type Product struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	MarketID  int64     `gorm:"not null;index" json:"market_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Category  string    `gorm:"type:varchar(50)" json:"category"`
	Unit      string    `gorm:"type:varchar(20);not null" json:"unit"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
