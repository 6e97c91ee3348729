package model

import "time"

// 市場。OwnerUserIDはseller権限判定に使う
type Market struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Location    string    `gorm:"type:varchar(255)" json:"location"`
	OwnerUserID int64     `gorm:"not null;index" json:"owner_user_id"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
