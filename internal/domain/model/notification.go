package model

import "time"

type NotificationKind string

const (
	NotificationOrderCreated  NotificationKind = "order_created"
	NotificationStatusChanged NotificationKind = "status_changed"
)

// 通知レコード。配送はしない、意図だけ残す
type Notification struct {
	ID        int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID   string           `gorm:"type:varchar(36);not null;uniqueIndex" json:"event_id"`
	UserID    int64            `gorm:"not null;index" json:"user_id"`
	Kind      NotificationKind `gorm:"type:varchar(30);not null" json:"kind"`
	Payload   string           `gorm:"type:text;not null" json:"payload"`
	CreatedAt time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
}
