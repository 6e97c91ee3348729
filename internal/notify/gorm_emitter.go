package notify

import (
	"context"
	"encoding/json"
	"log"

	"agrimarket/internal/domain/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 通知レコードをDBに積むだけ。配送は別システムの仕事
type GormEmitter struct {
	db *gorm.DB
}

func NewGormEmitter(db *gorm.DB) *GormEmitter {
	return &GormEmitter{db: db}
}

func (e *GormEmitter) OrderCreated(ctx context.Context, ev OrderCreatedEvent) {
	e.store(ctx, ev.CustomerID, model.NotificationOrderCreated, ev)
}

func (e *GormEmitter) StatusChanged(ctx context.Context, ev StatusChangedEvent) {
	e.store(ctx, ev.CustomerID, model.NotificationStatusChanged, ev)
}

func (e *GormEmitter) store(ctx context.Context, userID int64, kind model.NotificationKind, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("notify: marshal %s: %v", kind, err)
		return
	}

	n := model.Notification{
		EventID: uuid.NewString(),
		UserID:  userID,
		Kind:    kind,
		Payload: string(body),
	}
	//失敗してもログだけ残して飲み込む
	if err := e.db.WithContext(ctx).Create(&n).Error; err != nil {
		log.Printf("notify: store %s: %v", kind, err)
	}
}
