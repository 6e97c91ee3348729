package usecase

import "agrimarket/internal/domain/model"

// 認証済みの呼び出し主。Identity Contextから渡される
type Actor struct {
	UserID int64
	Role   model.Role
}
