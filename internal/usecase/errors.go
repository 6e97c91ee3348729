package usecase

import (
	"fmt"

	"agrimarket/internal/domain/model"
)

// 入力が壊れている（呼び出し側が直せば通る）
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// 権限なし
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string { return e.Message }

// 現在statusから許可されない遷移
type InvalidTransitionError struct {
	From    model.OrderStatus
	To      model.OrderStatus
	Message string
}

func (e *InvalidTransitionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (%s -> %s)", e.Message, e.From, e.To)
	}
	return fmt.Sprintf("invalid transition %s -> %s", e.From, e.To)
}

type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// ストレージ障害。操作はatomicなのでリトライして安全
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
