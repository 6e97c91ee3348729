package usecase_test

import (
	"testing"

	"agrimarket/internal/domain/model"
	"agrimarket/internal/usecase"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []model.OrderStatus{
	model.OrderStatusPending,
	model.OrderStatusConfirmed,
	model.OrderStatusProcessing,
	model.OrderStatusReady,
	model.OrderStatusCompleted,
	model.OrderStatusCancelled,
}

// 遷移表の全組み合わせ。表に無いものは全部falseであること
func TestCanTransition_Closure(t *testing.T) {
	allowed := map[model.OrderStatus][]model.OrderStatus{
		model.OrderStatusPending:    {model.OrderStatusConfirmed, model.OrderStatusCancelled},
		model.OrderStatusConfirmed:  {model.OrderStatusProcessing, model.OrderStatusCancelled},
		model.OrderStatusProcessing: {model.OrderStatusReady},
		model.OrderStatusReady:      {model.OrderStatusCompleted},
		model.OrderStatusCompleted:  {},
		model.OrderStatusCancelled:  {},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			got := usecase.CanTransition(from, to)
			assert.Equal(t, want, got, "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_NoSkipInMainChain(t *testing.T) {
	//pendingからprocessing/ready/completedへ飛べない
	assert.False(t, usecase.CanTransition(model.OrderStatusPending, model.OrderStatusProcessing))
	assert.False(t, usecase.CanTransition(model.OrderStatusPending, model.OrderStatusReady))
	assert.False(t, usecase.CanTransition(model.OrderStatusPending, model.OrderStatusCompleted))
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range allStatuses {
		assert.True(t, usecase.IsValidStatus(s))
	}
	assert.False(t, usecase.IsValidStatus(model.OrderStatus("shipped")))
	assert.False(t, usecase.IsValidStatus(model.OrderStatus("")))
}
