package usecase

import "agrimarket/internal/domain/model"

// 遷移表。ここに無い組み合わせは全部拒否
// pending -> confirmed -> processing -> ready -> completed
// cancelledはpending/confirmedからだけ
var orderTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:    {model.OrderStatusConfirmed, model.OrderStatusCancelled},
	model.OrderStatusConfirmed:  {model.OrderStatusProcessing, model.OrderStatusCancelled},
	model.OrderStatusProcessing: {model.OrderStatusReady},
	model.OrderStatusReady:      {model.OrderStatusCompleted},
	model.OrderStatusCompleted:  {},
	model.OrderStatusCancelled:  {},
}

func IsValidStatus(s model.OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

func CanTransition(from, to model.OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
