package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agrimarket/internal/domain/model"
	"agrimarket/internal/notify"
	repo "agrimarket/internal/repository"

	"github.com/shopspring/decimal"
)

// 金額は小数2桁、半数切り上げ（Roundはhalf away from zero、正の金額ならhalf upと同じ）
const moneyScale = 2

// 注文ライフサイクルエンジン。
// 検証・価格スナップショット・状態遷移・ロール別の可視範囲を全部ここで持つ
type OrderUsecase struct {
	tx      repo.TransactionManager
	emitter notify.Emitter
}

func NewOrderUsecase(tx repo.TransactionManager, emitter notify.Emitter) *OrderUsecase {
	return &OrderUsecase{tx: tx, emitter: emitter}
}

type CreateOrderItemInput struct {
	ProductID int64
	Quantity  decimal.Decimal
	//クライアントが送ってきた価格。参考値でしかなく、必ずカタログ価格で上書きする
	UnitPriceHint decimal.Decimal
}

type CreateOrderInput struct {
	MarketID        int64
	Items           []CreateOrderItemInput
	DeliveryAddress string
	DeliveryPhone   string
	Notes           string
}

type OrderItemOutput struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  decimal.Decimal `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type OrderOutput struct {
	ID              int64             `json:"id"`
	CustomerID      int64             `json:"customer_id"`
	MarketID        int64             `json:"market_id"`
	Status          string            `json:"status"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	DeliveryAddress string            `json:"delivery_address"`
	DeliveryPhone   string            `json:"delivery_phone"`
	Notes           string            `json:"notes"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Items           []OrderItemOutput `json:"items"`
}

// CreateOrderは注文ヘッダと明細を1トランザクションで作る。
// 各明細の単価はカタログ（最新の記録価格）から読み直してスナップショットする
func (u *OrderUsecase) CreateOrder(ctx context.Context, actor Actor, in CreateOrderInput) (OrderOutput, error) {
	if actor.UserID <= 0 {
		return OrderOutput{}, &PermissionError{Message: "unauthorized"}
	}
	//注文できるのはcustomerとsuper_adminだけ
	if actor.Role != model.RoleCustomer && actor.Role != model.RoleSuperAdmin {
		return OrderOutput{}, &PermissionError{Message: "only customers can place orders"}
	}
	if in.MarketID <= 0 {
		return OrderOutput{}, &ValidationError{Field: "market_id", Message: "invalid market_id"}
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, &ValidationError{Field: "items", Message: "order must contain at least one item"}
	}
	for _, it := range in.Items {
		if it.Quantity.Sign() <= 0 {
			return OrderOutput{}, &ValidationError{
				Field:   "quantity",
				Message: fmt.Sprintf("quantity for product %d must be positive", it.ProductID),
			}
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Markets().FindByID(ctx, in.MarketID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return &NotFoundError{Resource: "market", ID: in.MarketID}
			}
			return &PersistenceError{Op: "find market", Err: err}
		}

		orderItems := make([]model.OrderItem, 0, len(in.Items))
		total := decimal.Zero

		for _, it := range in.Items {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return &ValidationError{
					Field:   "items",
					Message: fmt.Sprintf("unknown product %d", it.ProductID),
				}
			}
			if err != nil {
				return &PersistenceError{Op: "find product", Err: err}
			}

			//別市場の商品は混ぜられない
			if p.MarketID != in.MarketID {
				return &ValidationError{
					Field:   "items",
					Message: fmt.Sprintf("product %d does not belong to market %d", it.ProductID, in.MarketID),
				}
			}

			//カタログ価格を読み直す。ヒント価格は信用しない
			price, err := r.Prices().FindLatestByProductID(ctx, it.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return &ValidationError{
					Field:   "items",
					Message: fmt.Sprintf("no recorded price for product %d", it.ProductID),
				}
			}
			if err != nil {
				return &PersistenceError{Op: "find price", Err: err}
			}

			subtotal := price.Price.Mul(it.Quantity).Round(moneyScale)
			total = total.Add(subtotal)

			orderItems = append(orderItems, model.OrderItem{
				ProductID:           it.ProductID,
				ProductNameSnapshot: p.Name,
				UnitSnapshot:        p.Unit,
				UnitPriceSnapshot:   price.Price,
				Quantity:            it.Quantity,
				Subtotal:            subtotal,
			})
		}

		total = total.Round(moneyScale)

		now := time.Now()
		order := model.Order{
			CustomerID:      actor.UserID,
			MarketID:        in.MarketID,
			Status:          model.OrderStatusPending,
			TotalAmount:     total,
			DeliveryAddress: in.DeliveryAddress,
			DeliveryPhone:   in.DeliveryPhone,
			Notes:           in.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return &PersistenceError{Op: "create order", Err: err}
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return &PersistenceError{Op: "create order items", Err: err}
		}

		order.ID = orderID
		out = toOrderOutput(order, orderItems)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	//通知は投げるだけ。失敗しても注文は成立している
	u.emitter.OrderCreated(ctx, notify.OrderCreatedEvent{
		OrderID:    out.ID,
		CustomerID: out.CustomerID,
		MarketID:   out.MarketID,
	})

	return out, nil
}

// UpdateOrderStatusは遷移表に従ってstatusを進める。
// 更新はcompare-and-swapで、同じ注文への同時更新は片方だけ勝つ
func (u *OrderUsecase) UpdateOrderStatus(ctx context.Context, actor Actor, orderID int64, requested model.OrderStatus) error {
	if actor.UserID <= 0 {
		return &PermissionError{Message: "unauthorized"}
	}
	if orderID <= 0 {
		return &ValidationError{Field: "order_id", Message: "invalid order_id"}
	}
	if !IsValidStatus(requested) {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", requested)}
	}

	var ev notify.StatusChangedEvent

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return &NotFoundError{Resource: "order", ID: orderID}
		}
		if err != nil {
			return &PersistenceError{Op: "find order", Err: err}
		}

		//権限は毎回その場で判定する（市場の所有者は変わり得るのでキャッシュ禁止）
		if err := authorizeStatusChange(ctx, r, actor, o, requested); err != nil {
			return err
		}

		if !CanTransition(o.Status, requested) {
			return &InvalidTransitionError{From: o.Status, To: requested}
		}

		err = r.Orders().UpdateStatusCAS(ctx, orderID, o.Status, requested)
		if errors.Is(err, repo.ErrStatusConflict) {
			//先に誰かが更新した。前提が崩れたので負け側はエラーで返す
			cur, rerr := r.Orders().FindByID(ctx, orderID)
			if rerr != nil {
				cur.Status = o.Status
			}
			return &InvalidTransitionError{
				From:    cur.Status,
				To:      requested,
				Message: "order was updated concurrently",
			}
		}
		if errors.Is(err, repo.ErrNotFound) {
			return &NotFoundError{Resource: "order", ID: orderID}
		}
		if err != nil {
			return &PersistenceError{Op: "update status", Err: err}
		}

		ev = notify.StatusChangedEvent{
			OrderID:    orderID,
			CustomerID: o.CustomerID,
			OldStatus:  o.Status,
			NewStatus:  requested,
		}
		return nil
	})
	if err != nil {
		return err
	}

	u.emitter.StatusChanged(ctx, ev)
	return nil
}

// CancelOrderはcancelledへの遷移の薄いラッパー。
// processing以降は進み過ぎなのでキャンセル不可
func (u *OrderUsecase) CancelOrder(ctx context.Context, actor Actor, orderID int64) error {
	err := u.UpdateOrderStatus(ctx, actor, orderID, model.OrderStatusCancelled)

	var ite *InvalidTransitionError
	if errors.As(err, &ite) && ite.Message == "" {
		switch ite.From {
		case model.OrderStatusProcessing, model.OrderStatusReady, model.OrderStatusCompleted:
			return &InvalidTransitionError{From: ite.From, To: ite.To, Message: "too far advanced to cancel"}
		case model.OrderStatusCancelled:
			return &InvalidTransitionError{From: ite.From, To: ite.To, Message: "already cancelled"}
		}
	}
	return err
}

// GetVisibleOrderは読み取り専用の可視範囲チェック付き取得。
// statusを触る権限とは別ルール
func (u *OrderUsecase) GetVisibleOrder(ctx context.Context, actor Actor, orderID int64) (OrderOutput, error) {
	if actor.UserID <= 0 {
		return OrderOutput{}, &PermissionError{Message: "unauthorized"}
	}
	if orderID <= 0 {
		return OrderOutput{}, &ValidationError{Field: "order_id", Message: "invalid order_id"}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return &NotFoundError{Resource: "order", ID: orderID}
		}
		if err != nil {
			return &PersistenceError{Op: "find order", Err: err}
		}

		if err := authorizeView(ctx, r, actor, o); err != nil {
			return err
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return &PersistenceError{Op: "list order items", Err: err}
		}

		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ListMyOrdersは自分の注文一覧（新しい順）
func (u *OrderUsecase) ListMyOrders(ctx context.Context, actor Actor, status *model.OrderStatus) ([]OrderOutput, error) {
	if actor.UserID <= 0 {
		return nil, &PermissionError{Message: "unauthorized"}
	}
	if status != nil && !IsValidStatus(*status) {
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", *status)}
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByCustomerID(ctx, actor.UserID, repo.OrderListFilter{Status: status})
		if err != nil {
			return &PersistenceError{Op: "list orders", Err: err}
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return &PersistenceError{Op: "list order items", Err: err}
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outs, nil
}

// ListMarketOrdersは市場側（seller/admin）の注文一覧
func (u *OrderUsecase) ListMarketOrders(ctx context.Context, actor Actor, marketID int64, status *model.OrderStatus) ([]OrderOutput, error) {
	if actor.UserID <= 0 {
		return nil, &PermissionError{Message: "unauthorized"}
	}
	if marketID <= 0 {
		return nil, &ValidationError{Field: "market_id", Message: "invalid market_id"}
	}
	if status != nil && !IsValidStatus(*status) {
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", *status)}
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		switch actor.Role {
		case model.RoleSuperAdmin:
			//全市場OK
		case model.RoleSeller:
			owner, err := r.Markets().FindOwnerID(ctx, marketID)
			if errors.Is(err, repo.ErrNotFound) {
				return &NotFoundError{Resource: "market", ID: marketID}
			}
			if err != nil {
				return &PersistenceError{Op: "find market owner", Err: err}
			}
			if owner != actor.UserID {
				return &PermissionError{Message: "you do not own this market"}
			}
		default:
			return &PermissionError{Message: "sellers or admins only"}
		}

		orders, err := r.Orders().ListByMarketID(ctx, marketID, repo.OrderListFilter{Status: status})
		if err != nil {
			return &PersistenceError{Op: "list orders", Err: err}
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return &PersistenceError{Op: "list order items", Err: err}
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outs, nil
}

type OrderStatsOutput struct {
	TotalOrders       int64                       `json:"total_orders"`
	TotalRevenue      decimal.Decimal             `json:"total_revenue"`
	AverageOrderValue decimal.Decimal             `json:"average_order_value"`
	CountsByStatus    map[model.OrderStatus]int64 `json:"counts_by_status"`
}

// GetOrderStatistics。売上はcancelledを除く、件数はcancelledも含む
func (u *OrderUsecase) GetOrderStatistics(ctx context.Context, actor Actor, marketID *int64) (OrderStatsOutput, error) {
	if actor.UserID <= 0 {
		return OrderStatsOutput{}, &PermissionError{Message: "unauthorized"}
	}

	var out OrderStatsOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		switch actor.Role {
		case model.RoleSuperAdmin:
		case model.RoleSeller:
			//sellerは自分の市場に限る
			if marketID == nil {
				return &PermissionError{Message: "system-wide statistics require admin"}
			}
			owner, err := r.Markets().FindOwnerID(ctx, *marketID)
			if errors.Is(err, repo.ErrNotFound) {
				return &NotFoundError{Resource: "market", ID: *marketID}
			}
			if err != nil {
				return &PersistenceError{Op: "find market owner", Err: err}
			}
			if owner != actor.UserID {
				return &PermissionError{Message: "you do not own this market"}
			}
		default:
			return &PermissionError{Message: "sellers or admins only"}
		}

		stats, err := r.Orders().Stats(ctx, marketID)
		if err != nil {
			return &PersistenceError{Op: "order stats", Err: err}
		}

		out = OrderStatsOutput{
			TotalOrders:       stats.TotalOrders,
			TotalRevenue:      stats.TotalRevenue,
			AverageOrderValue: stats.AverageOrderValue,
			CountsByStatus:    stats.CountsByStatus,
		}
		return nil
	})
	if err != nil {
		return OrderStatsOutput{}, err
	}
	return out, nil
}

// status変更の許可判定。(role, 所有関係)から明示的にallow/denyを出す
func authorizeStatusChange(ctx context.Context, r repo.TxRepos, actor Actor, o model.Order, requested model.OrderStatus) error {
	switch actor.Role {
	case model.RoleSuperAdmin:
		return nil
	case model.RoleSeller:
		owner, err := r.Markets().FindOwnerID(ctx, o.MarketID)
		if errors.Is(err, repo.ErrNotFound) {
			return &NotFoundError{Resource: "market", ID: o.MarketID}
		}
		if err != nil {
			return &PersistenceError{Op: "find market owner", Err: err}
		}
		if owner != actor.UserID {
			return &PermissionError{Message: "you do not own this market"}
		}
		return nil
	case model.RoleCustomer:
		//customerはキャンセルだけ、しかも自分の注文だけ
		if requested != model.OrderStatusCancelled {
			return &PermissionError{Message: "customers may only cancel orders"}
		}
		if o.CustomerID != actor.UserID {
			return &PermissionError{Message: "not your order"}
		}
		return nil
	default:
		return &PermissionError{Message: "unknown role"}
	}
}

// 読み取りの可視範囲。mutationルールとは独立
func authorizeView(ctx context.Context, r repo.TxRepos, actor Actor, o model.Order) error {
	switch actor.Role {
	case model.RoleSuperAdmin:
		return nil
	case model.RoleCustomer:
		if o.CustomerID != actor.UserID {
			return &PermissionError{Message: "not your order"}
		}
		return nil
	case model.RoleSeller:
		owner, err := r.Markets().FindOwnerID(ctx, o.MarketID)
		if errors.Is(err, repo.ErrNotFound) {
			return &NotFoundError{Resource: "market", ID: o.MarketID}
		}
		if err != nil {
			return &PersistenceError{Op: "find market owner", Err: err}
		}
		if owner != actor.UserID {
			return &PermissionError{Message: "you do not own this market"}
		}
		return nil
	default:
		return &PermissionError{Message: "unknown role"}
	}
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Unit:      it.UnitSnapshot,
			UnitPrice: it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		MarketID:        o.MarketID,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		DeliveryAddress: o.DeliveryAddress,
		DeliveryPhone:   o.DeliveryPhone,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Items:           outItems,
	}
}
