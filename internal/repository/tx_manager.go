package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Markets() MarketRepository
	Products() ProductRepository
	Prices() PriceRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// fnがerrorを返したら全部ロールバック（部分コミットは絶対に見せない）
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
