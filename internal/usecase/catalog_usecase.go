package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"agrimarket/internal/domain/model"
	repo "agrimarket/internal/repository"

	"github.com/shopspring/decimal"
)

// カタログ側。市場・商品・価格記録の読み書き
// 注文エンジンから見るとCatalog Reader + Market Ownership Lookup
type CatalogUsecase struct {
	markets  repo.MarketRepository
	products repo.ProductRepository
	prices   repo.PriceRepository
}

func NewCatalogUsecase(markets repo.MarketRepository, products repo.ProductRepository, prices repo.PriceRepository) *CatalogUsecase {
	return &CatalogUsecase{markets: markets, products: products, prices: prices}
}

type ResolvedProduct struct {
	ProductID int64           `json:"product_id"`
	MarketID  int64           `json:"market_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ResolveProductは商品と現在価格（最新の記録価格）を返す
func (u *CatalogUsecase) ResolveProduct(ctx context.Context, productID int64) (ResolvedProduct, error) {
	if productID <= 0 {
		return ResolvedProduct{}, &ValidationError{Field: "product_id", Message: "invalid product_id"}
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ResolvedProduct{}, &NotFoundError{Resource: "product", ID: productID}
	}
	if err != nil {
		return ResolvedProduct{}, &PersistenceError{Op: "find product", Err: err}
	}

	price, err := u.prices.FindLatestByProductID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ResolvedProduct{}, &NotFoundError{Resource: "price for product", ID: productID}
	}
	if err != nil {
		return ResolvedProduct{}, &PersistenceError{Op: "find price", Err: err}
	}

	return ResolvedProduct{
		ProductID: p.ID,
		MarketID:  p.MarketID,
		Name:      p.Name,
		Unit:      p.Unit,
		UnitPrice: price.Price,
	}, nil
}

func (u *CatalogUsecase) ListMarkets(ctx context.Context) ([]model.Market, error) {
	items, err := u.markets.List(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list markets", Err: err}
	}
	return items, nil
}

func (u *CatalogUsecase) ListMarketProducts(ctx context.Context, marketID int64) ([]model.Product, error) {
	if marketID <= 0 {
		return nil, &ValidationError{Field: "market_id", Message: "invalid market_id"}
	}
	if _, err := u.markets.FindByID(ctx, marketID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "market", ID: marketID}
		}
		return nil, &PersistenceError{Op: "find market", Err: err}
	}

	items, err := u.products.ListByMarketID(ctx, marketID)
	if err != nil {
		return nil, &PersistenceError{Op: "list products", Err: err}
	}
	return items, nil
}

type CreateMarketInput struct {
	Name     string
	Location string
}

// 市場作成。sellerは自分名義、adminも作れる
func (u *CatalogUsecase) CreateMarket(ctx context.Context, actor Actor, in CreateMarketInput) (int64, error) {
	if actor.UserID <= 0 {
		return 0, &PermissionError{Message: "unauthorized"}
	}
	if actor.Role != model.RoleSeller && actor.Role != model.RoleSuperAdmin {
		return 0, &PermissionError{Message: "sellers or admins only"}
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return 0, &ValidationError{Field: "name", Message: "name required"}
	}

	id, err := u.markets.Create(ctx, model.Market{
		Name:        name,
		Location:    strings.TrimSpace(in.Location),
		OwnerUserID: actor.UserID,
	})
	if err != nil {
		return 0, &PersistenceError{Op: "create market", Err: err}
	}
	return id, nil
}

type CreateProductInput struct {
	MarketID int64
	Name     string
	Category string
	Unit     string
}

func (u *CatalogUsecase) CreateProduct(ctx context.Context, actor Actor, in CreateProductInput) (int64, error) {
	if actor.UserID <= 0 {
		return 0, &PermissionError{Message: "unauthorized"}
	}
	if in.MarketID <= 0 {
		return 0, &ValidationError{Field: "market_id", Message: "invalid market_id"}
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return 0, &ValidationError{Field: "name", Message: "name required"}
	}
	if strings.TrimSpace(in.Unit) == "" {
		return 0, &ValidationError{Field: "unit", Message: "unit required"}
	}

	if err := u.requireMarketAccess(ctx, actor, in.MarketID); err != nil {
		return 0, err
	}

	id, err := u.products.Create(ctx, model.Product{
		MarketID: in.MarketID,
		Name:     name,
		Category: strings.TrimSpace(in.Category),
		Unit:     strings.TrimSpace(in.Unit),
	})
	if err != nil {
		return 0, &PersistenceError{Op: "create product", Err: err}
	}
	return id, nil
}

type RecordPriceInput struct {
	ProductID int64
	Price     decimal.Decimal
	Date      time.Time
}

// RecordPriceは価格を記録する。履歴は追記のみで、過去の注文のスナップショットには影響しない
func (u *CatalogUsecase) RecordPrice(ctx context.Context, actor Actor, in RecordPriceInput) (int64, error) {
	if actor.UserID <= 0 {
		return 0, &PermissionError{Message: "unauthorized"}
	}
	if in.ProductID <= 0 {
		return 0, &ValidationError{Field: "product_id", Message: "invalid product_id"}
	}
	if in.Price.Sign() <= 0 {
		return 0, &ValidationError{Field: "price", Message: "price must be positive"}
	}

	p, err := u.products.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, &NotFoundError{Resource: "product", ID: in.ProductID}
	}
	if err != nil {
		return 0, &PersistenceError{Op: "find product", Err: err}
	}

	if err := u.requireMarketAccess(ctx, actor, p.MarketID); err != nil {
		return 0, err
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	id, err := u.prices.Create(ctx, model.Price{
		ProductID:  in.ProductID,
		MarketID:   p.MarketID,
		Price:      in.Price.Round(moneyScale),
		Date:       date,
		RecordedBy: actor.UserID,
	})
	if err != nil {
		return 0, &PersistenceError{Op: "create price", Err: err}
	}
	return id, nil
}

// PriceTrendは直近days日の価格推移（古い順）
func (u *CatalogUsecase) PriceTrend(ctx context.Context, productID int64, days int) ([]model.Price, error) {
	if productID <= 0 {
		return nil, &ValidationError{Field: "product_id", Message: "invalid product_id"}
	}
	if days <= 0 {
		days = 30
	}
	if _, err := u.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "product", ID: productID}
		}
		return nil, &PersistenceError{Op: "find product", Err: err}
	}

	items, err := u.prices.ListTrend(ctx, productID, days)
	if err != nil {
		return nil, &PersistenceError{Op: "list price trend", Err: err}
	}
	return items, nil
}

// sellerは自分の市場だけ触れる。所有者は毎回引き直す
func (u *CatalogUsecase) requireMarketAccess(ctx context.Context, actor Actor, marketID int64) error {
	switch actor.Role {
	case model.RoleSuperAdmin:
		return nil
	case model.RoleSeller:
		owner, err := u.markets.FindOwnerID(ctx, marketID)
		if errors.Is(err, repo.ErrNotFound) {
			return &NotFoundError{Resource: "market", ID: marketID}
		}
		if err != nil {
			return &PersistenceError{Op: "find market owner", Err: err}
		}
		if owner != actor.UserID {
			return &PermissionError{Message: "you do not own this market"}
		}
		return nil
	default:
		return &PermissionError{Message: "sellers or admins only"}
	}
}
