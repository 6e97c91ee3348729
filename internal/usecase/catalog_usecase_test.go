package usecase_test

import (
	"context"
	"testing"

	"agrimarket/internal/domain/model"
	repo "agrimarket/internal/repository"
	"agrimarket/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCatalogUC() (*usecase.CatalogUsecase, *MarketRepoMock, *ProductRepoMock, *PriceRepoMock) {
	markets := new(MarketRepoMock)
	products := new(ProductRepoMock)
	prices := new(PriceRepoMock)
	return usecase.NewCatalogUsecase(markets, products, prices), markets, products, prices
}

func TestResolveProduct_ReturnsLatestPrice(t *testing.T) {
	uc, _, products, prices := newCatalogUC()

	products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, MarketID: 7, Name: "Tomato", Unit: "kg"}, nil)
	prices.On("FindLatestByProductID", mock.Anything, int64(1)).
		Return(model.Price{ProductID: 1, Price: dec("450.00")}, nil)

	out, err := uc.ResolveProduct(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), out.MarketID)
	assert.Equal(t, "Tomato", out.Name)
	assert.Equal(t, "kg", out.Unit)
	assert.True(t, out.UnitPrice.Equal(dec("450.00")))
}

func TestResolveProduct_UnknownProduct(t *testing.T) {
	uc, _, products, _ := newCatalogUC()

	products.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.ResolveProduct(context.Background(), 99)

	var nfe *usecase.NotFoundError
	assert.ErrorAs(t, err, &nfe)
	assert.Equal(t, "product", nfe.Resource)
}

func TestResolveProduct_NoPriceRecorded(t *testing.T) {
	uc, _, products, prices := newCatalogUC()

	products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, MarketID: 7, Name: "Tomato", Unit: "kg"}, nil)
	prices.On("FindLatestByProductID", mock.Anything, int64(1)).
		Return(model.Price{}, repo.ErrNotFound)

	_, err := uc.ResolveProduct(context.Background(), 1)

	var nfe *usecase.NotFoundError
	assert.ErrorAs(t, err, &nfe)
}

func TestRecordPrice_SellerOwnMarket(t *testing.T) {
	uc, markets, products, prices := newCatalogUC()

	products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, MarketID: 7, Name: "Tomato", Unit: "kg"}, nil)
	markets.On("FindOwnerID", mock.Anything, int64(7)).Return(int64(42), nil)
	prices.On("Create", mock.Anything, mock.MatchedBy(func(p model.Price) bool {
		return p.ProductID == 1 && p.MarketID == 7 &&
			p.Price.Equal(dec("460.50")) && p.RecordedBy == 42
	})).Return(int64(100), nil)

	id, err := uc.RecordPrice(context.Background(), seller, usecase.RecordPriceInput{
		ProductID: 1,
		Price:     dec("460.50"),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(100), id)
}

func TestRecordPrice_SellerWrongMarketDenied(t *testing.T) {
	uc, markets, products, prices := newCatalogUC()

	products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, MarketID: 7}, nil)
	markets.On("FindOwnerID", mock.Anything, int64(7)).Return(int64(777), nil)

	_, err := uc.RecordPrice(context.Background(), seller, usecase.RecordPriceInput{
		ProductID: 1,
		Price:     dec("460.50"),
	})

	var pe *usecase.PermissionError
	assert.ErrorAs(t, err, &pe)
	prices.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordPrice_CustomerDenied(t *testing.T) {
	uc, _, products, _ := newCatalogUC()

	products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, MarketID: 7}, nil)

	_, err := uc.RecordPrice(context.Background(), customer, usecase.RecordPriceInput{
		ProductID: 1,
		Price:     dec("460.50"),
	})

	var pe *usecase.PermissionError
	assert.ErrorAs(t, err, &pe)
}

func TestRecordPrice_NonPositivePrice(t *testing.T) {
	uc, _, _, _ := newCatalogUC()

	_, err := uc.RecordPrice(context.Background(), seller, usecase.RecordPriceInput{
		ProductID: 1,
		Price:     dec("0"),
	})

	var ve *usecase.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "price", ve.Field)
}

func TestCreateMarket_CustomerDenied(t *testing.T) {
	uc, _, _, _ := newCatalogUC()

	_, err := uc.CreateMarket(context.Background(), customer, usecase.CreateMarketInput{Name: "Central"})

	var pe *usecase.PermissionError
	assert.ErrorAs(t, err, &pe)
}

func TestCreateMarket_SellerOwnsCreated(t *testing.T) {
	uc, markets, _, _ := newCatalogUC()

	markets.On("Create", mock.Anything, mock.MatchedBy(func(m model.Market) bool {
		return m.Name == "Central" && m.OwnerUserID == 42
	})).Return(int64(7), nil)

	id, err := uc.CreateMarket(context.Background(), seller, usecase.CreateMarketInput{
		Name:     " Central ",
		Location: "Almaty",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestPriceTrend_DefaultDays(t *testing.T) {
	uc, _, products, prices := newCatalogUC()

	products.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, MarketID: 7}, nil)
	prices.On("ListTrend", mock.Anything, int64(1), 30).Return([]model.Price{}, nil)

	_, err := uc.PriceTrend(context.Background(), 1, 0)

	assert.NoError(t, err)
	prices.AssertExpectations(t)
}
