package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxierra/tienda360-api/internal/dto"
	"github.com/maxierra/tienda360-api/internal/model"
	"github.com/maxierra/tienda360-api/internal/repository"
)

type mockSaleRepo struct {
	CreateFn   func(ctx context.Context, sale *model.Sale, items []*model.SaleItem) error
	SumSinceFn func(ctx context.Context, userID string, since time.Time) (*repository.SalesSummary, error)
}

func (m *mockSaleRepo) Create(ctx context.Context, sale *model.Sale, items []*model.SaleItem) error {
	return m.CreateFn(ctx, sale, items)
}

func (m *mockSaleRepo) SumSince(ctx context.Context, userID string, since time.Time) (*repository.SalesSummary, error) {
	return m.SumSinceFn(ctx, userID, since)
}

func TestRecordSale(t *testing.T) {
	var storedSale *model.Sale
	var storedItems []*model.SaleItem

	repo := &mockSaleRepo{
		CreateFn: func(ctx context.Context, sale *model.Sale, items []*model.SaleItem) error {
			storedSale = sale
			storedItems = items
			return nil
		},
	}
	svc := NewSaleService(repo)

	resp, err := svc.RecordSale(context.Background(), "user-1", &dto.CreateSaleRequest{
		Items: []dto.SaleItemInput{
			{Name: "Yerba 1kg", Quantity: 2, UnitPrice: decimal.RequireFromString("3500.50")},
			{Name: "Azúcar", Quantity: 1, UnitPrice: decimal.RequireFromString("1200")},
		},
		PaymentMethod: "card",
	})
	require.NoError(t, err)

	want := decimal.RequireFromString("8201.00")
	assert.True(t, resp.Total.Equal(want), "total = %s, want %s", resp.Total, want)
	assert.NotEmpty(t, resp.SaleID)

	require.NotNil(t, storedSale)
	assert.Equal(t, "user-1", storedSale.UserID)
	assert.Equal(t, "card", storedSale.PaymentMethod)
	assert.Equal(t, "ARS", storedSale.Currency)
	require.Len(t, storedItems, 2)
	assert.Equal(t, storedSale.ID, storedItems[0].SaleID)
}

func TestRecordSale_NoItems(t *testing.T) {
	svc := NewSaleService(&mockSaleRepo{})

	_, err := svc.RecordSale(context.Background(), "user-1", &dto.CreateSaleRequest{})

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "items", missing.Field)
}

func TestRecordSale_NonPositiveQuantity(t *testing.T) {
	svc := NewSaleService(&mockSaleRepo{})

	_, err := svc.RecordSale(context.Background(), "user-1", &dto.CreateSaleRequest{
		Items: []dto.SaleItemInput{
			{Name: "Yerba", Quantity: 0, UnitPrice: decimal.RequireFromString("3500")},
		},
	})
	require.Error(t, err)
}

func TestSummarySince(t *testing.T) {
	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	repo := &mockSaleRepo{
		SumSinceFn: func(ctx context.Context, userID string, got time.Time) (*repository.SalesSummary, error) {
			assert.Equal(t, "user-1", userID)
			assert.True(t, got.Equal(since))
			return &repository.SalesSummary{
				Total: decimal.RequireFromString("12345.67"),
				Count: 9,
			}, nil
		},
	}
	svc := NewSaleService(repo)

	resp, err := svc.SummarySince(context.Background(), "user-1", since)
	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.Count)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("12345.67")))
}
