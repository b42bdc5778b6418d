package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maxierra/tienda360-api/internal/dto"
	"github.com/maxierra/tienda360-api/internal/model"
	"github.com/maxierra/tienda360-api/internal/repository"
	"github.com/shopspring/decimal"
)

type SaleService interface {
	RecordSale(ctx context.Context, userID string, req *dto.CreateSaleRequest) (*dto.CreateSaleResponse, error)
	SummarySince(ctx context.Context, userID string, since time.Time) (*dto.SalesSummaryResponse, error)
}

type saleServiceImpl struct {
	saleRepo repository.SaleRepository
}

func NewSaleService(saleRepo repository.SaleRepository) SaleService {
	return &saleServiceImpl{
		saleRepo: saleRepo,
	}
}

func (s *saleServiceImpl) RecordSale(ctx context.Context, userID string, req *dto.CreateSaleRequest) (*dto.CreateSaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, &MissingFieldError{Field: "items"}
	}

	saleID := uuid.NewString()
	total := decimal.Zero
	items := make([]*model.SaleItem, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item quantity must be positive")
		}
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt32(item.Quantity)))

		items[i] = &model.SaleItem{
			SaleID:    saleID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	err := s.saleRepo.Create(ctx, &model.Sale{
		ID:            saleID,
		UserID:        userID,
		Total:         total,
		Currency:      planCurrency,
		PaymentMethod: paymentMethod,
	}, items)
	if err != nil {
		return nil, fmt.Errorf("store sale: %w", err)
	}

	return &dto.CreateSaleResponse{
		SaleID: saleID,
		Total:  total,
	}, nil
}

func (s *saleServiceImpl) SummarySince(ctx context.Context, userID string, since time.Time) (*dto.SalesSummaryResponse, error) {
	summary, err := s.saleRepo.SumSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("sum sales: %w", err)
	}

	return &dto.SalesSummaryResponse{
		Total: summary.Total,
		Count: summary.Count,
	}, nil
}
