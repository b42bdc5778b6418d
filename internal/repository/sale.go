package repository

import (
	"context"
	"time"

	"github.com/maxierra/tienda360-api/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SalesSummary struct {
	Total decimal.Decimal
	Count int64
}

type SaleRepository interface {
	Create(ctx context.Context, sale *model.Sale, items []*model.SaleItem) error
	SumSince(ctx context.Context, userID string, since time.Time) (*SalesSummary, error)
}

type saleRepoImpl struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepoImpl{
		db: db,
	}
}

func (r *saleRepoImpl) Create(ctx context.Context, sale *model.Sale, items []*model.SaleItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (r *saleRepoImpl) SumSince(ctx context.Context, userID string, since time.Time) (*SalesSummary, error) {
	var row struct {
		Total decimal.Decimal
		Count int64
	}

	err := r.db.WithContext(ctx).
		Model(&model.Sale{}).
		Select("COALESCE(SUM(total), 0) AS total, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Where("created_at >= ?", since).
		Scan(&row).Error

	if err != nil {
		return nil, err
	}

	return &SalesSummary{Total: row.Total, Count: row.Count}, nil
}
