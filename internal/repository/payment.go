package repository

import (
	"context"
	"time"

	"github.com/maxierra/tienda360-api/internal/model"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	FindByExternalReference(ctx context.Context, externalReference string) (*model.Payment, error)
	MarkReconciled(ctx context.Context, externalReference, status string, gatewayPaymentID int64) error
}

type paymentRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepoImpl{
		db: db,
	}
}

func (r *paymentRepoImpl) Create(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepoImpl) FindByExternalReference(ctx context.Context, externalReference string) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Where("external_reference = ?", externalReference).
		First(&payment).
		Error

	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepoImpl) MarkReconciled(ctx context.Context, externalReference, status string, gatewayPaymentID int64) error {
	result := r.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("external_reference = ?", externalReference).
		Updates(map[string]interface{}{
			"status":             status,
			"gateway_payment_id": gatewayPaymentID,
			"updated_at":         time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
