package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/maxierra/tienda360-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.Subscription, error)
	Upsert(ctx context.Context, sub *model.Subscription) error
}

type subscriptionRepoImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepoImpl{
		db: db,
	}
}

func (r *subscriptionRepoImpl) GetByUserID(ctx context.Context, userID string) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&sub).
		Error

	if err != nil {
		return nil, err
	}

	return &sub, nil
}

// Upsert keys on user_id: one subscription row per user, overwritten by each
// webhook-confirmed payment event.
func (r *subscriptionRepoImpl) Upsert(ctx context.Context, sub *model.Subscription) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"plan", "status", "payment_id", "updated_at",
		}),
	}).Create(sub).Error
}
