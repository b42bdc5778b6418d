package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maxierra/tienda360-api/internal/dto"
	"github.com/maxierra/tienda360-api/internal/repository"
	"gorm.io/gorm"
)

type SubscriptionService interface {
	GetByUserID(ctx context.Context, userID string) (*dto.SubscriptionResponse, error)
}

type subscriptionServiceImpl struct {
	subscriptionRepo repository.SubscriptionRepository
}

func NewSubscriptionService(subscriptionRepo repository.SubscriptionRepository) SubscriptionService {
	return &subscriptionServiceImpl{
		subscriptionRepo: subscriptionRepo,
	}
}

func (s *subscriptionServiceImpl) GetByUserID(ctx context.Context, userID string) (*dto.SubscriptionResponse, error) {
	sub, err := s.subscriptionRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("get subscription for user %s: %w", userID, err)
	}

	return &dto.SubscriptionResponse{
		ID:        sub.ID,
		UserID:    sub.UserID,
		Plan:      sub.Plan,
		Status:    sub.Status,
		CreatedAt: sub.CreatedAt.Format(time.RFC3339),
	}, nil
}
