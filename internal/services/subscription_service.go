package services

import (
	"fmt"
	"strings"

	"github.com/carewatch/backend/internal/logger"
	"github.com/carewatch/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionService is the registry of push delivery targets. Endpoints act
// as the primary key: subscribing twice with the same endpoint refreshes the
// stored keys instead of creating a duplicate.
type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

// Upsert registers or refreshes a subscription. When ownerCode is set, the
// matching professional's push reference is updated as well; an unknown code
// is logged but does not fail the registration.
func (s *SubscriptionService) Upsert(endpoint, p256dh, auth string, ownerCode *string) error {
	if strings.TrimSpace(endpoint) == "" {
		return &ValidationError{Message: "endpoint is required"}
	}

	sub := models.Subscription{
		Endpoint:  endpoint,
		P256dh:    p256dh,
		Auth:      auth,
		OwnerCode: ownerCode,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{"p256dh", "auth", "owner_code", "updated_at"}),
	}).Create(&sub).Error
	if err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}

	if ownerCode != nil && *ownerCode != "" {
		result := s.db.Model(&models.Professional{}).
			Where("code = ?", *ownerCode).
			Update("push_endpoint", endpoint)
		if result.Error != nil {
			return fmt.Errorf("failed to link subscription to professional: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			logger.Warn("Subscription owner code does not match any professional", map[string]interface{}{
				"owner_code": *ownerCode,
			})
		}
	}
	return nil
}

// Remove deletes a subscription by endpoint. Removing an unknown endpoint is
// a no-op. Any professional still pointing at the endpoint is unlinked.
func (s *SubscriptionService) Remove(endpoint string) error {
	if err := s.db.Where("endpoint = ?", endpoint).Delete(&models.Subscription{}).Error; err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if err := s.db.Model(&models.Professional{}).
		Where("push_endpoint = ?", endpoint).
		Update("push_endpoint", nil).Error; err != nil {
		return fmt.Errorf("failed to unlink professional: %w", err)
	}
	return nil
}

// All returns every registered subscription.
func (s *SubscriptionService) All() ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := s.db.Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	return subs, nil
}
