package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifelessonsapp/lifelessons-backend/internal/dto"
	"github.com/lifelessonsapp/lifelessons-backend/internal/models"
)

// SubscriptionService consumes checkout-provider webhook events and keeps
// users.is_premium in sync with the subscription record. Creating the
// checkout session happens on the provider side.
type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

func (s *SubscriptionService) HandleWebhookEvent(event *dto.CheckoutEvent) error {
	switch event.Type {
	case "checkout.completed":
		return s.handleCompleted(event)
	case "renewal":
		return s.handleRenewal(event)
	case "cancellation":
		return s.handleCancellation(event)
	case "expiration":
		return s.handleExpiration(event)
	default:
		// Unknown event types are acknowledged and dropped.
		return nil
	}
}

func (s *SubscriptionService) handleCompleted(event *dto.CheckoutEvent) error {
	var user models.User
	if err := s.db.Where("email = ?", event.CustomerEmail).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		sub := models.Subscription{
			ID:                 uuid.New(),
			UserID:             user.ID,
			UserEmail:          user.Email,
			CheckoutSessionID:  event.SessionID,
			ProductID:          event.ProductID,
			Status:             "active",
			CurrentPeriodStart: msToTime(event.PurchasedAtMs),
			CurrentPeriodEnd:   msToTime(event.ExpirationAtMs),
		}
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", user.ID).Update("is_premium", true).Error
	})
}

func (s *SubscriptionService) handleRenewal(event *dto.CheckoutEvent) error {
	var sub models.Subscription
	if err := s.db.Where("user_email = ?", event.CustomerEmail).Order("created_at DESC").First(&sub).Error; err != nil {
		return errors.New("subscription not found for renewal")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&sub).Updates(map[string]interface{}{
			"status":               "active",
			"current_period_start": msToTime(event.PurchasedAtMs),
			"current_period_end":   msToTime(event.ExpirationAtMs),
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("email = ?", event.CustomerEmail).Update("is_premium", true).Error
	})
}

// Cancellation keeps the entitlement until the paid period ends; only
// expiration removes it.
func (s *SubscriptionService) handleCancellation(event *dto.CheckoutEvent) error {
	return s.db.Model(&models.Subscription{}).
		Where("user_email = ?", event.CustomerEmail).
		Update("status", "cancelled").Error
}

func (s *SubscriptionService) handleExpiration(event *dto.CheckoutEvent) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Subscription{}).
			Where("user_email = ?", event.CustomerEmail).
			Update("status", "expired").Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("email = ?", event.CustomerEmail).Update("is_premium", false).Error
	})
}

func msToTime(ms int64) time.Time {
	return time.Unix(ms/1000, (ms%1000)*int64(time.Millisecond))
}
