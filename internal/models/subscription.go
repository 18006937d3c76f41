package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription mirrors the checkout provider's state for one user. The
// user's IsPremium flag is derived from it on every webhook event.
type Subscription struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	UserEmail          string    `gorm:"not null;size:255;index" json:"user_email"`
	CheckoutSessionID  string    `gorm:"index;size:255" json:"checkout_session_id"`
	ProductID          string    `gorm:"size:255" json:"product_id"`
	Status             string    `gorm:"not null;default:'inactive';size:50" json:"status"`
	CurrentPeriodStart time.Time `json:"current_period_start"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	User               User      `gorm:"foreignKey:UserID" json:"-"`
}
