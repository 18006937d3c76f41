package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is identified by email across the platform; likes, favorites and
// lesson ownership all key on it.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	DisplayName string         `gorm:"size:255" json:"displayName"`
	PhotoURL    string         `gorm:"size:512" json:"photoURL"`
	Role        string         `gorm:"size:20;default:'user'" json:"role"`
	IsPremium   bool           `gorm:"default:false" json:"isPremium"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
