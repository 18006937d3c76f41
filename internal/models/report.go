package models

import (
	"time"

	"github.com/google/uuid"
)

// LessonReport is a single complaint against a lesson. Reports aggregate
// per lesson into the moderation queue and are deleted together, either on
// dismiss or as the second step of a ban.
type LessonReport struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID      uuid.UUID `gorm:"type:uuid;not null;index" json:"lessonId"`
	LessonTitle   string    `gorm:"size:255" json:"title"`
	ReporterEmail string    `gorm:"not null;size:255" json:"reporterEmail"`
	Reason        string    `gorm:"not null;size:100" json:"reason"`
	CreatedAt     time.Time `json:"timestamp"`
}
