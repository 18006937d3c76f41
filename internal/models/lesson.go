package models

import (
	"time"

	"github.com/google/uuid"
)

// Lesson is a user-authored post. Engagement counters are denormalized and
// maintained in the same transaction as the join-table rows below.
// Lessons are hard-deleted: owner delete and admin ban cascade to likes,
// favorites, comments and reports.
type Lesson struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string    `gorm:"not null;size:255;index" json:"title"`
	Description    string    `gorm:"type:text;not null" json:"description"`
	Category       string    `gorm:"size:50;index" json:"category"`
	Tone           string    `gorm:"size:30" json:"tone"`
	Privacy        string    `gorm:"size:10;default:'Public'" json:"privacy"`
	AccessLevel    string    `gorm:"size:10;default:'Free'" json:"accessLevel"`
	CreatorEmail   string    `gorm:"not null;size:255;index" json:"creatorEmail"`
	CreatorName    string    `gorm:"size:255" json:"creatorName"`
	CreatorPhoto   string    `gorm:"size:512" json:"creatorPhoto"`
	LikesCount     int       `gorm:"default:0" json:"likesCount"`
	FavoritesCount int       `gorm:"default:0" json:"favoritesCount"`
	IsFeatured     bool      `gorm:"default:false" json:"isFeatured"`
	Reviewed       bool      `gorm:"default:false" json:"reviewed"`
	CreatedAt      time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// Derived, filled by the service layer; not a column.
	IsFlagged bool `gorm:"-" json:"isFlagged"`
}

// LessonLike records set membership for the like toggle. The unique index
// is what makes the toggle a membership flip rather than an increment.
type LessonLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_lesson_likes_lesson_email" json:"lesson_id"`
	UserEmail string    `gorm:"not null;size:255;uniqueIndex:idx_lesson_likes_lesson_email" json:"user_email"`
	CreatedAt time.Time `json:"created_at"`
}

// LessonFavorite mirrors LessonLike for the favorite toggle. The two
// toggles are independent and share no state.
type LessonFavorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_lesson_favorites_lesson_email" json:"lesson_id"`
	UserEmail string    `gorm:"not null;size:255;uniqueIndex:idx_lesson_favorites_lesson_email" json:"user_email"`
	CreatedAt time.Time `json:"created_at"`
}

// LessonComment is append-only; there is no edit or delete path.
type LessonComment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID  uuid.UUID `gorm:"type:uuid;not null;index" json:"lesson_id"`
	UserEmail string    `gorm:"not null;size:255" json:"userId"`
	UserName  string    `gorm:"size:255" json:"userName"`
	UserPhoto string    `gorm:"size:512" json:"userPhoto"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"time"`
}
