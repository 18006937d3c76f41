package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifelessonsapp/lifelessons-backend/internal/access"
	"github.com/lifelessonsapp/lifelessons-backend/internal/dto"
	"github.com/lifelessonsapp/lifelessons-backend/internal/feed"
	"github.com/lifelessonsapp/lifelessons-backend/internal/models"
)

var (
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrForbidden       = errors.New("not allowed")
	ErrPremiumRequired = errors.New("premium subscription required")
	ErrUnauthenticated = errors.New("authentication required")
)

type LessonService struct {
	db *gorm.DB
}

func NewLessonService(db *gorm.DB) *LessonService {
	return &LessonService{db: db}
}

// LessonDetail is a lesson as seen by one viewer: comments newest-first
// plus the viewer's own membership in the like/favorite sets.
type LessonDetail struct {
	models.Lesson
	Comments  []models.LessonComment `json:"comments"`
	Liked     bool                   `json:"liked"`
	Favorited bool                   `json:"favorited"`
	Verdict   access.Verdict         `json:"verdict"`
}

func (s *LessonService) Create(v access.Viewer, req *dto.CreateLessonRequest) (*models.Lesson, error) {
	if v.Anonymous() {
		return nil, ErrUnauthenticated
	}
	if len(strings.TrimSpace(req.Title)) < 3 {
		return nil, errors.New("title must be at least 3 characters")
	}
	if len(req.Description) < 10 {
		return nil, errors.New("description must be at least 10 characters")
	}
	if !access.Category(req.Category).Valid() {
		return nil, errors.New("invalid category")
	}
	if !access.Tone(req.Tone).Valid() {
		return nil, errors.New("invalid tone")
	}
	privacy := req.Privacy
	if privacy == "" {
		privacy = string(access.PrivacyPublic)
	}
	if !access.Privacy(privacy).Valid() {
		return nil, errors.New("invalid privacy")
	}
	level := req.AccessLevel
	if level == "" {
		level = string(access.AccessFree)
	}
	if !access.AccessLevel(level).Valid() {
		return nil, errors.New("invalid access level")
	}

	lesson := &models.Lesson{
		ID:           uuid.New(),
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Category:     req.Category,
		Tone:         req.Tone,
		Privacy:      privacy,
		AccessLevel:  level,
		CreatorEmail: v.Email,
	}

	// Snapshot the author's profile onto the card.
	var creator models.User
	if err := s.db.Where("email = ?", v.Email).First(&creator).Error; err == nil {
		lesson.CreatorName = creator.DisplayName
		lesson.CreatorPhoto = creator.PhotoURL
	}

	if err := s.db.Create(lesson).Error; err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}
	return lesson, nil
}

func (s *LessonService) Update(v access.Viewer, lessonID uuid.UUID, req *dto.UpdateLessonRequest) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := s.db.First(&lesson, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}
	if lesson.CreatorEmail != v.Email && !v.Admin() {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if len(strings.TrimSpace(*req.Title)) < 3 {
			return nil, errors.New("title must be at least 3 characters")
		}
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		if len(*req.Description) < 10 {
			return nil, errors.New("description must be at least 10 characters")
		}
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		if !access.Category(*req.Category).Valid() {
			return nil, errors.New("invalid category")
		}
		updates["category"] = *req.Category
	}
	if req.Tone != nil {
		if !access.Tone(*req.Tone).Valid() {
			return nil, errors.New("invalid tone")
		}
		updates["tone"] = *req.Tone
	}
	if req.Privacy != nil {
		if !access.Privacy(*req.Privacy).Valid() {
			return nil, errors.New("invalid privacy")
		}
		updates["privacy"] = *req.Privacy
	}
	if req.AccessLevel != nil {
		if !access.AccessLevel(*req.AccessLevel).Valid() {
			return nil, errors.New("invalid access level")
		}
		updates["access_level"] = *req.AccessLevel
	}
	if len(updates) == 0 {
		return &lesson, nil
	}

	if err := s.db.Model(&lesson).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

// Delete is the single unified delete path: owner or admin, hard delete,
// cascading to likes, favorites, comments and reports in one transaction.
func (s *LessonService) Delete(v access.Viewer, lessonID uuid.UUID) error {
	var lesson models.Lesson
	if err := s.db.First(&lesson, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLessonNotFound
		}
		return err
	}
	if lesson.CreatorEmail != v.Email && !v.Admin() {
		return ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", lessonID).Delete(&models.LessonLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", lessonID).Delete(&models.LessonFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", lessonID).Delete(&models.LessonComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", lessonID).Delete(&models.LessonReport{}).Error; err != nil {
			return err
		}
		return tx.Delete(&lesson).Error
	})
}

// Get enforces the access verdict: private lessons return not-found to
// non-owner non-admins (existence must not leak), locked premium lessons
// refuse the detail view.
func (s *LessonService) Get(v access.Viewer, lessonID uuid.UUID) (*LessonDetail, error) {
	var lesson models.Lesson
	if err := s.db.First(&lesson, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}

	verdict := access.Evaluate(v, access.Resource{
		CreatorEmail: lesson.CreatorEmail,
		Privacy:      access.Privacy(lesson.Privacy),
		AccessLevel:  access.AccessLevel(lesson.AccessLevel),
	})
	if !verdict.Visible {
		return nil, ErrLessonNotFound
	}
	if verdict.Locked {
		return nil, ErrPremiumRequired
	}

	detail := &LessonDetail{Lesson: lesson, Verdict: verdict}
	if err := s.db.Where("lesson_id = ?", lessonID).Order("created_at DESC").Find(&detail.Comments).Error; err != nil {
		return nil, err
	}

	if !v.Anonymous() {
		var n int64
		s.db.Model(&models.LessonLike{}).Where("lesson_id = ? AND user_email = ?", lessonID, v.Email).Count(&n)
		detail.Liked = n > 0
		s.db.Model(&models.LessonFavorite{}).Where("lesson_id = ? AND user_email = ?", lessonID, v.Email).Count(&n)
		detail.Favorited = n > 0
	}
	return detail, nil
}

// Feed fetches the lesson collection and hands it to the pure composer.
// The composer drops private lessons the viewer may not see and annotates
// the rest with verdicts.
func (s *LessonService) Feed(v access.Viewer, f feed.Filters, sort feed.Sort, page, pageSize int) (feed.Page, error) {
	var lessons []models.Lesson
	if err := s.db.Find(&lessons).Error; err != nil {
		return feed.Page{}, err
	}

	flagged, err := s.flaggedLessonIDs()
	if err != nil {
		return feed.Page{}, err
	}
	for i := range lessons {
		lessons[i].IsFlagged = flagged[lessons[i].ID]
	}

	return feed.Compose(lessons, v, f, sort, page, pageSize), nil
}

func (s *LessonService) flaggedLessonIDs() (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	if err := s.db.Model(&models.LessonReport{}).Distinct("lesson_id").Pluck("lesson_id", &ids).Error; err != nil {
		return nil, err
	}
	flagged := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		flagged[id] = true
	}
	return flagged, nil
}

// Related returns public lessons in the same category, newest first.
func (s *LessonService) Related(lessonID uuid.UUID, limit int) ([]models.Lesson, error) {
	var lesson models.Lesson
	if err := s.db.First(&lesson, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}

	if limit < 1 || limit > 20 {
		limit = 6
	}
	var related []models.Lesson
	err := s.db.Where("category = ? AND privacy = ? AND id <> ?",
		lesson.Category, string(access.PrivacyPublic), lessonID).
		Order("created_at DESC").
		Limit(limit).
		Find(&related).Error
	return related, err
}

func (s *LessonService) MyLessons(email string) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := s.db.Where("creator_email = ?", email).Order("created_at DESC").Find(&lessons).Error
	return lessons, err
}

func (s *LessonService) MyFavorites(email string) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := s.db.
		Joins("JOIN lesson_favorites ON lesson_favorites.lesson_id = lessons.id").
		Where("lesson_favorites.user_email = ?", email).
		Order("lesson_favorites.created_at DESC").
		Find(&lessons).Error
	return lessons, err
}

// ToggleLike flips the viewer's membership in the like set and adjusts the
// counter in the same transaction. Calling it twice restores the original
// state; it never increments blindly, so client retries cannot
// double-count.
func (s *LessonService) ToggleLike(lessonID uuid.UUID, userEmail string) (bool, int, error) {
	return s.toggle(lessonID, userEmail, "likes_count",
		func(tx *gorm.DB) *gorm.DB {
			return tx.Model(&models.LessonLike{})
		},
		func(tx *gorm.DB) error {
			return tx.Create(&models.LessonLike{ID: uuid.New(), LessonID: lessonID, UserEmail: userEmail}).Error
		},
		func(tx *gorm.DB) error {
			return tx.Where("lesson_id = ? AND user_email = ?", lessonID, userEmail).Delete(&models.LessonLike{}).Error
		})
}

// ToggleFavorite mirrors ToggleLike over the favorite set. The two sets
// share no state.
func (s *LessonService) ToggleFavorite(lessonID uuid.UUID, userEmail string) (bool, int, error) {
	return s.toggle(lessonID, userEmail, "favorites_count",
		func(tx *gorm.DB) *gorm.DB {
			return tx.Model(&models.LessonFavorite{})
		},
		func(tx *gorm.DB) error {
			return tx.Create(&models.LessonFavorite{ID: uuid.New(), LessonID: lessonID, UserEmail: userEmail}).Error
		},
		func(tx *gorm.DB) error {
			return tx.Where("lesson_id = ? AND user_email = ?", lessonID, userEmail).Delete(&models.LessonFavorite{}).Error
		})
}

func (s *LessonService) toggle(lessonID uuid.UUID, userEmail, counterCol string,
	model func(tx *gorm.DB) *gorm.DB,
	insert func(tx *gorm.DB) error,
	remove func(tx *gorm.DB) error,
) (bool, int, error) {
	if userEmail == "" {
		return false, 0, ErrUnauthenticated
	}

	var member bool
	var count int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var lesson models.Lesson
		if err := tx.First(&lesson, "id = ?", lessonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLessonNotFound
			}
			return err
		}

		var existing int64
		if err := model(tx).Where("lesson_id = ? AND user_email = ?", lessonID, userEmail).Count(&existing).Error; err != nil {
			return err
		}

		if existing > 0 {
			if err := remove(tx); err != nil {
				return err
			}
			if err := tx.Model(&models.Lesson{}).Where("id = ?", lessonID).
				Update(counterCol, gorm.Expr(counterCol+" - 1")).Error; err != nil {
				return err
			}
			member = false
		} else {
			if err := insert(tx); err != nil {
				return err
			}
			if err := tx.Model(&models.Lesson{}).Where("id = ?", lessonID).
				Update(counterCol, gorm.Expr(counterCol+" + 1")).Error; err != nil {
				return err
			}
			member = true
		}

		var updated models.Lesson
		if err := tx.First(&updated, "id = ?", lessonID).Error; err != nil {
			return err
		}
		if counterCol == "likes_count" {
			count = updated.LikesCount
		} else {
			count = updated.FavoritesCount
		}
		return nil
	})
	return member, count, err
}

// AddComment appends a comment; comments are never edited or deleted.
func (s *LessonService) AddComment(v access.Viewer, lessonID uuid.UUID, text string) (*models.LessonComment, error) {
	if v.Anonymous() {
		return nil, ErrUnauthenticated
	}
	text = strings.TrimSpace(text)
	if len(text) < 1 || len(text) > 500 {
		return nil, errors.New("comment must be 1-500 characters")
	}

	var lesson models.Lesson
	if err := s.db.First(&lesson, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}
	verdict := access.Evaluate(v, access.Resource{
		CreatorEmail: lesson.CreatorEmail,
		Privacy:      access.Privacy(lesson.Privacy),
		AccessLevel:  access.AccessLevel(lesson.AccessLevel),
	})
	if !verdict.Visible {
		return nil, ErrLessonNotFound
	}
	if verdict.Locked {
		return nil, ErrPremiumRequired
	}

	comment := &models.LessonComment{
		ID:        uuid.New(),
		LessonID:  lessonID,
		UserEmail: v.Email,
		Text:      text,
	}
	var author models.User
	if err := s.db.Where("email = ?", v.Email).First(&author).Error; err == nil {
		comment.UserName = author.DisplayName
		comment.UserPhoto = author.PhotoURL
	}

	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Featured backs the home page rail of admin-curated lessons.
func (s *LessonService) Featured(limit int) ([]models.Lesson, error) {
	if limit < 1 || limit > 20 {
		limit = 6
	}
	var lessons []models.Lesson
	err := s.db.Where("is_featured = ? AND privacy = ?", true, string(access.PrivacyPublic)).
		Order("created_at DESC").
		Limit(limit).
		Find(&lessons).Error
	return lessons, err
}

// MostSaved backs the home page rail of most-favorited lessons; ties break
// newest-first for a stable order.
func (s *LessonService) MostSaved(limit int) ([]models.Lesson, error) {
	if limit < 1 || limit > 20 {
		limit = 6
	}
	var lessons []models.Lesson
	err := s.db.Where("privacy = ?", string(access.PrivacyPublic)).
		Order("favorites_count DESC, created_at DESC").
		Limit(limit).
		Find(&lessons).Error
	return lessons, err
}
