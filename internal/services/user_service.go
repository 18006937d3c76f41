package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifelessonsapp/lifelessons-backend/internal/access"
	"github.com/lifelessonsapp/lifelessons-backend/internal/dto"
	"github.com/lifelessonsapp/lifelessons-backend/internal/models"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ResolveViewer turns an email (possibly empty) into the viewer access
// policy decisions run against. Role and premium status come from the
// users table, not from token claims, so a premium upgrade or a role
// change takes effect on the next request.
func (s *UserService) ResolveViewer(email string) access.Viewer {
	if email == "" {
		return access.Viewer{}
	}
	user, err := s.GetByEmail(email)
	if err != nil {
		return access.Viewer{Email: email, Role: access.RoleUser}
	}
	return access.Viewer{
		Email:     user.Email,
		Role:      access.Role(user.Role),
		IsPremium: user.IsPremium,
	}
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

func (s *UserService) UpdateRole(userID uuid.UUID, role string) error {
	if role != string(access.RoleUser) && role != string(access.RoleAdmin) {
		return errors.New("invalid role: must be user or admin")
	}
	result := s.db.Model(&models.User{}).Where("id = ?", userID).Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) SetPremium(email string, premium bool) error {
	result := s.db.Model(&models.User{}).Where("email = ?", email).Update("is_premium", premium)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserService) AdminSummary() (*dto.AdminSummary, error) {
	var summary dto.AdminSummary
	if err := s.db.Model(&models.User{}).Count(&summary.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).Where("is_premium = ?", true).Count(&summary.PremiumUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Lesson{}).Count(&summary.TotalLessons).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.LessonReport{}).Count(&summary.TotalReports).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.LessonReport{}).Distinct("lesson_id").Count(&summary.FlaggedCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Lesson{}).Where("is_featured = ?", true).Count(&summary.FeaturedCount).Error; err != nil {
		return nil, err
	}
	return &summary, nil
}

// UserSummary backs the dashboard home card for one author.
func (s *UserService) UserSummary(email string) (*dto.UserSummary, error) {
	summary := &dto.UserSummary{Email: email}
	if err := s.db.Model(&models.Lesson{}).Where("creator_email = ?", email).Count(&summary.TotalLessons).Error; err != nil {
		return nil, err
	}

	type totals struct {
		Likes     int64
		Favorites int64
	}
	var t totals
	err := s.db.Model(&models.Lesson{}).
		Select("COALESCE(SUM(likes_count),0) as likes, COALESCE(SUM(favorites_count),0) as favorites").
		Where("creator_email = ?", email).
		Scan(&t).Error
	if err != nil {
		return nil, err
	}
	summary.TotalLikes = t.Likes
	summary.TotalFavorites = t.Favorites
	return summary, nil
}

// TopContributors ranks authors by public lesson count.
func (s *UserService) TopContributors(limit int) ([]dto.Contributor, error) {
	if limit < 1 || limit > 20 {
		limit = 6
	}
	var contributors []dto.Contributor
	err := s.db.Model(&models.Lesson{}).
		Select("creator_email, creator_name, creator_photo, count(*) as lesson_count").
		Where("privacy = ?", string(access.PrivacyPublic)).
		Group("creator_email, creator_name, creator_photo").
		Order("lesson_count DESC").
		Limit(limit).
		Scan(&contributors).Error
	return contributors, err
}
