package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lifelessonsapp/lifelessons-backend/internal/dto"
	"github.com/lifelessonsapp/lifelessons-backend/internal/models"
)

// ErrPartialFailure reports a ban that deleted the lesson but failed to
// clean up its reports. Operators must reconcile; it is distinct from a
// total failure, where nothing was deleted.
var ErrPartialFailure = errors.New("lesson deleted but report cleanup failed")

const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// DefaultCriticalThreshold: more than this many reports classifies a queue
// entry as critical.
const DefaultCriticalThreshold = 5

// ReportReasons is the closed list a reporter picks from.
var ReportReasons = []string{
	"inappropriate", "hate", "spam", "misinformation", "other",
}

type ModerationService struct {
	db                *gorm.DB
	criticalThreshold int
}

func NewModerationService(db *gorm.DB, criticalThreshold int) *ModerationService {
	if criticalThreshold <= 0 {
		criticalThreshold = DefaultCriticalThreshold
	}
	return &ModerationService{db: db, criticalThreshold: criticalThreshold}
}

// ClassifySeverity is the one place the report threshold is applied.
func (s *ModerationService) ClassifySeverity(reportCount int) string {
	if reportCount > s.criticalThreshold {
		return SeverityCritical
	}
	return SeverityWarning
}

func (s *ModerationService) CreateReport(lessonID uuid.UUID, reporterEmail string, req *dto.CreateReportRequest) (*models.LessonReport, error) {
	if reporterEmail == "" {
		return nil, ErrUnauthenticated
	}
	if !validReason(req.Reason) {
		return nil, errors.New("invalid report reason")
	}

	var lesson models.Lesson
	if err := s.db.First(&lesson, "id = ?", lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}

	report := &models.LessonReport{
		ID:            uuid.New(),
		LessonID:      lessonID,
		LessonTitle:   lesson.Title,
		ReporterEmail: reporterEmail,
		Reason:        req.Reason,
	}
	if err := s.db.Create(report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return report, nil
}

// ListReported aggregates reports into the moderation queue, most-reported
// first. Individual reports within an entry are newest-first.
func (s *ModerationService) ListReported() ([]dto.ReportSummary, error) {
	var reports []models.LessonReport
	if err := s.db.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}

	byLesson := make(map[uuid.UUID]*dto.ReportSummary)
	var order []uuid.UUID
	for _, r := range reports {
		entry, ok := byLesson[r.LessonID]
		if !ok {
			entry = &dto.ReportSummary{LessonID: r.LessonID, Title: r.LessonTitle}
			byLesson[r.LessonID] = entry
			order = append(order, r.LessonID)
		}
		entry.Reports = append(entry.Reports, r)
		entry.ReportCount = len(entry.Reports)
	}

	summaries := make([]dto.ReportSummary, 0, len(order))
	for _, id := range order {
		entry := byLesson[id]
		entry.Severity = s.ClassifySeverity(entry.ReportCount)
		summaries = append(summaries, *entry)
	}

	// Most-reported lessons surface first in the queue.
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].ReportCount > summaries[j].ReportCount
	})
	return summaries, nil
}

// DismissReports deletes every report for a lesson and leaves the lesson
// untouched. Dismissing a lesson with no reports is a no-op success.
func (s *ModerationService) DismissReports(lessonID uuid.UUID) error {
	return s.db.Where("lesson_id = ?", lessonID).Delete(&models.LessonReport{}).Error
}

// BanLesson deletes the lesson (with its engagement rows) and then its
// reports, in that order. If the lesson is gone but report cleanup fails,
// the caller gets ErrPartialFailure rather than a false success.
func (s *ModerationService) BanLesson(lessonID uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var lesson models.Lesson
		if err := tx.First(&lesson, "id = ?", lessonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLessonNotFound
			}
			return err
		}
		if err := tx.Where("lesson_id = ?", lessonID).Delete(&models.LessonLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", lessonID).Delete(&models.LessonFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", lessonID).Delete(&models.LessonComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&lesson).Error
	})
	if err != nil {
		return err
	}

	if err := s.DismissReports(lessonID); err != nil {
		return fmt.Errorf("%w: %v", ErrPartialFailure, err)
	}
	return nil
}

// SetFeatured is an idempotent flag setter; repeating the same value is a
// no-op.
func (s *ModerationService) SetFeatured(lessonID uuid.UUID, featured bool) error {
	return s.setFlag(lessonID, "is_featured", featured)
}

// SetReviewed marks a lesson as reviewed (or clears the mark). Reviewed,
// featured and reported are orthogonal: a reviewed lesson can be reported
// again.
func (s *ModerationService) SetReviewed(lessonID uuid.UUID, reviewed bool) error {
	return s.setFlag(lessonID, "reviewed", reviewed)
}

func (s *ModerationService) setFlag(lessonID uuid.UUID, column string, value bool) error {
	result := s.db.Model(&models.Lesson{}).Where("id = ?", lessonID).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLessonNotFound
	}
	return nil
}

func validReason(reason string) bool {
	for _, r := range ReportReasons {
		if r == reason {
			return true
		}
	}
	return false
}
