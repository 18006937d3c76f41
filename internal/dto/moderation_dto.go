package dto

import (
	"github.com/google/uuid"

	"github.com/lifelessonsapp/lifelessons-backend/internal/models"
)

type CreateReportRequest struct {
	Reason string `json:"reason"`
}

// ReportSummary aggregates all reports against one lesson into a single
// moderation queue entry. ReportCount always equals len(Reports).
type ReportSummary struct {
	LessonID    uuid.UUID             `json:"lessonId"`
	Title       string                `json:"title"`
	ReportCount int                   `json:"reportCount"`
	Severity    string                `json:"severity"`
	Reports     []models.LessonReport `json:"reports"`
}

type SetFeaturedRequest struct {
	IsFeatured bool `json:"isFeatured"`
}

type SetReviewedRequest struct {
	Reviewed bool `json:"reviewed"`
}
