package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lifelessonsapp/lifelessons-backend/internal/dto"
	"github.com/lifelessonsapp/lifelessons-backend/internal/services"
	"github.com/lifelessonsapp/lifelessons-backend/internal/viewer"
)

type ModerationHandler struct {
	moderationService *services.ModerationService
}

func NewModerationHandler(moderationService *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

func (h *ModerationHandler) CreateReport(c *fiber.Ctx) error {
	email, err := viewer.Email(c)
	if err != nil {
		return unauthorized(c)
	}
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid lesson ID")
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, err := h.moderationService.CreateReport(lessonID, email, &req)
	if err != nil {
		return lessonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ModerationHandler) ListReported(c *fiber.Ctx) error {
	summaries, err := h.moderationService.ListReported()
	if err != nil {
		return internalError(c, "Failed to fetch reported lessons")
	}
	return c.JSON(summaries)
}

func (h *ModerationHandler) DismissReports(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("lessonId"))
	if err != nil {
		return badRequest(c, "Invalid lesson ID")
	}

	if err := h.moderationService.DismissReports(lessonID); err != nil {
		return internalError(c, "Failed to dismiss reports")
	}
	return c.JSON(fiber.Map{"message": "Reports dismissed"})
}

// BanLesson reports partial failure distinctly: the lesson is gone but its
// reports were not cleaned up, so the client must not treat it as a plain
// error and retry the delete.
func (h *ModerationHandler) BanLesson(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid lesson ID")
	}

	if err := h.moderationService.BanLesson(lessonID); err != nil {
		if errors.Is(err, services.ErrPartialFailure) {
			return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{
				"message": "Lesson deleted but report cleanup failed",
				"partial": true,
			})
		}
		return lessonError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Lesson banned"})
}

func (h *ModerationHandler) SetFeatured(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid lesson ID")
	}

	var req dto.SetFeaturedRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.moderationService.SetFeatured(lessonID, req.IsFeatured); err != nil {
		return lessonError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Lesson updated", "isFeatured": req.IsFeatured})
}

func (h *ModerationHandler) SetReviewed(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid lesson ID")
	}

	var req dto.SetReviewedRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.moderationService.SetReviewed(lessonID, req.Reviewed); err != nil {
		return lessonError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Lesson updated", "reviewed": req.Reviewed})
}
