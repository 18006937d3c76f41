package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lifelessonsapp/lifelessons-backend/internal/access"
	"github.com/lifelessonsapp/lifelessons-backend/internal/config"
	"github.com/lifelessonsapp/lifelessons-backend/internal/dto"
	"github.com/lifelessonsapp/lifelessons-backend/internal/feed"
	"github.com/lifelessonsapp/lifelessons-backend/internal/services"
	"github.com/lifelessonsapp/lifelessons-backend/internal/viewer"
)

type LessonHandler struct {
	lessonService *services.LessonService
	userService   *services.UserService
	cfg           *config.Config
}

func NewLessonHandler(lessonService *services.LessonService, userService *services.UserService, cfg *config.Config) *LessonHandler {
	return &LessonHandler{lessonService: lessonService, userService: userService, cfg: cfg}
}

// resolve builds the acting viewer with role/premium read from the users
// table, so a premium upgrade takes effect without reissuing the token.
func (h *LessonHandler) resolve(c *fiber.Ctx) access.Viewer {
	return h.userService.ResolveViewer(viewer.FromCtx(c).Email)
}

func (h *LessonHandler) Create(c *fiber.Ctx) error {
	v := h.resolve(c)
	if v.Anonymous() {
		return unauthorized(c)
	}

	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	lesson, err := h.lessonService.Create(v, &req)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(lesson)
}

func (h *LessonHandler) Update(c *fiber.Ctx) error {
	v := h.resolve(c)
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid lesson ID")
	}

	var req dto.UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	lesson, err := h.lessonService.Update(v, lessonID, &req)
	if err != nil {
		return lessonError(c, err)
	}
	return c.JSON(lesson)
}

func (h *LessonHandler) Delete(c *fiber.Ctx) error {
	v := h.resolve(c)
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid lesson ID")
	}

	if err := h.lessonService.Delete(v, lessonID); err != nil {
		return lessonError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Lesson deleted"})
}

func (h *LessonHandler) Get(c *fiber.Ctx) error {
	v := h.resolve(c)
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid lesson ID")
	}

	detail, err := h.lessonService.Get(v, lessonID)
	if err != nil {
		return lessonError(c, err)
	}
	return c.JSON(detail)
}

func (h *LessonHandler) Feed(c *fiber.Ctx) error {
	v := h.resolve(c)

	filters := feed.Filters{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Tone:     c.Query("tone"),
		Privacy:  c.Query("privacy"),
	}
	if flagged := c.Query("flagged"); flagged != "" {
		b := flagged == "true"
		filters.Flagged = &b
	}

	sortBy := feed.Sort(c.Query("sort", string(feed.SortNewest)))
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", h.cfg.FeedPageSize)
	if pageSize < 1 || pageSize > 50 {
		pageSize = h.cfg.FeedPageSize
	}

	result, err := h.lessonService.Feed(v, filters, sortBy, page, pageSize)
	if err != nil {
		return internalError(c, "Failed to fetch lessons")
	}
	return c.JSON(result)
}

func (h *LessonHandler) Related(c *fiber.Ctx) error {
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid lesson ID")
	}

	lessons, err := h.lessonService.Related(lessonID, c.QueryInt("limit", 6))
	if err != nil {
		return lessonError(c, err)
	}
	return c.JSON(lessons)
}

func (h *LessonHandler) MyLessons(c *fiber.Ctx) error {
	email, err := viewer.Email(c)
	if err != nil {
		return unauthorized(c)
	}
	lessons, err := h.lessonService.MyLessons(email)
	if err != nil {
		return internalError(c, "Failed to fetch lessons")
	}
	return c.JSON(lessons)
}

func (h *LessonHandler) MyFavorites(c *fiber.Ctx) error {
	email, err := viewer.Email(c)
	if err != nil {
		return unauthorized(c)
	}
	lessons, err := h.lessonService.MyFavorites(email)
	if err != nil {
		return internalError(c, "Failed to fetch favorites")
	}
	return c.JSON(lessons)
}

func (h *LessonHandler) ToggleLike(c *fiber.Ctx) error {
	return h.toggle(c, h.lessonService.ToggleLike)
}

func (h *LessonHandler) ToggleFavorite(c *fiber.Ctx) error {
	return h.toggle(c, h.lessonService.ToggleFavorite)
}

func (h *LessonHandler) toggle(c *fiber.Ctx, flip func(uuid.UUID, string) (bool, int, error)) error {
	email, err := viewer.Email(c)
	if err != nil {
		return unauthorized(c)
	}
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid lesson ID")
	}

	toggled, count, err := flip(lessonID, email)
	if err != nil {
		return lessonError(c, err)
	}
	return c.JSON(dto.ToggleResponse{Toggled: toggled, Count: count})
}

func (h *LessonHandler) AddComment(c *fiber.Ctx) error {
	v := h.resolve(c)
	lessonID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid lesson ID")
	}

	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	comment, err := h.lessonService.AddComment(v, lessonID, req.Text)
	if err != nil {
		return lessonError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *LessonHandler) Featured(c *fiber.Ctx) error {
	lessons, err := h.lessonService.Featured(c.QueryInt("limit", 6))
	if err != nil {
		return internalError(c, "Failed to fetch featured lessons")
	}
	return c.JSON(lessons)
}

func (h *LessonHandler) MostSaved(c *fiber.Ctx) error {
	lessons, err := h.lessonService.MostSaved(c.QueryInt("limit", 6))
	if err != nil {
		return internalError(c, "Failed to fetch most saved lessons")
	}
	return c.JSON(lessons)
}

// lessonError maps service sentinels to HTTP statuses; everything else is
// treated as a validation failure to avoid leaking internals.
func lessonError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrLessonNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Lesson not found",
		})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Not allowed",
		})
	case errors.Is(err, services.ErrPremiumRequired):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "premium_required",
		})
	case errors.Is(err, services.ErrUnauthenticated):
		return unauthorized(c)
	default:
		return badRequest(c, err.Error())
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: msg})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
}

func internalError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: msg})
}
