package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lifelessonsapp/lifelessons-backend/internal/dto"
	"github.com/lifelessonsapp/lifelessons-backend/internal/services"
	"github.com/lifelessonsapp/lifelessons-backend/internal/viewer"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile exposes the public slice of a user record.
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	user, err := h.userService.GetByEmail(c.Params("email"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return internalError(c, "Failed to fetch user")
	}

	summary, err := h.userService.UserSummary(user.Email)
	if err != nil {
		return internalError(c, "Failed to fetch user")
	}

	return c.JSON(fiber.Map{
		"email":        user.Email,
		"displayName":  user.DisplayName,
		"photoURL":     user.PhotoURL,
		"isPremium":    user.IsPremium,
		"totalLessons": summary.TotalLessons,
	})
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userService.List()
	if err != nil {
		return internalError(c, "Failed to fetch users")
	}
	return c.JSON(users)
}

func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.userService.UpdateRole(userID, req.Role); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return badRequest(c, err.Error())
	}
	return c.JSON(fiber.Map{"message": "Role updated", "role": req.Role})
}

func (h *UserHandler) AdminSummary(c *fiber.Ctx) error {
	summary, err := h.userService.AdminSummary()
	if err != nil {
		return internalError(c, "Failed to fetch summary")
	}
	return c.JSON(summary)
}

// MySummary is the dashboard card for the authenticated viewer.
func (h *UserHandler) MySummary(c *fiber.Ctx) error {
	email, err := viewer.Email(c)
	if err != nil {
		return unauthorized(c)
	}
	summary, err := h.userService.UserSummary(email)
	if err != nil {
		return internalError(c, "Failed to fetch summary")
	}
	return c.JSON(summary)
}

func (h *UserHandler) TopContributors(c *fiber.Ctx) error {
	contributors, err := h.userService.TopContributors(c.QueryInt("limit", 6))
	if err != nil {
		return internalError(c, "Failed to fetch contributors")
	}
	return c.JSON(contributors)
}
