// Package viewer extracts the acting viewer from the request context. The
// session is never read ambiently by services; handlers resolve a viewer
// here and pass it down explicitly.
package viewer

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lifelessonsapp/lifelessons-backend/internal/access"
)

// FromCtx builds a viewer from JWT claims if a token is present. Without a
// token (public routes with optional auth) it returns the anonymous viewer.
// Premium status in claims can lag a just-completed upgrade; callers that
// gate content refresh it from the users table.
func FromCtx(c *fiber.Ctx) access.Viewer {
	claims, ok := claimsFromCtx(c)
	if !ok {
		return access.Viewer{}
	}

	v := access.Viewer{}
	v.Email, _ = claims["email"].(string)
	if role, ok := claims["role"].(string); ok {
		v.Role = access.Role(role)
	} else if v.Email != "" {
		v.Role = access.RoleUser
	}
	v.IsPremium, _ = claims["is_premium"].(bool)
	return v
}

// Email returns the authenticated viewer's email, or an error when the
// request carries no usable identity.
func Email(c *fiber.Ctx) (string, error) {
	claims, ok := claimsFromCtx(c)
	if !ok {
		return "", errors.New("no token in context")
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", errors.New("missing email claim")
	}
	return email, nil
}

// UserID returns the authenticated viewer's user id from the sub claim.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, ok := claimsFromCtx(c)
	if !ok {
		return uuid.Nil, errors.New("no token in context")
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}
	return uuid.Parse(sub)
}

func claimsFromCtx(c *fiber.Ctx) (jwt.MapClaims, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}
