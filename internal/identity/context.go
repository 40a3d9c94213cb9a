// Package identity resolves the authenticated user carried by a request.
package identity

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	localToken  = "user"
	localUserID = "user_id"
)

// FromToken extracts the numeric user id from the JWT placed in context by
// the auth middleware.
func FromToken(c *fiber.Ctx) (uint, error) {
	token, ok := c.Locals(localToken).(*jwt.Token)
	if !ok {
		return 0, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, errors.New("missing sub claim")
	}

	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("malformed sub claim")
	}
	return uint(id), nil
}

// Email returns the email claim of the request's token, if any.
func Email(c *fiber.Ctx) string {
	token, ok := c.Locals(localToken).(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	email, _ := claims["email"].(string)
	return email
}

func SetUserID(c *fiber.Ctx, id uint) {
	c.Locals(localUserID, id)
}

// UserID returns the authenticated user id, or 0 for anonymous requests.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals(localUserID).(uint)
	return id
}
