package middleware

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const localAdminID = "admin_id"

// GetUserID extracts the numeric user id from the JWT sub claim. Issuers
// encode it either as a string or as a JSON number.
func GetUserID(c *fiber.Ctx) (int64, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return 0, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}

	switch sub := claims["sub"].(type) {
	case string:
		id, err := strconv.ParseInt(sub, 10, 64)
		if err != nil || id <= 0 {
			return 0, errors.New("malformed sub claim")
		}
		return id, nil
	case float64:
		if sub <= 0 || sub != float64(int64(sub)) {
			return 0, errors.New("malformed sub claim")
		}
		return int64(sub), nil
	default:
		return 0, errors.New("missing sub claim")
	}
}

// GetAdminID returns the acting admin set by AdminToken or AdminRequired.
func GetAdminID(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(localAdminID).(int64)
	return id, ok
}
