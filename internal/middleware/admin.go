package middleware

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// AdminLookup reports whether a user holds the admin role.
type AdminLookup interface {
	IsAdmin(ctx context.Context, id int64) (bool, error)
}

// AdminToken lets operator tooling act as an admin with the shared
// X-Admin-Token header. The acting admin id comes from X-Admin-ID so
// resolutions stay attributable.
func AdminToken(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.AdminToken == "" {
			return c.Next()
		}
		given := c.Get("X-Admin-Token")
		if given == "" || subtle.ConstantTimeCompare([]byte(given), []byte(cfg.AdminToken)) != 1 {
			return c.Next()
		}

		id, err := strconv.ParseInt(c.Get("X-Admin-ID"), 10, 64)
		if err != nil || id <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "X-Admin-ID header required with admin token",
			})
		}
		c.Locals(localAdminID, id)
		return c.Next()
	}
}

// AdminRequired admits requests whose JWT subject is listed in
// ADMIN_USER_IDS or has the admin role in the database.
func AdminRequired(users AdminLookup, cfg *config.Config) fiber.Handler {
	adminUserIDs := parseIDs(cfg.AdminUserIDs)

	return func(c *fiber.Ctx) error {
		if _, ok := GetAdminID(c); ok {
			return c.Next()
		}

		userID, err := GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if _, ok := adminUserIDs[userID]; ok {
			c.Locals(localAdminID, userID)
			return c.Next()
		}

		isAdmin, err := users.IsAdmin(c.UserContext(), userID)
		if err != nil {
			slog.Error("admin lookup failed", "user_id", userID, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
		if isAdmin {
			c.Locals(localAdminID, userID)
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

func parseIDs(s string) map[int64]struct{} {
	ids := make(map[int64]struct{})
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			slog.Warn("ignoring malformed ADMIN_USER_IDS entry", "value", p)
			continue
		}
		ids[id] = struct{}{}
	}
	return ids
}
