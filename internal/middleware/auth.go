package middleware

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type SessionProvider interface {
	Rdb() *redis.Client
	CookieName() string
}

const userIDKey = "userID"

// AuthSession rejects requests without a valid session cookie.
func AuthSession(reg SessionProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, ok := resolveSession(c, reg)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "unauthorized"})
		}
		c.Locals(userIDKey, uid)
		return c.Next()
	}
}

// OptionalAuthSession attaches the user when a valid session cookie is
// present but lets anonymous requests through. Generation works signed out;
// only history persistence needs an identity.
func OptionalAuthSession(reg SessionProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if uid, ok := resolveSession(c, reg); ok {
			c.Locals(userIDKey, uid)
		}
		return c.Next()
	}
}

func resolveSession(c *fiber.Ctx, reg SessionProvider) (int64, bool) {
	sid := c.Cookies(reg.CookieName())
	if sid == "" {
		return 0, false
	}
	val, err := reg.Rdb().Get(context.Background(), "sess:"+sid).Result()
	if err != nil {
		return 0, false
	}
	uid, err := strconv.ParseInt(val, 10, 64)
	if err != nil || uid == 0 {
		return 0, false
	}
	return uid, true
}

// UserID returns the authenticated user for the request, if any.
func UserID(c *fiber.Ctx) (int64, bool) {
	uid, ok := c.Locals(userIDKey).(int64)
	return uid, ok && uid != 0
}
