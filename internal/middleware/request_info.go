package middleware

import (
	"github.com/gofiber/fiber/v2"

	"pawmarket/internal/service"
)

const SessionMetaContextKey = "session_meta"

// RequestInfo captures the client address and user agent so auth endpoints
// can record them on refresh sessions. Honors the proxy header when present.
func RequestInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ip := c.Get("CF-Connecting-IP")
		if ip == "" {
			ip = c.IP()
		}

		c.Locals(SessionMetaContextKey, service.SessionMeta{
			UserAgent: c.Get("User-Agent"),
			IPAddress: ip,
		})
		return c.Next()
	}
}

func GetSessionMeta(c *fiber.Ctx) service.SessionMeta {
	meta, ok := c.Locals(SessionMetaContextKey).(service.SessionMeta)
	if !ok {
		return service.SessionMeta{}
	}
	return meta
}
