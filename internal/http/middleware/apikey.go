package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// APIKeyHeader carries the shared secret of the admin panel.
const APIKeyHeader = "X-API-Key"

// APIKey guards the REST surface mounted at prefix with a shared secret.
//
// Public paths pass through: everything under <prefix>/auth and <prefix>/contacto,
// and reads of <prefix>/noticias. All other requests must send APIKeyHeader equal to key.
// The guard knows nothing about user roles.
func APIKey(prefix, key string) fiber.Handler {
	expected := []byte(key)
	return func(c *fiber.Ctx) error {
		if isPublic(c.Method(), strings.TrimPrefix(c.Path(), prefix)) {
			return c.Next()
		}
		got := []byte(c.Get(APIKeyHeader))
		if len(expected) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
			return abort(c, fiber.StatusUnauthorized, "unauthorized", "unauthorized")
		}
		return c.Next()
	}
}

func isPublic(method, path string) bool {
	switch {
	case underPath(path, "/auth"), underPath(path, "/contacto"):
		return true
	case method == fiber.MethodGet && underPath(path, "/noticias"):
		return true
	}
	return false
}

func underPath(path, segment string) bool {
	return path == segment || strings.HasPrefix(path, segment+"/")
}
