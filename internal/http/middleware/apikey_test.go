package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKey(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	api := app.Group("/api", APIKey("/api", "secret"))
	api.All("/*", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	tests := []struct {
		name   string
		method string
		path   string
		key    string
		want   int
	}{
		{"login is public", "POST", "/api/auth/login", "", fiber.StatusOK},
		{"register is public", "POST", "/api/auth/register", "", fiber.StatusOK},
		{"contact list is public", "GET", "/api/contacto", "", fiber.StatusOK},
		{"contact create is public", "POST", "/api/contacto", "", fiber.StatusOK},
		{"contact delete is public", "DELETE", "/api/contacto/abc", "", fiber.StatusOK},
		{"news read is public", "GET", "/api/noticias", "", fiber.StatusOK},
		{"news write needs key", "POST", "/api/noticias", "", fiber.StatusUnauthorized},
		{"news write with key", "POST", "/api/noticias", "secret", fiber.StatusOK},
		{"donors need key", "GET", "/api/donantes", "", fiber.StatusUnauthorized},
		{"wrong key", "GET", "/api/donantes", "nope", fiber.StatusUnauthorized},
		{"right key", "GET", "/api/donantes", "secret", fiber.StatusOK},
		{"prefix lookalike is guarded", "GET", "/api/authx", "", fiber.StatusUnauthorized},
		{"upload needs key", "POST", "/api/upload", "", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.key != "" {
				req.Header.Set(APIKeyHeader, tt.key)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)

			if tt.want == fiber.StatusUnauthorized {
				var body map[string]string
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, "unauthorized", body["error"])
				assert.Equal(t, resp.Header.Get(RequestIDHeader), body["request_id"])
			}
		})
	}
}

func TestAPIKey_EmptySecretRejectsEverything(t *testing.T) {
	app := fiber.New()
	app.Use("/api", APIKey("/api", ""))
	app.Get("/api/donantes", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest("GET", "/api/donantes", nil)
	req.Header.Set(APIKeyHeader, "")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
