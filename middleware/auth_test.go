package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = strings.Repeat("k", 40)

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin", AdminAuth(testSecret), func(c *fiber.Ctx) error {
		name, err := GetUsername(c)
		if err != nil {
			return err
		}
		return c.SendString(name)
	})
	return app
}

func TestAdminAuth(t *testing.T) {
	valid, _, err := IssueAdminToken(testSecret, 1, "judge", time.Now())
	require.NoError(t, err)

	expired, _, err := IssueAdminToken(testSecret, 1, "judge", time.Now().Add(-2*AdminTokenTTL))
	require.NoError(t, err)

	otherKey, _, err := IssueAdminToken(strings.Repeat("x", 40), 1, "judge", time.Now())
	require.NoError(t, err)

	notAdmin, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "fan",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid", header: "Bearer " + valid, status: fiber.StatusOK},
		{name: "missing", header: "", status: fiber.StatusUnauthorized},
		{name: "wrong scheme", header: "Token " + valid, status: fiber.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, status: fiber.StatusUnauthorized},
		{name: "wrong key", header: "Bearer " + otherKey, status: fiber.StatusUnauthorized},
		{name: "not admin", header: "Bearer " + notAdmin, status: fiber.StatusForbidden},
	}

	app := protectedApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
