// utils/http.go - JSON response helpers for Fiber handlers
package utils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// JSONError sends a {"success": false, "error": ...} response
func JSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// JSONSuccess sends a {"success": true, ...} response. Keys of data are
// merged into the body.
func JSONSuccess(c *fiber.Ctx, status int, data fiber.Map) error {
	response := fiber.Map{
		"success": true,
	}
	for k, v := range data {
		response[k] = v
	}
	return c.Status(status).JSON(response)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header, returning "" when the header is missing or malformed.
func BearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || token == "" || strings.Contains(token, " ") {
		return ""
	}
	return token
}
