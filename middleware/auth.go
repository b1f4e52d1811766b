// middleware/auth.go
package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"wodboard/utils"
)

// AdminTokenTTL is how long an issued admin token stays valid
const AdminTokenTTL = 24 * time.Hour

// IssueAdminToken signs an HS256 token carrying the is_admin claim
func IssueAdminToken(secret string, adminID uint, username string, now time.Time) (string, int64, error) {
	expiresAt := now.Add(AdminTokenTTL).Unix()
	claims := jwt.MapClaims{
		"user_id":  adminID,
		"username": username,
		"is_admin": true,
		"exp":      expiresAt,
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", 0, err
	}
	return tokenString, expiresAt, nil
}

// AdminAuth rejects requests without a valid admin bearer token
func AdminAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := utils.BearerToken(c)
		if tokenString == "" {
			if c.Get(fiber.HeaderAuthorization) == "" {
				return utils.JSONError(c, fiber.StatusUnauthorized, "Missing authorization header")
			}
			return utils.JSONError(c, fiber.StatusUnauthorized, "Invalid authorization header format")
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(secret), nil
		}, jwt.WithExpirationRequired())

		if err != nil || !token.Valid {
			return utils.JSONError(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.JSONError(c, fiber.StatusUnauthorized, "Invalid token claims")
		}

		isAdmin, ok := claims["is_admin"].(bool)
		if !ok || !isAdmin {
			return utils.JSONError(c, fiber.StatusForbidden, "Access denied. Admin privileges required.")
		}

		c.Locals("userId", claims["user_id"])
		c.Locals("username", claims["username"])
		c.Locals("isAdmin", true)

		return c.Next()
	}
}

func GetUsername(c *fiber.Ctx) (string, error) {
	username := c.Locals("username")
	if username == nil {
		return "", fiber.NewError(fiber.StatusUnauthorized, "User not authenticated")
	}

	if name, ok := username.(string); ok {
		return name, nil
	}

	return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid username format")
}
