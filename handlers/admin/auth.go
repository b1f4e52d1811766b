package admin

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"wodboard/log"
	"wodboard/middleware"
	"wodboard/services"
	"wodboard/utils"
)

var (
	adminService *services.AdminService
	jwtSecret    string
)

// Init wires the login handlers
func Init(admins *services.AdminService, secret string) {
	adminService = admins
	jwtSecret = secret
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	Username  string `json:"username"`
	ExpiresAt int64  `json:"expires_at"`
}

// Login authenticates an admin user
// POST /api/admin/login
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Username == "" || req.Password == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "Username and password are required")
	}

	admin, err := adminService.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.WithComponent("auth").Warn().Str("username", req.Username).Str("ip", c.IP()).Msg("Failed admin login")
			return utils.JSONError(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return err
	}

	token, expiresAt, err := middleware.IssueAdminToken(jwtSecret, admin.ID, admin.Username, time.Now())
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(LoginResponse{
		Success:   true,
		Token:     token,
		Username:  admin.Username,
		ExpiresAt: expiresAt,
	})
}

// VerifyToken reports the identity behind a valid admin token
// GET /api/admin/verify
func VerifyToken(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":  true,
		"valid":    true,
		"username": c.Locals("username"),
		"is_admin": c.Locals("isAdmin"),
	})
}
