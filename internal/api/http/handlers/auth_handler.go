package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/lifeexplorer230/mafclubscore-sub001/internal/api/dto"
	"github.com/lifeexplorer230/mafclubscore-sub001/internal/service"
)

// AuthHandler exposes the login and logout endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login. On success the session token is
// delivered as a cookie; the body carries only the role.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	result, err := h.auth.Login(c.UserContext(), req.Username, req.Password, c.IP())
	if err != nil {
		return err
	}

	c.Cookie(h.auth.TokenManager().Cookie(result.Token, result.ExpiresAt))
	return c.JSON(fiber.Map{
		"data": dto.LoginResponse{
			Role:      string(result.Role),
			ExpiresAt: result.ExpiresAt,
		},
	})
}

// Logout handles POST /auth/logout by clearing the session cookie. Tokens
// are stateless, so there is no server-side session to revoke.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(h.auth.TokenManager().ExpiredCookie())
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "logged_out"}})
}
