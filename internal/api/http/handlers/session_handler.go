package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/lifeexplorer230/mafclubscore-sub001/internal/api/dto"
	"github.com/lifeexplorer230/mafclubscore-sub001/internal/auth"
)

// SessionHandler reports the authenticated caller's identity. It consumes
// the principal installed by the auth middleware and never parses tokens.
type SessionHandler struct{}

// NewSessionHandler constructs handler.
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// Current handles GET /api/session.
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	return c.JSON(fiber.Map{
		"data": dto.SessionResponse{
			Subject: principal.Subject,
			Role:    string(principal.Role),
		},
	})
}
