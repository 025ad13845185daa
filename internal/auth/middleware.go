package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/lifeexplorer230/mafclubscore-sub001/internal/events"
	"github.com/lifeexplorer230/mafclubscore-sub001/internal/observability"
	apperrors "github.com/lifeexplorer230/mafclubscore-sub001/pkg/util"
)

const principalKey = "auth_principal"

// Middleware gates protected routes through the Gateway. Downstream
// handlers receive a Principal in locals and never parse tokens themselves.
type Middleware struct {
	gateway    *Gateway
	logger     *zap.Logger
	metrics    *observability.Metrics
	dispatcher events.Dispatcher
}

// NewMiddleware constructs the request-time gate.
func NewMiddleware(gateway *Gateway, logger *zap.Logger, metrics *observability.Metrics, dispatcher events.Dispatcher) *Middleware {
	return &Middleware{gateway: gateway, logger: logger, metrics: metrics, dispatcher: dispatcher}
}

// ExtractCandidate pulls the candidate token from the request: the session
// cookie first, then a legacy Authorization bearer header. These are
// carriers only; which validation path runs is decided by the gateway.
func ExtractCandidate(c *fiber.Ctx) string {
	if cookie := c.Cookies(SessionCookieName); cookie != "" {
		return cookie
	}
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Handle authorizes the request or terminates it with a generic 401. The
// specific rejection reason stays in logs, metrics and the audit trail.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	candidate := ExtractCandidate(c)

	principal, authErr := m.gateway.Authorize(candidate)
	if authErr != nil {
		m.logger.Warn("request rejected",
			zap.String("path", c.Path()),
			zap.String("reason", string(authErr.Reason)),
			zap.String("generation", string(authErr.Generation)),
		)
		m.metrics.RecordAuthDecision(string(authErr.Generation), string(authErr.Reason))
		if m.dispatcher != nil && authErr.Reason != ReasonMissingToken {
			_ = m.dispatcher.Publish(c.UserContext(), events.NewTokenRejected(string(authErr.Reason), string(authErr.Generation), c.Path()))
		}
		return apperrors.NewUnauthorized("unauthorized")
	}

	m.metrics.RecordAuthDecision(string(principal.Generation), "accepted")
	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated identity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
