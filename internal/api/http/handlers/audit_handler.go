package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/lifeexplorer230/mafclubscore-sub001/internal/service"
	apperrors "github.com/lifeexplorer230/mafclubscore-sub001/pkg/util"
)

// AuditHandler exposes the auth audit trail to privileged roles so the
// migration rollout can be observed.
type AuditHandler struct {
	audit *service.AuditService
}

// NewAuditHandler constructs handler.
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{audit: auditService}
}

// Recent handles GET /api/audit.
func (h *AuditHandler) Recent(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "100"))

	entries, err := h.audit.Recent(c.UserContext(), limit)
	if err != nil {
		return apperrors.NewServiceUnavailable("audit trail unavailable", err)
	}
	return c.JSON(fiber.Map{"data": entries})
}
