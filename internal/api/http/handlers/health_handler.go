package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/govhub/helpdesk-portal/internal/api/dto"
)

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	deps        map[string]Pinger
}

// NewHealthHandler returns a new handler instance. deps are keyed by the
// name reported in the readiness body.
func NewHealthHandler(serviceName, version string, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, deps: deps}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:  "alive",
		Service: h.serviceName,
		Version: h.version,
	})
}

// Ready reports readiness by pinging the backend API and the session store.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := make(map[string]string, len(h.deps))
	ready := true
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			depStatus[name] = err.Error()
			ready = false
			continue
		}
		depStatus[name] = "ok"
	}

	if ready {
		return c.JSON(dto.HealthResponse{Status: "ready", Service: h.serviceName, Dependencies: depStatus})
	}

	details := make(map[string]any, len(depStatus))
	for k, v := range depStatus {
		details[k] = v
	}
	return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Code:    "DEPENDENCY_UNAVAILABLE",
			Message: "one or more dependencies unavailable",
			Details: details,
		},
	})
}
