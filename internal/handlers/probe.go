package handlers

import (
	"github.com/gofiber/fiber/v3"

	"textinsight/internal/store"
)

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	store store.Pinger
}

// NewProbeHandler creates a new probe handler. A nil pinger means the
// service runs without persistence and is always ready.
func NewProbeHandler(pinger store.Pinger) *ProbeHandler {
	return &ProbeHandler{store: pinger}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK if the application can serve traffic (store is reachable).
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if h.store == nil {
		return c.JSON(fiber.Map{
			"status": "ok",
			"store":  "disabled",
		})
	}

	if err := h.store.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "store unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
