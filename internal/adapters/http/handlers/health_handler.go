package handlers

import (
	"time"

	"agriloan-portal/internal/config"

	"github.com/gofiber/fiber/v2"
)

var startTime = time.Now()

// HealthHandler handles portal health check endpoints
type HealthHandler struct {
	cfg *config.Config
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Check returns the portal health status
// @Summary Health check
// @Description Check if the portal and its session store are healthy
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "healthy"
	store := "ok"

	if h.cfg.Session.Store == config.StoreMySQL {
		if err := config.HealthCheck(); err != nil {
			status = "degraded"
			store = "unreachable"
		}
	}

	code := fiber.StatusOK
	if status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":        status,
		"session_store": store,
		"mode":          h.cfg.AppMode,
		"uptime":        time.Since(startTime).Round(time.Second).String(),
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}
