package handlers

import (
	"agriloan-portal/internal/pkg/response"
	"agriloan-portal/internal/upstream"

	"github.com/gofiber/fiber/v2"
)

// MonitoringHandler handles ML service monitoring endpoints
type MonitoringHandler struct {
	monitoring *upstream.MonitoringAPI
}

// NewMonitoringHandler creates a new monitoring handler
func NewMonitoringHandler(monitoring *upstream.MonitoringAPI) *MonitoringHandler {
	return &MonitoringHandler{monitoring: monitoring}
}

// Health reports the ML service health
// @Summary ML service health
// @Description Report the ML service health
// @Tags Monitoring
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/monitoring/health [get]
func (h *MonitoringHandler) Health(c *fiber.Ctx) error {
	out, err := h.monitoring.Health(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}
	return response.Success(c, "Health retrieved successfully", out)
}

// Metrics reports serving metrics
// @Summary ML serving metrics
// @Description Report ML serving metrics
// @Tags Monitoring
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/monitoring/metrics [get]
func (h *MonitoringHandler) Metrics(c *fiber.Ctx) error {
	out, err := h.monitoring.Metrics(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}
	return response.Success(c, "Metrics retrieved successfully", out)
}

// Deploy promotes the candidate model to serving
// @Summary Deploy model
// @Description Promote the candidate model to serving
// @Tags Monitoring
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/monitoring/deploy [post]
func (h *MonitoringHandler) Deploy(c *fiber.Ctx) error {
	out, err := h.monitoring.Deploy(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}
	return response.Success(c, "Model deployed successfully", out)
}

// Rollback reverts to the previously deployed model
// @Summary Rollback model
// @Description Revert to the previously deployed model
// @Tags Monitoring
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/monitoring/rollback [post]
func (h *MonitoringHandler) Rollback(c *fiber.Ctx) error {
	out, err := h.monitoring.Rollback(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}
	return response.Success(c, "Model rolled back successfully", out)
}

// Status reports the current deployment state
// @Summary Deployment status
// @Description Report the current model deployment state
// @Tags Monitoring
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/monitoring/status [get]
func (h *MonitoringHandler) Status(c *fiber.Ctx) error {
	out, err := h.monitoring.Status(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}
	return response.Success(c, "Status retrieved successfully", out)
}
