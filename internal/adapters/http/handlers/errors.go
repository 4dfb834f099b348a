package handlers

import (
	"agriloan-portal/internal/pkg/response"
	"agriloan-portal/internal/upstream"

	"github.com/gofiber/fiber/v2"
)

// respondUpstreamError maps a classified upstream error onto the portal's
// response envelope. Every handler funnels façade failures through here so
// the taxonomy (401 / status+message / network) stays uniform.
func respondUpstreamError(c *fiber.Ctx, err error) error {
	if ue, ok := upstream.AsError(err); ok {
		switch {
		case ue.Status == fiber.StatusUnauthorized:
			// The session was already cleared by the client core
			return response.Unauthorized(c, "Session expired. Please log in again.")
		case ue.Status == 0:
			return response.BadGateway(c, "Failed to connect to the loan service. Please check your connection.")
		default:
			return response.Error(c, ue.Status, ue.Message)
		}
	}
	return response.InternalServerError(c, "Unexpected error talking to the loan service")
}
