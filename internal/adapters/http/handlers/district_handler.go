package handlers

import (
	"agriloan-portal/internal/pkg/response"
	"agriloan-portal/internal/upstream"

	"github.com/gofiber/fiber/v2"
)

// DistrictHandler handles district reference data endpoints
type DistrictHandler struct {
	districts *upstream.DistrictsAPI
}

// NewDistrictHandler creates a new district handler
func NewDistrictHandler(districts *upstream.DistrictsAPI) *DistrictHandler {
	return &DistrictHandler{districts: districts}
}

// Districts lists all districts
// @Summary List districts
// @Description List all administrative districts
// @Tags Districts
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/districts [get]
func (h *DistrictHandler) Districts(c *fiber.Ctx) error {
	districts, err := h.districts.Districts(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Districts retrieved successfully", fiber.Map{
		"districts": districts,
	})
}

// District fetches one district by ID
// @Summary Get district
// @Description Get one district by ID
// @Tags Districts
// @Produce json
// @Param id path string true "District ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /portal/v1/districts/{id} [get]
func (h *DistrictHandler) District(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "District ID is required")
	}

	district, err := h.districts.District(c.UserContext(), id)
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "District retrieved successfully", fiber.Map{
		"district": district,
	})
}
