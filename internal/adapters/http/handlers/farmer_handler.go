package handlers

import (
	"agriloan-portal/internal/core/domain"
	"agriloan-portal/internal/pkg/response"
	"agriloan-portal/internal/upstream"

	"github.com/gofiber/fiber/v2"
)

// FarmerHandler handles farmer-facing loan endpoints
type FarmerHandler struct {
	farmers *upstream.FarmersAPI
}

// NewFarmerHandler creates a new farmer handler
func NewFarmerHandler(farmers *upstream.FarmersAPI) *FarmerHandler {
	return &FarmerHandler{farmers: farmers}
}

// SubmitApplication files a new loan application
// @Summary Submit loan application
// @Description File a new loan application for the current farmer
// @Tags Farmers
// @Accept json
// @Produce json
// @Param body body domain.ApplicationInput true "Application data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /portal/v1/farmers/applications [post]
func (h *FarmerHandler) SubmitApplication(c *fiber.Ctx) error {
	var input domain.ApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if input.CropTypeID == "" {
		return response.BadRequest(c, "Crop type is required")
	}
	if input.FarmSizeHectares <= 0 {
		return response.BadRequest(c, "Farm size must be greater than zero")
	}
	if input.ExpectedYieldKg <= 0 {
		return response.BadRequest(c, "Expected yield must be greater than zero")
	}
	if input.DistrictID == "" {
		return response.BadRequest(c, "District is required")
	}

	app, err := h.farmers.SubmitApplication(c.UserContext(), input)
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Created(c, "Application submitted successfully", fiber.Map{
		"application": app,
	})
}

// Applications lists the current farmer's applications
// @Summary List my applications
// @Description List the current farmer's loan applications
// @Tags Farmers
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/farmers/applications [get]
func (h *FarmerHandler) Applications(c *fiber.Ctx) error {
	apps, err := h.farmers.Applications(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Applications retrieved successfully", fiber.Map{
		"applications": apps,
		"count":        len(apps),
	})
}

// Application fetches one of the farmer's applications by ID
// @Summary Get application
// @Description Get one loan application by ID
// @Tags Farmers
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /portal/v1/farmers/applications/{id} [get]
func (h *FarmerHandler) Application(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "Application ID is required")
	}

	app, err := h.farmers.Application(c.UserContext(), id)
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Application retrieved successfully", fiber.Map{
		"application": app,
	})
}

// Profile fetches the current farmer's profile
// @Summary Get farmer profile
// @Description Get the current farmer's profile
// @Tags Farmers
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/farmers/profile [get]
func (h *FarmerHandler) Profile(c *fiber.Ctx) error {
	profile, err := h.farmers.Profile(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Profile retrieved successfully", fiber.Map{
		"profile": profile,
	})
}

// YieldHistory fetches the current farmer's recorded yields
// @Summary Get yield history
// @Description Get the current farmer's recorded season yields
// @Tags Farmers
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/farmers/yield-history [get]
func (h *FarmerHandler) YieldHistory(c *fiber.Ctx) error {
	history, err := h.farmers.YieldHistory(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Yield history retrieved successfully", fiber.Map{
		"yield_history": history,
	})
}
