package handlers

import (
	"agriloan-portal/internal/pkg/response"
	"agriloan-portal/internal/upstream"

	"github.com/gofiber/fiber/v2"
)

// OfficerHandler handles loan officer endpoints
type OfficerHandler struct {
	officers *upstream.LoanOfficersAPI
}

// NewOfficerHandler creates a new loan officer handler
func NewOfficerHandler(officers *upstream.LoanOfficersAPI) *OfficerHandler {
	return &OfficerHandler{officers: officers}
}

// Applications lists applications assigned to the current officer
// @Summary List assigned applications
// @Description List loan applications assigned to the current officer
// @Tags LoanOfficers
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/loan-officers/applications [get]
func (h *OfficerHandler) Applications(c *fiber.Ctx) error {
	apps, err := h.officers.Applications(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Applications retrieved successfully", fiber.Map{
		"applications": apps,
		"count":        len(apps),
	})
}

// DashboardStats fetches the officer dashboard summary
// @Summary Officer dashboard stats
// @Description Get the loan officer dashboard summary
// @Tags LoanOfficers
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/loan-officers/dashboard/stats [get]
func (h *OfficerHandler) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.officers.DashboardStats(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Dashboard stats retrieved successfully", fiber.Map{
		"stats": stats,
	})
}

// Districts lists districts accessible to the current officer
// @Summary Officer districts
// @Description List districts the current officer may work in
// @Tags LoanOfficers
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/loan-officers/districts [get]
func (h *OfficerHandler) Districts(c *fiber.Ctx) error {
	districts, err := h.officers.AccessibleDistricts(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Districts retrieved successfully", fiber.Map{
		"districts": districts,
	})
}

// CropTypes lists crop types supported for applications
// @Summary Crop types
// @Description List crop types supported for loan applications
// @Tags LoanOfficers
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/loan-officers/crop-types [get]
func (h *OfficerHandler) CropTypes(c *fiber.Ctx) error {
	crops, err := h.officers.CropTypes(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Crop types retrieved successfully", fiber.Map{
		"crop_types": crops,
	})
}
