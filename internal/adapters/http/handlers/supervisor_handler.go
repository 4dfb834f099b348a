package handlers

import (
	"strings"

	"agriloan-portal/internal/core/domain"
	"agriloan-portal/internal/pkg/response"
	"agriloan-portal/internal/upstream"

	"github.com/gofiber/fiber/v2"
)

// SupervisorHandler handles supervisor endpoints
type SupervisorHandler struct {
	supervisors *upstream.SupervisorsAPI
}

// NewSupervisorHandler creates a new supervisor handler
func NewSupervisorHandler(supervisors *upstream.SupervisorsAPI) *SupervisorHandler {
	return &SupervisorHandler{supervisors: supervisors}
}

// AssignRequest represents an application assignment request body
type AssignRequest struct {
	OfficerID string `json:"officer_id"`
}

// Dashboard fetches the supervisor overview
// @Summary Supervisor dashboard
// @Description Get the supervisor overview
// @Tags Supervisors
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/supervisors/dashboard [get]
func (h *SupervisorHandler) Dashboard(c *fiber.Ctx) error {
	dash, err := h.supervisors.Dashboard(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Dashboard retrieved successfully", fiber.Map{
		"dashboard": dash,
	})
}

// LoanOfficers lists officers under the current supervisor
// @Summary List loan officers
// @Description List loan officers under the current supervisor
// @Tags Supervisors
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/supervisors/loan-officers [get]
func (h *SupervisorHandler) LoanOfficers(c *fiber.Ctx) error {
	officers, err := h.supervisors.LoanOfficers(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Loan officers retrieved successfully", fiber.Map{
		"loan_officers": officers,
		"count":         len(officers),
	})
}

// PendingApplications lists applications awaiting a decision
// @Summary Pending applications
// @Description List loan applications awaiting a supervisor decision
// @Tags Supervisors
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/supervisors/applications/pending [get]
func (h *SupervisorHandler) PendingApplications(c *fiber.Ctx) error {
	apps, err := h.supervisors.PendingApplications(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Pending applications retrieved successfully", fiber.Map{
		"applications": apps,
		"count":        len(apps),
	})
}

// Review submits an approve/reject decision for an application
// @Summary Review application
// @Description Submit an approve or reject decision for a loan application
// @Tags Supervisors
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param body body domain.ReviewInput true "Decision"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /portal/v1/supervisors/applications/{id}/approve [post]
func (h *SupervisorHandler) Review(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "Application ID is required")
	}

	var input domain.ReviewInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate decision
	decision := strings.ToLower(strings.TrimSpace(input.Decision))
	if decision != "approve" && decision != "reject" {
		return response.BadRequest(c, "Decision must be 'approve' or 'reject'")
	}
	if decision == "approve" && (input.ApprovedAmountMWK == nil || *input.ApprovedAmountMWK <= 0) {
		return response.BadRequest(c, "Approved amount is required when approving")
	}
	input.Decision = decision

	app, err := h.supervisors.Review(c.UserContext(), id, input)
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Decision recorded successfully", fiber.Map{
		"application": app,
	})
}

// Assign routes an application to a loan officer
// @Summary Assign application
// @Description Route a loan application to a loan officer
// @Tags Supervisors
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param body body AssignRequest true "Officer"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /portal/v1/supervisors/applications/{id}/assign [post]
func (h *SupervisorHandler) Assign(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "Application ID is required")
	}

	var req AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.OfficerID == "" {
		return response.BadRequest(c, "Officer ID is required")
	}

	if err := h.supervisors.Assign(c.UserContext(), id, req.OfficerID); err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Application assigned successfully", nil)
}
