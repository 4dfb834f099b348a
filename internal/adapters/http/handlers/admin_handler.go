package handlers

import (
	"agriloan-portal/internal/core/domain"
	"agriloan-portal/internal/pkg/pagination"
	"agriloan-portal/internal/pkg/response"
	"agriloan-portal/internal/upstream"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles administrator endpoints
type AdminHandler struct {
	admin    *upstream.AdminAPI
	services *upstream.Services
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(services *upstream.Services) *AdminHandler {
	return &AdminHandler{admin: services.Admin, services: services}
}

// SystemSettingRequest represents a system setting update body
type SystemSettingRequest struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// ModelPerformance fetches aggregate ML model performance metrics
// @Summary Model performance
// @Description Get aggregate ML model performance metrics
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/admin/model-performance [get]
func (h *AdminHandler) ModelPerformance(c *fiber.Ctx) error {
	perf, err := h.admin.ModelPerformance(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Model performance retrieved successfully", perf)
}

// UpdateSystemSetting sets one system configuration key
// @Summary Update system setting
// @Description Set one system configuration key
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body SystemSettingRequest true "Setting"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /portal/v1/admin/system-settings [post]
func (h *AdminHandler) UpdateSystemSetting(c *fiber.Ctx) error {
	var req SystemSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Key == "" {
		return response.BadRequest(c, "Setting key is required")
	}
	if req.Value == "" {
		return response.BadRequest(c, "Setting value is required")
	}

	if err := h.admin.UpdateSystemSetting(c.UserContext(), req.Key, req.Value, req.Description); err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Setting updated successfully", nil)
}

// CreateUser provisions a new user account
// @Summary Create user
// @Description Provision a new user account
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body domain.SignupInput true "User data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /portal/v1/admin/users [post]
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var input domain.SignupInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if input.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if input.FirstName == "" || input.LastName == "" {
		return response.BadRequest(c, "First and last name are required")
	}
	if len(input.Password) < 8 {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}
	if !input.Role.Valid() {
		return response.BadRequest(c, "Invalid role")
	}

	user, err := h.admin.CreateUser(c.UserContext(), input)
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Created(c, "User created successfully", fiber.Map{
		"user": user,
	})
}

// Users lists user accounts with pagination
// @Summary List users
// @Description List user accounts
// @Tags Admin
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /portal/v1/admin/users [get]
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, err := h.admin.Users(c.UserContext(), params.Query())
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Users retrieved successfully", fiber.Map{
		"users": users,
		"page":  params.Page,
		"limit": params.Limit,
	})
}

// User fetches one user by ID
// @Summary Get user
// @Description Get one user account by ID
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /portal/v1/admin/users/{id} [get]
func (h *AdminHandler) User(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "User ID is required")
	}

	user, err := h.admin.User(c.UserContext(), id)
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": user,
	})
}

// UpdateUser updates a user account
// @Summary Update user
// @Description Update a user account
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /portal/v1/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "User ID is required")
	}

	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if len(fields) == 0 {
		return response.BadRequest(c, "No fields to update")
	}

	user, err := h.admin.UpdateUser(c.UserContext(), id, fields)
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "User updated successfully", fiber.Map{
		"user": user,
	})
}

// DeactivateUser disables a user account
// @Summary Deactivate user
// @Description Disable a user account
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Router /portal/v1/admin/users/{id} [delete]
func (h *AdminHandler) DeactivateUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "User ID is required")
	}

	if err := h.admin.DeactivateUser(c.UserContext(), id); err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "User deactivated successfully", nil)
}

// ClearCaches drops the portal's reference data caches
// @Summary Clear caches
// @Description Drop the portal's cached reference data
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/admin/cache/clear [post]
func (h *AdminHandler) ClearCaches(c *fiber.Ctx) error {
	h.services.ClearCaches()
	return response.Success(c, "Caches cleared successfully", nil)
}
