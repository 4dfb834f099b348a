package handlers

import (
	"agriloan-portal/internal/pkg/response"
	"agriloan-portal/internal/upstream"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles profile endpoints shared by every role
type UserHandler struct {
	users *upstream.UsersAPI
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *upstream.UsersAPI) *UserHandler {
	return &UserHandler{users: users}
}

// UpdateProfile updates the current user's own profile fields
// @Summary Update profile
// @Description Update the current user's own profile fields
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /portal/v1/users/update-profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if len(fields) == 0 {
		return response.BadRequest(c, "No fields to update")
	}

	user, err := h.users.UpdateProfile(c.UserContext(), fields)
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Profile updated successfully", fiber.Map{
		"user": user,
	})
}

// CropTypes lists crop types from the shared reference endpoint
// @Summary Crop types
// @Description List crop types from the shared reference endpoint
// @Tags Users
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/dashboard/crop-types [get]
func (h *UserHandler) CropTypes(c *fiber.Ctx) error {
	crops, err := h.users.CropTypes(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Crop types retrieved successfully", fiber.Map{
		"crop_types": crops,
	})
}
