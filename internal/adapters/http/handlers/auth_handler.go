package handlers

import (
	"strings"

	"agriloan-portal/internal/adapters/http/middleware"
	"agriloan-portal/internal/core/domain"
	"agriloan-portal/internal/core/session"
	"agriloan-portal/internal/pkg/response"
	"agriloan-portal/internal/upstream"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles session authentication endpoints
type AuthHandler struct {
	sessions *session.Manager
	auth     *upstream.AuthAPI
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *session.Manager, auth *upstream.AuthAPI) *AuthHandler {
	return &AuthHandler{sessions: sessions, auth: auth}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// SignupRequest represents signup request body
type SignupRequest struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	DistrictID  string `json:"district_id"`
	NationalID  string `json:"national_id"`
	Address     string `json:"address"`
}

// PasswordResetRequest represents a password reset request body
type PasswordResetRequest struct {
	Identifier string `json:"identifier"`
}

// VerifyOTPRequest represents an OTP verification request body
type VerifyOTPRequest struct {
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

// Login handles user login
// @Summary Login user
// @Description Authenticate against the AgriLoan API and open a portal session
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /portal/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.Email == "" && req.PhoneNumber == "" {
		return response.BadRequest(c, "Email or phone number is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	sess := middleware.SessionFromCtx(c)
	user, err := h.sessions.Login(c.UserContext(), sess, domain.LoginCredentials{
		Email:       strings.TrimSpace(req.Email),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Password:    req.Password,
	})
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Login successful", fiber.Map{
		"user": user,
	})
}

// Signup handles new account registration followed by login
// @Summary Sign up
// @Description Register a new account and open a portal session
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body SignupRequest true "Signup data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /portal/v1/auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.FirstName == "" || req.LastName == "" {
		return response.BadRequest(c, "First and last name are required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}
	if len(req.Password) < 8 {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}
	if req.DistrictID == "" {
		return response.BadRequest(c, "District is required")
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return response.BadRequest(c, "Invalid role")
	}

	sess := middleware.SessionFromCtx(c)
	user, err := h.sessions.Signup(c.UserContext(), sess, domain.SignupInput{
		Email:       strings.TrimSpace(req.Email),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Password:    req.Password,
		Role:        role,
		DistrictID:  req.DistrictID,
		NationalID:  strings.TrimSpace(req.NationalID),
		Address:     strings.TrimSpace(req.Address),
	})
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Created(c, "Account created successfully", fiber.Map{
		"user": user,
	})
}

// Logout handles user logout
// @Summary Logout
// @Description Clear the portal session and its stored token
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	h.sessions.Logout(c.UserContext(), sess)
	return response.Success(c, "Logged out successfully", nil)
}

// Me returns the current user info
// @Summary Get current user
// @Description Get the currently authenticated user's information
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /portal/v1/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	user := sess.User()
	if user == nil {
		return response.Unauthorized(c, "Not authenticated")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": user,
	})
}

// PasswordReset handles a password reset request
// @Summary Request password reset
// @Description Start a password reset for an email or phone number
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body PasswordResetRequest true "Identifier"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /portal/v1/auth/password-reset [post]
func (h *AuthHandler) PasswordReset(c *fiber.Ctx) error {
	var req PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Identifier) == "" {
		return response.BadRequest(c, "Email or phone number is required")
	}

	if err := h.auth.RequestPasswordReset(c.UserContext(), strings.TrimSpace(req.Identifier)); err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Password reset requested. Check your messages for a code.", nil)
}

// VerifyOTP completes a password reset with the one-time code
// @Summary Verify OTP
// @Description Complete a password reset with the one-time code
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body VerifyOTPRequest true "OTP and new password"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /portal/v1/auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.OTP == "" {
		return response.BadRequest(c, "OTP is required")
	}
	if len(req.NewPassword) < 8 {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	if err := h.auth.VerifyOTP(c.UserContext(), req.OTP, req.NewPassword); err != nil {
		return respondUpstreamError(c, err)
	}

	return response.Success(c, "Password updated successfully", nil)
}

// Notices drains the pending user-facing notices for this session
// @Summary Drain notices
// @Description Return and clear pending user-facing notices (toasts)
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/notices [get]
func (h *AuthHandler) Notices(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	return response.Success(c, "Notices retrieved", fiber.Map{
		"notices": sess.DrainNotices(),
	})
}
