package middleware

import (
	"agriloan-portal/internal/core/domain"
	"agriloan-portal/internal/core/session"
	"agriloan-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// GuardState is the auth state a guard decision is made from.
type GuardState struct {
	Loading       bool
	Authenticated bool
	Role          domain.Role
}

// Requirement describes what a route demands of the session.
type Requirement struct {
	RequireAuth bool
	GuestOnly   bool
	Roles       []domain.Role // implies RequireAuth when non-empty
}

// Decision is the outcome of guarding one navigation.
type Decision int

const (
	DecisionRender Decision = iota
	DecisionLoading
	DecisionRedirectLogin
	DecisionRedirectDashboard
)

// Decide is the route guard as a pure function of state and requirement.
// While loading it never makes a redirect decision.
func Decide(s GuardState, r Requirement) Decision {
	if s.Loading {
		return DecisionLoading
	}

	if r.RequireAuth || len(r.Roles) > 0 {
		if !s.Authenticated {
			return DecisionRedirectLogin
		}
		if len(r.Roles) > 0 && !roleAllowed(s.Role, r.Roles) {
			return DecisionRedirectDashboard
		}
		return DecisionRender
	}

	if r.GuestOnly && s.Authenticated {
		return DecisionRedirectDashboard
	}
	return DecisionRender
}

func roleAllowed(role domain.Role, allowed []domain.Role) bool {
	for _, r := range allowed {
		if role == r {
			return true
		}
	}
	return false
}

// guardState reads the session snapshot into a GuardState.
func guardState(c *fiber.Ctx) GuardState {
	sess := SessionFromCtx(c)
	if sess == nil {
		return GuardState{}
	}

	snap := sess.Snapshot()
	state := GuardState{
		Loading:       snap.State == session.StateUnknown || snap.State == session.StateLoading,
		Authenticated: snap.State == session.StateAuthenticated,
	}
	if snap.User != nil {
		state.Role = snap.User.Role
	}
	return state
}

const loadingShell = `<!doctype html>
<html><head><meta charset="utf-8"><meta http-equiv="refresh" content="1"><title>AgriLoan Portal</title></head>
<body><div class="spinner" role="status">Checking your session…</div></body></html>`

// Protect guards a page route: redirects to login or the default
// dashboard, or renders a refresh placeholder while the session check is
// still in flight.
func Protect(req Requirement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch Decide(guardState(c), req) {
		case DecisionLoading:
			c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
			return c.SendString(loadingShell)
		case DecisionRedirectLogin:
			return c.Redirect("/auth/login", fiber.StatusFound)
		case DecisionRedirectDashboard:
			return c.Redirect("/dashboard", fiber.StatusFound)
		default:
			return c.Next()
		}
	}
}

// ProtectAPI guards a JSON route: the same decisions rendered as status
// codes instead of redirects.
func ProtectAPI(req Requirement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch Decide(guardState(c), req) {
		case DecisionLoading:
			return response.Error(c, fiber.StatusServiceUnavailable, "Session check in progress, retry shortly")
		case DecisionRedirectLogin:
			return response.Unauthorized(c, "Authentication required")
		case DecisionRedirectDashboard:
			return response.Forbidden(c, "You don't have permission to access this resource")
		default:
			return c.Next()
		}
	}
}

// RequireAuth guards an API route for any authenticated user.
func RequireAuth() fiber.Handler {
	return ProtectAPI(Requirement{RequireAuth: true})
}

// RequireRoles guards an API route for specific roles.
func RequireRoles(roles ...domain.Role) fiber.Handler {
	return ProtectAPI(Requirement{Roles: roles})
}
