package handlers

import (
	"fmt"
	"html"

	"agriloan-portal/internal/adapters/http/middleware"
	"agriloan-portal/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

// PagesHandler renders the server-side page shells. The shells carry the
// page identity and the session snapshot; the browser-side script hydrates
// the rest through the /portal/v1 API.
type PagesHandler struct{}

// NewPagesHandler creates a new pages handler
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

const pageShell = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s | AgriLoan Portal</title>
<link rel="stylesheet" href="/assets/portal.css">
</head>
<body data-page="%s">
<div id="app">
<header><h1>AgriLoan Portal</h1>%s</header>
<main id="page-root" data-title="%s"></main>
</div>
<script src="/assets/portal.js" defer></script>
</body>
</html>`

func (h *PagesHandler) render(c *fiber.Ctx, page, title string) error {
	nav := `<nav><a href="/auth/login">Log in</a> <a href="/auth/signup">Sign up</a></nav>`
	if sess := middleware.SessionFromCtx(c); sess != nil {
		if user := sess.User(); user != nil {
			nav = fmt.Sprintf(`<nav><span>%s %s</span> <a href="%s">Dashboard</a></nav>`,
				html.EscapeString(user.FirstName),
				html.EscapeString(user.LastName),
				user.Role.DashboardPath(),
			)
		}
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	safeTitle := html.EscapeString(title)
	return c.SendString(fmt.Sprintf(pageShell, safeTitle, html.EscapeString(page), nav, safeTitle))
}

// Home renders the landing page
func (h *PagesHandler) Home(c *fiber.Ctx) error {
	return h.render(c, "home", "Agricultural Loans for Malawi")
}

// Login renders the login page
func (h *PagesHandler) Login(c *fiber.Ctx) error {
	return h.render(c, "login", "Log in")
}

// Signup renders the signup page
func (h *PagesHandler) Signup(c *fiber.Ctx) error {
	return h.render(c, "signup", "Create an account")
}

// PasswordReset renders the password reset page
func (h *PagesHandler) PasswordReset(c *fiber.Ctx) error {
	return h.render(c, "password-reset", "Reset your password")
}

// Dashboard redirects the authenticated user to their role's dashboard.
// The guard has already ensured the session is authenticated.
func (h *PagesHandler) Dashboard(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess != nil {
		if user := sess.User(); user != nil {
			return c.Redirect(user.Role.DashboardPath(), fiber.StatusFound)
		}
	}
	return c.Redirect("/auth/login", fiber.StatusFound)
}

// RoleDashboard renders the dashboard for one role. The path role must
// match the session's role; a mismatch bounces to the user's own
// dashboard rather than erroring.
func (h *PagesHandler) RoleDashboard(c *fiber.Ctx) error {
	role, err := domain.ParseRole(c.Params("role"))
	if err != nil {
		return c.Redirect("/dashboard", fiber.StatusFound)
	}

	sess := middleware.SessionFromCtx(c)
	if sess == nil || sess.User() == nil {
		return c.Redirect("/auth/login", fiber.StatusFound)
	}
	if sess.User().Role != role {
		return c.Redirect(sess.User().Role.DashboardPath(), fiber.StatusFound)
	}

	titles := map[domain.Role]string{
		domain.RoleFarmer:      "Farmer Dashboard",
		domain.RoleLoanOfficer: "Loan Officer Dashboard",
		domain.RoleSupervisor:  "Supervisor Dashboard",
		domain.RoleAdmin:       "Admin Dashboard",
	}
	return h.render(c, "dashboard-"+string(role), titles[role])
}

// Apply renders the loan application form page (farmer only)
func (h *PagesHandler) Apply(c *fiber.Ctx) error {
	return h.render(c, "apply", "Apply for a loan")
}
