package handlers

import (
	"agriloan-portal/internal/adapters/http/middleware"
	"agriloan-portal/internal/core/domain"
	"agriloan-portal/internal/pkg/response"
	"agriloan-portal/internal/upstream"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

// DashboardHandler aggregates the upstream calls each role's dashboard
// needs into one response, fetched concurrently.
type DashboardHandler struct {
	services *upstream.Services
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(services *upstream.Services) *DashboardHandler {
	return &DashboardHandler{services: services}
}

// Me fetches the current user's dashboard header payload
// @Summary Dashboard header
// @Description Get the current user's dashboard header payload
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Response
// @Router /portal/v1/dashboard/me [get]
func (h *DashboardHandler) Me(c *fiber.Ctx) error {
	info, err := h.services.Users.DashboardInfo(c.UserContext())
	if err != nil {
		return respondUpstreamError(c, err)
	}
	return response.Success(c, "Dashboard info retrieved successfully", info)
}

// Overview fetches the role-specific dashboard payload in one shot
// @Summary Dashboard overview
// @Description Get the role-specific dashboard payload, joined from the upstream endpoints the role's dashboard renders
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /portal/v1/dashboard/overview [get]
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	user := sess.User()
	if user == nil {
		return response.Unauthorized(c, "Authentication required")
	}

	var (
		data fiber.Map
		err  error
	)
	// The role set is closed; every role has an overview
	switch user.Role {
	case domain.RoleFarmer:
		data, err = h.farmerOverview(c)
	case domain.RoleLoanOfficer:
		data, err = h.officerOverview(c)
	case domain.RoleSupervisor:
		data, err = h.supervisorOverview(c)
	case domain.RoleAdmin:
		data, err = h.adminOverview(c)
	default:
		return response.Forbidden(c, "Unknown role")
	}
	if err != nil {
		return respondUpstreamError(c, err)
	}

	data["role"] = user.Role
	return response.Success(c, "Dashboard retrieved successfully", data)
}

func (h *DashboardHandler) farmerOverview(c *fiber.Ctx) (fiber.Map, error) {
	var (
		apps    []domain.Application
		profile *domain.FarmerProfile
		history []domain.YieldHistory
	)

	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() (err error) {
		apps, err = h.services.Farmers.Applications(ctx)
		return
	})
	g.Go(func() (err error) {
		profile, err = h.services.Farmers.Profile(ctx)
		return
	})
	g.Go(func() (err error) {
		history, err = h.services.Farmers.YieldHistory(ctx)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return fiber.Map{
		"applications":  apps,
		"profile":       profile,
		"yield_history": history,
	}, nil
}

func (h *DashboardHandler) officerOverview(c *fiber.Ctx) (fiber.Map, error) {
	var (
		apps      []domain.Application
		stats     *domain.OfficerStats
		districts []domain.District
	)

	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() (err error) {
		apps, err = h.services.LoanOfficers.Applications(ctx)
		return
	})
	g.Go(func() (err error) {
		stats, err = h.services.LoanOfficers.DashboardStats(ctx)
		return
	})
	g.Go(func() (err error) {
		districts, err = h.services.LoanOfficers.AccessibleDistricts(ctx)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return fiber.Map{
		"applications": apps,
		"stats":        stats,
		"districts":    districts,
	}, nil
}

func (h *DashboardHandler) supervisorOverview(c *fiber.Ctx) (fiber.Map, error) {
	var (
		dash     *domain.SupervisorDashboard
		pending  []domain.Application
		officers []domain.User
	)

	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() (err error) {
		dash, err = h.services.Supervisors.Dashboard(ctx)
		return
	})
	g.Go(func() (err error) {
		pending, err = h.services.Supervisors.PendingApplications(ctx)
		return
	})
	g.Go(func() (err error) {
		officers, err = h.services.Supervisors.LoanOfficers(ctx)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return fiber.Map{
		"dashboard":            dash,
		"pending_applications": pending,
		"loan_officers":        officers,
	}, nil
}

func (h *DashboardHandler) adminOverview(c *fiber.Ctx) (fiber.Map, error) {
	var (
		perf  map[string]interface{}
		info  *domain.ModelInfo
		state map[string]interface{}
	)

	g, ctx := errgroup.WithContext(c.UserContext())
	g.Go(func() (err error) {
		perf, err = h.services.Admin.ModelPerformance(ctx)
		return
	})
	g.Go(func() (err error) {
		info, err = h.services.Predictions.ModelInfo(ctx)
		return
	})
	g.Go(func() (err error) {
		state, err = h.services.Monitoring.Status(ctx)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return fiber.Map{
		"model_performance": perf,
		"model":             info,
		"deployment":        state,
	}, nil
}
