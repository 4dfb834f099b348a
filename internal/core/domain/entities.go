package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of user roles reported by the AgriLoan API.
type Role string

const (
	RoleFarmer      Role = "farmer"
	RoleLoanOfficer Role = "loan_officer"
	RoleSupervisor  Role = "supervisor"
	RoleAdmin       Role = "admin"
)

// Roles lists every valid role.
func Roles() []Role {
	return []Role{RoleFarmer, RoleLoanOfficer, RoleSupervisor, RoleAdmin}
}

// ParseRole parses a role string reported by the upstream API.
func ParseRole(s string) (Role, error) {
	switch Role(strings.TrimSpace(s)) {
	case RoleFarmer:
		return RoleFarmer, nil
	case RoleLoanOfficer:
		return RoleLoanOfficer, nil
	case RoleSupervisor:
		return RoleSupervisor, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleLoanOfficer, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

// DashboardPath returns the portal path of the role's dashboard.
// The mapping is total: every valid role has a dashboard.
func (r Role) DashboardPath() string {
	switch r {
	case RoleFarmer:
		return "/dashboard/farmer"
	case RoleLoanOfficer:
		return "/dashboard/loan_officer"
	case RoleSupervisor:
		return "/dashboard/supervisor"
	case RoleAdmin:
		return "/dashboard/admin"
	default:
		return "/dashboard"
	}
}

// District represents reference data for an administrative district.
type District struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code,omitempty"`
	Region string `json:"region,omitempty"`
}

// User is the who-am-I projection returned by the upstream API. It is
// revalidated on every session check and never persisted by the portal.
type User struct {
	ID            string         `json:"id"`
	Email         string         `json:"email"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	PhoneNumber   string         `json:"phone_number"`
	Role          Role           `json:"role"`
	DistrictID    string         `json:"district_id"`
	District      *District      `json:"district,omitempty"`
	FarmerProfile *FarmerProfile `json:"farmer_profile,omitempty"`
}

// HasRole reports whether the user holds any of the given roles.
func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// ApplicationStatus is the lifecycle status of a loan application.
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusApproved    ApplicationStatus = "approved"
	StatusRejected    ApplicationStatus = "rejected"
	StatusUnderReview ApplicationStatus = "under_review"
)

// Application is a loan application as exchanged with the upstream API.
// The portal never mutates one locally; status changes go through the
// review endpoints.
type Application struct {
	ApplicationID      string            `json:"application_id"`
	ApplicationDate    string            `json:"application_date"`
	Status             ApplicationStatus `json:"status"`
	CropType           string            `json:"crop_type"`
	FarmSizeHectares   float64           `json:"farm_size_hectares"`
	PredictedAmountMWK float64           `json:"predicted_amount_mwk"`
	ApprovedAmountMWK  *float64          `json:"approved_amount_mwk,omitempty"`
	FarmerName         string            `json:"farmer_name,omitempty"`
	DistrictName       string            `json:"district_name,omitempty"`
}

// ApplicationInput is a farmer's loan application submission.
type ApplicationInput struct {
	CropTypeID         string  `json:"crop_type_id"`
	FarmSizeHectares   float64 `json:"farm_size_hectares"`
	ExpectedYieldKg    float64 `json:"expected_yield_kg"`
	ExpectedRevenueMWK float64 `json:"expected_revenue_mwk"`
	DistrictID         string  `json:"district_id"`
}

// FarmerProfile is the farmer-facing profile view.
type FarmerProfile struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Address    string   `json:"address"`
	District   string   `json:"district"`
	NationalID string   `json:"national_id"`
	FarmSize   float64  `json:"farm_size"`
	Crops      []string `json:"crops"`
	JoinedDate string   `json:"joined_date"`
}

// YieldHistory is one season's recorded yield for a farmer.
type YieldHistory struct {
	Year        int     `json:"year"`
	Season      string  `json:"season"`
	Crop        string  `json:"crop"`
	YieldAmount float64 `json:"yield_amount"`
	Unit        string  `json:"unit"`
}

// CropType is reference data for a supported crop.
type CropType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// PredictionRequest is the input to the ML prediction service.
type PredictionRequest struct {
	FarmerID           string  `json:"farmer_id"`
	CropTypeID         string  `json:"crop_type_id"`
	FarmSizeHectares   float64 `json:"farm_size_hectares"`
	ExpectedYieldKg    float64 `json:"expected_yield_kg"`
	ExpectedRevenueMWK float64 `json:"expected_revenue_mwk"`
	DistrictID         string  `json:"district_id"`
}

// PredictionResponse is a pure read-model from the ML service; the portal
// never stores it.
type PredictionResponse struct {
	PredictedAmountMWK   float64 `json:"predicted_amount_mwk"`
	PredictionConfidence float64 `json:"prediction_confidence"`
	PredictionDate       string  `json:"prediction_date"`
	FarmerID             string  `json:"farmer_id"`
	CropTypeName         string  `json:"crop_type_name"`
	DistrictName         string  `json:"district_name"`
	RiskScore            float64 `json:"risk_score"`
	Recommendation       string  `json:"recommendation"`
}

// LoginCredentials identifies a user by email or phone number.
type LoginCredentials struct {
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Password    string `json:"password"`
}

// SignupInput is a new-account registration.
type SignupInput struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Password    string `json:"password"`
	Role        Role   `json:"role"`
	DistrictID  string `json:"district_id"`
	NationalID  string `json:"national_id,omitempty"`
	Address     string `json:"address,omitempty"`
}

// ReviewInput is a supervisor's approve/reject decision.
type ReviewInput struct {
	Decision          string   `json:"decision"`
	ApprovedAmountMWK *float64 `json:"approved_amount_mwk,omitempty"`
	Comment           string   `json:"comment,omitempty"`
}

// OfficerStats is the loan officer dashboard summary.
type OfficerStats struct {
	PendingReview    int     `json:"pending_review"`
	ApprovedThisWeek int     `json:"approved_this_week"`
	RejectedThisWeek int     `json:"rejected_this_week"`
	TotalAmountMWK   float64 `json:"total_amount_mwk"`
}

// SupervisorDashboard is the supervisor overview returned upstream.
type SupervisorDashboard struct {
	PendingApprovals int     `json:"pending_approvals"`
	ActiveOfficers   int     `json:"active_officers"`
	ApprovalRate     float64 `json:"approval_rate"`
	TotalDisbursed   float64 `json:"total_disbursed_mwk"`
}

// ModelInfo describes the currently loaded ML model.
type ModelInfo struct {
	Name       string    `json:"name"`
	Version    string    `json:"version"`
	TrainedAt  time.Time `json:"trained_at"`
	Accuracy   float64   `json:"accuracy"`
	FeatureSet []string  `json:"feature_set,omitempty"`
}
