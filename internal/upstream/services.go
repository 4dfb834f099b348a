package upstream

import "time"

// Services aggregates every façade over one shared client. Constructed once
// at process start and passed by reference to consumers.
type Services struct {
	Auth         *AuthAPI
	Users        *UsersAPI
	Farmers      *FarmersAPI
	LoanOfficers *LoanOfficersAPI
	Supervisors  *SupervisorsAPI
	Admin        *AdminAPI
	Districts    *DistrictsAPI
	Predictions  *PredictionsAPI
	Monitoring   *MonitoringAPI

	client *Client
}

// NewServices builds the façade set over a single upstream client.
func NewServices(baseURL string, timeout time.Duration, tokens TokenSource, notify Notifier) *Services {
	client := NewClient(baseURL, timeout, tokens, notify)
	return &Services{
		Auth:         NewAuthAPI(client),
		Users:        NewUsersAPI(client),
		Farmers:      NewFarmersAPI(client),
		LoanOfficers: NewLoanOfficersAPI(client),
		Supervisors:  NewSupervisorsAPI(client),
		Admin:        NewAdminAPI(client),
		Districts:    NewDistrictsAPI(client),
		Predictions:  NewPredictionsAPI(client),
		Monitoring:   NewMonitoringAPI(client),
		client:       client,
	}
}

// ClearCaches drops every façade-level cache.
func (s *Services) ClearCaches() {
	s.Districts.ClearCache()
}
