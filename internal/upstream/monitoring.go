package upstream

import "context"

// MonitoringAPI wraps the /monitoring/* endpoints of the ML service.
// Responses are operational read-models passed through untyped.
type MonitoringAPI struct {
	client *Client
}

// NewMonitoringAPI creates the monitoring façade.
func NewMonitoringAPI(client *Client) *MonitoringAPI {
	return &MonitoringAPI{client: client}
}

// Health reports the ML service health.
func (m *MonitoringAPI) Health(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := m.client.Get(ctx, "/monitoring/health", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Metrics reports serving metrics.
func (m *MonitoringAPI) Metrics(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := m.client.Get(ctx, "/monitoring/metrics", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Deploy promotes the candidate model to serving.
func (m *MonitoringAPI) Deploy(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := m.client.Post(ctx, "/monitoring/deploy", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Rollback reverts to the previously deployed model.
func (m *MonitoringAPI) Rollback(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := m.client.Post(ctx, "/monitoring/rollback", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Status reports the current deployment state.
func (m *MonitoringAPI) Status(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := m.client.Get(ctx, "/monitoring/status", &out); err != nil {
		return nil, err
	}
	return out, nil
}
