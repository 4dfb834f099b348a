package upstream

import (
	"context"
	"fmt"

	"agriloan-portal/internal/core/domain"
)

// PredictionsAPI wraps the /predictions/* endpoints of the ML service.
type PredictionsAPI struct {
	client *Client
}

// NewPredictionsAPI creates the predictions façade.
func NewPredictionsAPI(client *Client) *PredictionsAPI {
	return &PredictionsAPI{client: client}
}

// Predict scores a single loan request.
func (p *PredictionsAPI) Predict(ctx context.Context, req domain.PredictionRequest) (*domain.PredictionResponse, error) {
	var resp domain.PredictionResponse
	if err := p.client.Post(ctx, "/predictions/predict", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PredictAndUpdate scores an existing application and writes the predicted
// amount back to it upstream.
func (p *PredictionsAPI) PredictAndUpdate(ctx context.Context, applicationID string) (*domain.Application, error) {
	var app domain.Application
	path := fmt.Sprintf("/predictions/predict-and-update/%s", applicationID)
	if err := p.client.Post(ctx, path, nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// BatchPredict scores many requests in one call.
func (p *PredictionsAPI) BatchPredict(ctx context.Context, reqs []domain.PredictionRequest) ([]domain.PredictionResponse, error) {
	var resps []domain.PredictionResponse
	if err := p.client.Post(ctx, "/predictions/batch-predict", reqs, &resps); err != nil {
		return nil, err
	}
	return resps, nil
}

// PendingApplications lists applications still waiting for a prediction.
func (p *PredictionsAPI) PendingApplications(ctx context.Context) ([]domain.Application, error) {
	var apps []domain.Application
	if err := p.client.Get(ctx, "/predictions/pending-applications", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ProcessPendingBatch asks the service to score everything pending.
func (p *PredictionsAPI) ProcessPendingBatch(ctx context.Context) (map[string]interface{}, error) {
	var result map[string]interface{}
	if err := p.client.Post(ctx, "/predictions/process-pending-batch", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ModelInfo describes the model currently serving predictions.
func (p *PredictionsAPI) ModelInfo(ctx context.Context) (*domain.ModelInfo, error) {
	var info domain.ModelInfo
	if err := p.client.Get(ctx, "/predictions/model-info", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ReloadModel reloads the model from its artifact store.
func (p *PredictionsAPI) ReloadModel(ctx context.Context) error {
	return p.client.Post(ctx, "/predictions/reload-model", nil, nil)
}

// History lists past predictions for one farmer.
func (p *PredictionsAPI) History(ctx context.Context, farmerID string) ([]domain.PredictionResponse, error) {
	var history []domain.PredictionResponse
	path := fmt.Sprintf("/predictions/prediction-history/%s", farmerID)
	if err := p.client.Get(ctx, path, &history); err != nil {
		return nil, err
	}
	return history, nil
}
