package upstream

import (
	"context"
	"fmt"
	"sync"

	"agriloan-portal/internal/core/domain"
)

// DistrictsAPI wraps the /districts/* endpoints. District reference data
// changes rarely, so the full list is cached in memory until ClearCache.
type DistrictsAPI struct {
	client *Client

	mu     sync.Mutex
	cached []domain.District
}

// NewDistrictsAPI creates the districts façade.
func NewDistrictsAPI(client *Client) *DistrictsAPI {
	return &DistrictsAPI{client: client}
}

// Districts lists all districts, serving from cache when warm.
func (d *DistrictsAPI) Districts(ctx context.Context) ([]domain.District, error) {
	d.mu.Lock()
	if d.cached != nil {
		out := make([]domain.District, len(d.cached))
		copy(out, d.cached)
		d.mu.Unlock()
		return out, nil
	}
	d.mu.Unlock()

	var districts []domain.District
	if err := d.client.Get(ctx, "/districts/", &districts); err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.cached = districts
	d.mu.Unlock()
	return districts, nil
}

// District fetches one district by ID.
func (d *DistrictsAPI) District(ctx context.Context, districtID string) (*domain.District, error) {
	var district domain.District
	if err := d.client.Get(ctx, fmt.Sprintf("/districts/%s", districtID), &district); err != nil {
		return nil, err
	}
	return &district, nil
}

// ClearCache drops the cached district list.
func (d *DistrictsAPI) ClearCache() {
	d.mu.Lock()
	d.cached = nil
	d.mu.Unlock()
}
