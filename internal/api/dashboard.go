package api

import (
	"context"
	"net/http"

	"github.com/Meerdlawar/SweetDive/internal/domain"
)

// DashboardStats returns the headline counts and recent orders shown on the
// dashboard.
func (c *Client) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var out domain.DashboardStats
	if err := c.do(ctx, "api.dashboard.stats", http.MethodGet, "/dashboard/stats/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
