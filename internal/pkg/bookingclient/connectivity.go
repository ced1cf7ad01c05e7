package bookingclient

import (
	"context"
	"net/http"
)

// ConnectivityChecker reports whether the API is reachable before a
// submission is attempted.
type ConnectivityChecker interface {
	Online(ctx context.Context) bool
}

// HealthChecker probes the API health endpoint.
type HealthChecker struct {
	httpClient *http.Client
	url        string
}

// NewHealthChecker creates a checker against baseURL's health endpoint.
func NewHealthChecker(httpClient *http.Client, baseURL string) *HealthChecker {
	return &HealthChecker{httpClient: httpClient, url: baseURL + "/health"}
}

func (c *HealthChecker) Online(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// AlwaysOnline skips the probe. Used when the caller runs on the same
// host as the API.
type AlwaysOnline struct{}

func (AlwaysOnline) Online(context.Context) bool { return true }
