// Package geo implements the LocationProvider port over the location
// service's HTTP API. The service fronts the device location source; the
// session treats it as a black box that produces coordinate samples on
// demand.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"driverhub/internal/core/domain/model/kernel"
	"driverhub/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// Client is a location service API client shared by all driver sessions.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a location service client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("location service base URL is required")
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

// ForDriver returns a LocationProvider bound to one driver's device.
func (c *Client) ForDriver(driverID kernel.UUID) ports.LocationProvider {
	return &driverLocationProvider{client: c, driverID: driverID}
}

type driverLocationProvider struct {
	client   *Client
	driverID kernel.UUID
}

type locationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CurrentLocation fetches the driver's current position. A 403 from the
// service maps to ports.ErrLocationPermissionDenied; any other non-2xx
// status is a transient sampling failure.
func (p *driverLocationProvider) CurrentLocation(ctx context.Context) (kernel.Location, error) {
	url := fmt.Sprintf("%s/api/v1/drivers/%s/location", p.client.baseURL, p.driverID.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return kernel.Location{}, err
	}

	resp, err := p.client.httpClient.Do(req)
	if err != nil {
		return kernel.Location{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return kernel.Location{}, ports.ErrLocationPermissionDenied
	case resp.StatusCode != http.StatusOK:
		return kernel.Location{}, fmt.Errorf("location service returned status %d", resp.StatusCode)
	}

	var body locationResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return kernel.Location{}, fmt.Errorf("failed to decode location response: %w", err)
	}

	return kernel.NewLocation(body.Latitude, body.Longitude)
}
