// Package daemon fetches running-model snapshots from an Ollama-compatible
// daemon over its /api/ps endpoint.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/modelwatch/internal/domain"
	"github.com/bnema/modelwatch/internal/format"
	"github.com/bnema/modelwatch/internal/ports"
)

const stoppingSentinel = "Stopping"

type psDetails struct {
	Family        string   `json:"family"`
	Families      []string `json:"families"`
	ParameterSize string   `json:"parameter_size"`
}

type psModel struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	SizeVRAM  int64     `json:"size_vram"`
	ExpiresAt string    `json:"expires_at"`
	Details   psDetails `json:"details"`
}

type psResponse struct {
	Models []psModel `json:"models"`
}

type Client struct {
	statusURL  string
	httpClient *http.Client
	clock      ports.Clock
	zone       *time.Location
}

var _ ports.ModelSource = (*Client)(nil)

func NewClient(host string, port int, timeout time.Duration, clock ports.Clock) *Client {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Client{
		statusURL:  fmt.Sprintf("http://%s:%d/api/ps", host, port),
		httpClient: &http.Client{Timeout: timeout},
		clock:      clock,
		zone:       time.Local,
	}
}

// Fetch performs one status request and maps the payload to descriptors.
// Transport failures (including timeouts) surface as ErrDaemonUnreachable,
// unexpected statuses and undecodable bodies as ErrMalformedResponse.
func (c *Client) Fetch(ctx context.Context) ([]domain.ModelDescriptor, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.statusURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build status request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrDaemonUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %s", domain.ErrMalformedResponse, resp.Status)
	}

	var payload psResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode status body: %v", domain.ErrMalformedResponse, err)
	}

	descriptors := make([]domain.ModelDescriptor, 0, len(payload.Models))
	for _, model := range payload.Models {
		descriptors = append(descriptors, c.toDescriptor(model))
	}

	return descriptors, nil
}

func (c *Client) toDescriptor(model psModel) domain.ModelDescriptor {
	return domain.ModelDescriptor{
		Name:          model.Name,
		Families:      familiesLabel(model.Details),
		ParameterSize: model.Details.ParameterSize,
		Size:          format.Size(model.Size),
		CPUGPUSplit:   format.SplitMemory(model.Size, model.SizeVRAM).Display,
		ExpiresAt:     c.expiration(model.ExpiresAt),
	}
}

func familiesLabel(details psDetails) string {
	if len(details.Families) > 0 {
		return strings.Join(details.Families, ", ")
	}
	if details.Family != "" {
		return details.Family
	}
	return "Unknown"
}

func (c *Client) expiration(raw string) *domain.Expiration {
	if raw == "" {
		return nil
	}

	if raw == stoppingSentinel {
		return &domain.Expiration{
			Local:    "Stopping...",
			Relative: "Process is stopping",
		}
	}

	expiresAt, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return &domain.Expiration{
			Local:    "Invalid date",
			Relative: "Unknown",
		}
	}

	return &domain.Expiration{
		Local:    format.DateTime(expiresAt, c.zone),
		Relative: format.Until(expiresAt, c.clock.Now()),
	}
}
