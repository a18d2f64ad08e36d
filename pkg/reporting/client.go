// Package reporting provides a client for the remote building-report API.
package reporting

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"go.uber.org/zap"

	"github.com/btcbarkeep/ainareports/pkg/apperrors"
)

// DefaultTimeout is the maximum time to wait for reporting API responses.
const DefaultTimeout = 30 * time.Second

// Config holds reporting API connection settings.
type Config struct {
	// BaseURL is the reporting API base URL.
	BaseURL string
	// Token is the bearer token for authentication, empty when the API is
	// open.
	Token string
}

// Client provides access to the building-report API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new reporting API client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger.Named("reporting"),
	}
}

// GetBuildingReport fetches the nested report document for a building slug.
// A 404 from the API and an unrecognizable response shape both surface as
// apperrors.ErrNotFound to the caller; the shape mismatch is logged first
// since it indicates upstream drift rather than a missing building.
func (c *Client) GetBuildingReport(ctx context.Context, slug string) (*BuildingReportData, error) {
	endpoint, err := buildURL(c.baseURL, "api", "v1", "buildings", slug, "report")
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Fetching building report",
		zap.String("url", endpoint),
		zap.String("slug", slug))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call reporting API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Reporting API returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("slug", slug))
		return nil, fmt.Errorf("reporting API returned status %d", resp.StatusCode)
	}

	report, shape, err := decodeReport(body)
	if err != nil {
		c.logger.Warn("Reporting API response shape not recognized",
			zap.String("slug", slug),
			zap.Error(err))
		return nil, err
	}

	c.logger.Debug("Got building report",
		zap.String("slug", slug),
		zap.String("shape", string(shape)),
		zap.Int("units", len(report.Units)),
		zap.Int("events", len(report.Events)))

	return report, nil
}

// buildURL constructs a URL by parsing the base and joining path segments.
func buildURL(baseURL string, pathSegments ...string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	// Join all path segments
	segments := append([]string{u.Path}, pathSegments...)
	u.Path = path.Join(segments...)

	return u.String(), nil
}
