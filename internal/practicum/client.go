// Package practicum implements the client for the Practicum homework
// statuses API: a single authorized GET with a time cursor, strict response
// shape checking, and mapping of review statuses to user-facing verdicts.
package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apperrors "github.com/afanasev-ilia/check-status-homework-bot/internal/errors"
)

// Client queries the homework statuses endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	logger     *slog.Logger
}

// NewClient creates a Practicum API client for the given endpoint and token.
func NewClient(endpoint, token string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		token:      token,
		logger:     logger.With("component", "practicum_client"),
	}
}

// GetStatuses performs a single GET against the statuses endpoint with
// fromDate as the lower bound of the query window. It returns the decoded
// body without checking the documented shape; that is CheckResponse's job.
func (c *Client) GetStatuses(ctx context.Context, fromDate int64) (*StatusesResponse, error) {
	req, err := c.buildRequest(ctx, fromDate)
	if err != nil {
		return nil, apperrors.NewTransportError("failed to build request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewTransportError("request to homework API failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, apperrors.NewUnexpectedStatusError(
			fmt.Sprintf("homework API returned status %d, expected 200", resp.StatusCode))
	}

	var statuses StatusesResponse
	if err := json.NewDecoder(resp.Body).Decode(&statuses); err != nil {
		return nil, apperrors.NewMalformedResponseError("failed to decode homework API response", err)
	}

	c.logger.Debug("Fetched homework statuses",
		"from_date", fromDate,
		"homeworks", len(statuses.Homeworks))

	return &statuses, nil
}

// buildRequest creates the GET request with the cursor parameter and the
// OAuth authorization header.
func (c *Client) buildRequest(ctx context.Context, fromDate int64) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	query := url.Values{}
	query.Set("from_date", strconv.FormatInt(fromDate, 10))
	req.URL.RawQuery = query.Encode()

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "OAuth "+c.token)

	return req, nil
}
