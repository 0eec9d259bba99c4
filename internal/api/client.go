// Package api implements the HTTP client for the remote expense backend.
//
// Each operation issues exactly one request. There is no retry, caching or
// partial-response recovery: transport failures and non-2xx statuses both
// collapse into ErrRequestFailed wrapped with the operation name, and the
// underlying cause is logged for diagnostics.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"expenseboard/internal/core"
	applog "expenseboard/internal/log"
)

func init() {
	// The backend schema declares amounts as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrRequestFailed is the single error condition surfaced for any failed
// backend call, regardless of whether the transport or the status failed.
var ErrRequestFailed = errors.New("request failed")

// Client talks to the remote expense backend.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	logger     *applog.Logger
}

// NewClient creates a backend client for the given base URL. A nil logger
// falls back to a default api-component logger.
func NewClient(baseURL string, timeout time.Duration, logger *applog.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend URL %q: %w", baseURL, err)
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentAPI)
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    parsed,
		logger:     logger,
	}, nil
}

// List fetches the full expense collection.
func (c *Client) List(ctx context.Context) ([]core.Expense, error) {
	var out []core.Expense
	if err := c.do(ctx, applog.OpList, http.MethodGet, "/expenses", nil, &out); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return out, nil
}

// Create persists a new expense and returns the record with its assigned id.
func (c *Client) Create(ctx context.Context, payload core.ExpensePayload) (core.Expense, error) {
	var out core.Expense
	if err := c.do(ctx, applog.OpCreate, http.MethodPost, "/expenses", payload, &out); err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	return out, nil
}

// Update replaces all fields of an existing expense and returns the
// updated record.
func (c *Client) Update(ctx context.Context, id int64, payload core.ExpensePayload) (core.Expense, error) {
	var out core.Expense
	path := "/expenses/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, applog.OpUpdate, http.MethodPut, path, payload, &out); err != nil {
		return core.Expense{}, fmt.Errorf("update expense %d: %w", id, err)
	}
	return out, nil
}

// Delete removes an expense by id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	path := "/expenses/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, applog.OpDelete, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	return nil
}

// Overall fetches the aggregate snapshot for the dashboard.
func (c *Client) Overall(ctx context.Context) (core.OverallStats, error) {
	var out core.OverallStats
	if err := c.do(ctx, applog.OpOverall, http.MethodGet, "/stats/overall", nil, &out); err != nil {
		return core.OverallStats{}, fmt.Errorf("overall stats: %w", err)
	}
	return out, nil
}

// Monthly fetches the per-month breakdown used by the pivot chart.
func (c *Client) Monthly(ctx context.Context) ([]core.MonthBreakdown, error) {
	var out []core.MonthBreakdown
	if err := c.do(ctx, applog.OpMonthly, http.MethodGet, "/stats/monthly_breakdown", nil, &out); err != nil {
		return nil, fmt.Errorf("monthly breakdown: %w", err)
	}
	return out, nil
}

// do runs one request against the backend. body (if non-nil) is JSON
// encoded; out (if non-nil) is decoded from a 2xx response body.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	// JoinPath keeps any path prefix on the configured base URL.
	target := c.baseURL.JoinPath(path)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			c.logger.ErrorContext(ctx, "Encode request body failed",
				applog.FieldOperation, op, applog.FieldError, err)
			return ErrRequestFailed
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		c.logger.ErrorContext(ctx, "Build request failed",
			applog.FieldOperation, op, applog.FieldError, err)
		return ErrRequestFailed
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "Backend request failed",
			applog.FieldOperation, op,
			applog.FieldMethod, method,
			applog.FieldPath, path,
			applog.FieldError, err)
		return ErrRequestFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.ErrorContext(ctx, "Backend returned non-success status",
			applog.FieldOperation, op,
			applog.FieldMethod, method,
			applog.FieldPath, path,
			applog.FieldStatusCode, resp.StatusCode)
		return ErrRequestFailed
	}

	if out == nil {
		return nil
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.ErrorContext(ctx, "Read response body failed",
			applog.FieldOperation, op, applog.FieldError, err)
		return ErrRequestFailed
	}
	if err := json.Unmarshal(payload, out); err != nil {
		c.logger.ErrorContext(ctx, "Decode response body failed",
			applog.FieldOperation, op, applog.FieldError, err)
		return ErrRequestFailed
	}
	return nil
}
