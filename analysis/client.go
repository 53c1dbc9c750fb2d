/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/humaidq/hemascope/logging"
	"github.com/humaidq/hemascope/report"
)

var logger = logging.Logger(logging.SourceAnalysis)

// DefaultTimeout bounds a single analysis round trip. There is no retry:
// a failed attempt is terminal and the user resubmits manually.
const DefaultTimeout = 30 * time.Second

// Client calls the external analysis service. The service owns reference
// ranges, statuses, predictions and recommendation text; this client only
// carries the request/response contract.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the analysis service at baseURL.
func NewClient(baseURL string) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrBaseURLRequired
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}, nil
}

// Analyze submits one validated report and returns the parsed
// interpretation. Transport errors and non-success statuses both map to
// ErrRequestFailed; the failure response body is not interpreted.
func (c *Client) Analyze(ctx context.Context, input *report.PatientInput) (*report.Analysis, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encode analysis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("Analysis request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, resp.Body)
		logger.Warn("Analysis service returned non-success status", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	var out report.Analysis
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode analysis response: %w", err)
	}

	return &out, nil
}
