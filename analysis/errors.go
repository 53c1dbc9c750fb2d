/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

import "errors"

var (
	// ErrRequestFailed covers transport failures and non-success responses
	// from the analysis service.
	ErrRequestFailed = errors.New("analysis request failed")

	// ErrBaseURLRequired is returned when no service URL is configured.
	ErrBaseURLRequired = errors.New("analysis service URL is required (set via --analysis-url or ANALYSIS_URL env var)")
)
