/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package report

import "errors"

var (
	// ErrInvalidAge rejects ages that are empty, non-numeric, fractional or
	// outside 1-120.
	ErrInvalidAge = errors.New("age must be a whole number between 1 and 120")

	// ErrInvalidGender rejects unknown gender categories.
	ErrInvalidGender = errors.New("gender must be male or female")

	// ErrNoResultsEntered rejects submissions where every test field was
	// left blank.
	ErrNoResultsEntered = errors.New("at least one test result is required")

	// ErrInvalidTestValue rejects non-blank test fields that do not parse
	// as numbers.
	ErrInvalidTestValue = errors.New("test values must be numeric")

	errExpectedJSONObject = errors.New("expected a JSON object")
)
