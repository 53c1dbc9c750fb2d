/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ParsePatientInput builds a PatientInput from raw form values. Blank test
// fields are silently dropped from the payload; failures return one of the
// sentinel errors from errors.go and no network request should follow.
func ParsePatientInput(ageRaw, gender string, fields map[string]string) (*PatientInput, error) {
	age, err := parseAge(ageRaw)
	if err != nil {
		return nil, err
	}

	gender = strings.ToLower(strings.TrimSpace(gender))
	if gender != GenderMale && gender != GenderFemale {
		return nil, ErrInvalidGender
	}

	values := make(map[string]float64)
	for name, raw := range fields {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTestValue, name)
		}
		values[name] = value
	}
	if len(values) == 0 {
		return nil, ErrNoResultsEntered
	}

	input := &PatientInput{
		Gender:     gender,
		Age:        age,
		TestValues: values,
	}
	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("patient input validation: %w", err)
	}

	return input, nil
}

func parseAge(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidAge
	}

	age, err := strconv.Atoi(raw)
	if err != nil || age < 1 || age > 120 {
		return 0, ErrInvalidAge
	}

	return age, nil
}
