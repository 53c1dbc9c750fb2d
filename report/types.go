/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Gender categories accepted by the analysis service.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// StatusNormal is the in-range status produced by the analysis service.
// Anything else ("low", "high", ...) counts as abnormal.
const StatusNormal = "normal"

// PredictionNormal is the label the analysis service uses for the
// all-clear prediction. The exact-match comparison is a naming contract
// with the service, not a numeric threshold.
const PredictionNormal = "Normal"

// PatientInput is a validated form submission. It exists only for the
// duration of a single analysis request and is never stored.
type PatientInput struct {
	Gender     string             `json:"gender" validate:"required,oneof=male female"`
	Age        int                `json:"age" validate:"required,gte=1,lte=120"`
	TestValues map[string]float64 `json:"testResults" validate:"required,min=1"`
}

// TestResult is one analyzed lab value as returned by the analysis
// service. Condition and symptoms are only populated for out-of-range
// values.
type TestResult struct {
	Name           string  `json:"name"`
	Value          float64 `json:"value"`
	Units          string  `json:"units"`
	ReferenceRange string  `json:"reference_range"`
	Status         string  `json:"status"`
	Condition      string  `json:"condition"`
	Symptoms       string  `json:"symptoms"`
}

// Abnormal reports whether the value fell outside its reference range.
func (r TestResult) Abnormal() bool {
	return r.Status != StatusNormal
}

// StatusLabel returns the uppercased status for display.
func (r TestResult) StatusLabel() string {
	return strings.ToUpper(r.Status)
}

// FormatValue renders the measured value without trailing zeros.
func (r TestResult) FormatValue() string {
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

// TestEntry pairs a test identifier with its analyzed result.
type TestEntry struct {
	Name   string
	Result TestResult
}

// TestResults holds analyzed tests in the order the analysis service
// produced them. The service emits a JSON object; decoding preserves the
// document order instead of going through an unordered map.
type TestResults []TestEntry

func (t *TestResults) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read analysis object: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errExpectedJSONObject
	}

	out := make(TestResults, 0)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read analysis key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return errExpectedJSONObject
		}

		var result TestResult
		if err := dec.Decode(&result); err != nil {
			return fmt.Errorf("decode analysis entry %q: %w", key, err)
		}
		out = append(out, TestEntry{Name: key, Result: result})
	}

	*t = out
	return nil
}

// Prediction is one condition probability from the analysis service.
type Prediction struct {
	Label   string
	Percent float64
}

// Normal reports whether this is the service's all-clear prediction.
func (p Prediction) Normal() bool {
	return p.Label == PredictionNormal
}

// FormatPercent renders the probability with exactly two decimals and a
// literal percent suffix.
func (p Prediction) FormatPercent() string {
	return fmt.Sprintf("%.2f%%", p.Percent)
}

// Predictions holds model predictions in service order.
type Predictions []Prediction

func (p *Predictions) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read predictions object: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errExpectedJSONObject
	}

	out := make(Predictions, 0)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read prediction key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return errExpectedJSONObject
		}

		var percent float64
		if err := dec.Decode(&percent); err != nil {
			return fmt.Errorf("decode prediction %q: %w", key, err)
		}
		out = append(out, Prediction{Label: key, Percent: percent})
	}

	*p = out
	return nil
}

// Recommendation is a titled, optionally described group of advisory
// items tied to the overall analysis.
type Recommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Items       []string `json:"items"`
}

// Analysis is the complete interpretation returned by the analysis
// service for one submission. It is written once per successful
// submission, replacing any previous result, and is read-only afterwards.
type Analysis struct {
	ReportID        string           `json:"-"`
	Gender          string           `json:"gender"`
	Age             int              `json:"age"`
	Analysis        TestResults      `json:"analysis"`
	Predictions     Predictions      `json:"ml_predictions"`
	Recommendations []Recommendation `json:"recommendations"`
	Summary         string           `json:"summary"`
}

// GenderLabel returns the display form of the gender category.
func (a *Analysis) GenderLabel() string {
	if a.Gender == GenderMale {
		return "Male"
	}
	return "Female"
}

// HasAbnormalities reports whether any analyzed test is out of range.
func (a *Analysis) HasAbnormalities() bool {
	for _, entry := range a.Analysis {
		if entry.Result.Abnormal() {
			return true
		}
	}
	return false
}

// AbnormalEntries returns the out-of-range tests in service order.
func (a *Analysis) AbnormalEntries() []TestEntry {
	var abnormal []TestEntry
	for _, entry := range a.Analysis {
		if entry.Result.Abnormal() {
			abnormal = append(abnormal, entry)
		}
	}
	return abnormal
}

// Complete reports whether the stored payload is structurally usable.
// Results pages treat an incomplete payload the same as a missing one
// and redirect back to the entry form rather than erroring.
func (a *Analysis) Complete() bool {
	return a != nil && a.Gender != "" && a.Age > 0 && len(a.Analysis) > 0
}
