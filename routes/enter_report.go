/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"context"
	"errors"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/humaidq/hemascope/report"
)

// Analyzer is the submission controller's view of the analysis service.
type Analyzer interface {
	Analyze(ctx context.Context, input *report.PatientInput) (*report.Analysis, error)
}

// submitGroup collapses concurrent submissions from the same session into
// a single in-flight analysis request.
var submitGroup singleflight.Group

// EnterReportForm renders the blood report entry form.
func EnterReportForm(c flamego.Context, t template.Template, data template.Data) {
	data["Tests"] = report.Catalog()
	data["DefaultGender"] = report.GenderMale
	data["IsEnterReport"] = true

	t.HTML(http.StatusOK, "enter_report")
}

// SubmitReport handles the report form submission: validation, the call to
// the analysis service, the session handoff and the redirect to the
// results page. Any failure re-renders the form with an inline error and
// leaves the user on the entry page in a re-submittable state.
func SubmitReport(c flamego.Context, s session.Session, a Analyzer, t template.Template, data template.Data) {
	if err := c.Request().ParseForm(); err != nil {
		logger.Error("Failed to parse report form", "error", err)
		renderEntryForm(t, data, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	form := c.Request().Form
	fields := make(map[string]string)
	for _, test := range report.Catalog() {
		fields[test.Key] = form.Get(test.Key)
	}

	input, err := report.ParsePatientInput(form.Get("age"), form.Get("gender"), fields)
	if err != nil {
		data["FormData"] = form
		renderEntryForm(t, data, http.StatusBadRequest, validationMessage(err))
		return
	}

	result, err := analyzeOnce(c.Request().Context(), a, s.ID(), input)
	if err != nil {
		logger.Error("Analysis request failed", "error", err)
		data["FormData"] = form
		renderEntryForm(t, data, http.StatusBadGateway, "Failed to analyze report. Please try again.")
		return
	}

	result.ReportID = uuid.NewString()
	report.PutReport(s, result)

	SetSuccessFlash(s, "Report analyzed successfully")
	c.Redirect("/results", http.StatusSeeOther)
}

func analyzeOnce(ctx context.Context, a Analyzer, sessionID string, input *report.PatientInput) (*report.Analysis, error) {
	v, err, _ := submitGroup.Do(sessionID, func() (interface{}, error) {
		return a.Analyze(ctx, input)
	})
	if err != nil {
		return nil, err
	}

	// Joined callers all receive the same value from Do. Each caller
	// mutates its result afterwards, so hand out a copy.
	res := *v.(*report.Analysis)
	return &res, nil
}

func renderEntryForm(t template.Template, data template.Data, status int, errMessage string) {
	data["Tests"] = report.Catalog()
	data["DefaultGender"] = report.GenderMale
	data["IsEnterReport"] = true
	data["Error"] = errMessage

	t.HTML(status, "enter_report")
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, report.ErrInvalidAge):
		return "Please enter a valid age between 1 and 120"
	case errors.Is(err, report.ErrNoResultsEntered):
		return "Please enter at least one test result"
	case errors.Is(err, report.ErrInvalidTestValue):
		return "Test values must be numeric"
	case errors.Is(err, report.ErrInvalidGender):
		return "Please select a gender"
	default:
		return "Invalid report submission"
	}
}
