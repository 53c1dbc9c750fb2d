// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	htmltemplate "html/template"
	"net/http"
	"strings"
	"testing"

	flamegoTemplate "github.com/flamego/template"

	"github.com/humaidq/hemascope/report"
)

func TestResultsWithoutStoredReport(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	tmpl := &templateStub{}
	f := newResultsTestApp(s, tmpl, flamegoTemplate.Data{}, Options{})

	rec := performGET(t, f, "/results")

	assertRedirect(t, rec, "/enter-report")

	if tmpl.called {
		t.Fatal("expected no template rendered without a stored report")
	}
}

func TestResultsWithIncompleteStoredReport(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	s.Set(report.SessionKey, report.Analysis{Gender: report.GenderFemale})

	tmpl := &templateStub{}
	f := newResultsTestApp(s, tmpl, flamegoTemplate.Data{}, Options{})

	rec := performGET(t, f, "/results")

	assertRedirect(t, rec, "/enter-report")
}

func TestResults(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	report.PutReport(s, sampleAnalysis())

	tmpl := &templateStub{}
	data := flamegoTemplate.Data{}
	f := newResultsTestApp(s, tmpl, data, Options{})

	rec := performGET(t, f, "/results")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if tmpl.name != "results" || tmpl.status != http.StatusOK {
		t.Fatalf("expected results template with status 200, got name=%q status=%d", tmpl.name, tmpl.status)
	}

	result, ok := data["Report"].(*report.Analysis)
	if !ok {
		t.Fatal("expected Report data to carry the stored analysis")
	}

	if result.Gender != report.GenderFemale || result.Age != 35 {
		t.Fatalf("unexpected report details: gender=%q age=%d", result.Gender, result.Age)
	}

	if len(result.Analysis) != 2 || result.Analysis[0].Name != "Hemoglobin" {
		t.Fatalf("unexpected analysis rows: %v", result.Analysis)
	}

	if data["HasAbnormalities"] != true {
		t.Fatal("expected HasAbnormalities set for a report with a low value")
	}

	if _, ok := data["ShowAbnormalities"]; ok {
		t.Fatal("expected no abnormalities section when the option is off")
	}

	chart, ok := data["PredictionChart"].(htmltemplate.HTML)
	if !ok {
		t.Fatal("expected PredictionChart data to carry rendered chart markup")
	}

	if !strings.Contains(string(chart), "Anemia") {
		t.Fatal("expected the chart markup to include the prediction labels")
	}
}

func TestResultsShowAbnormalities(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	sample := sampleAnalysis()
	sample.Summary = "1 of 2 tests outside the reference range."
	report.PutReport(s, sample)

	tmpl := &templateStub{}
	data := flamegoTemplate.Data{}
	f := newResultsTestApp(s, tmpl, data, Options{ShowAbnormalities: true})

	performGET(t, f, "/results")

	if data["ShowAbnormalities"] != true {
		t.Fatal("expected the abnormalities section enabled")
	}

	abnormal, ok := data["Abnormalities"].([]report.TestEntry)
	if !ok {
		t.Fatal("expected Abnormalities data to carry the flagged entries")
	}

	if len(abnormal) != 1 || abnormal[0].Name != "Hemoglobin" {
		t.Fatalf("unexpected abnormal entries: %v", abnormal)
	}

	if data["Summary"] != sample.Summary {
		t.Fatalf("expected summary %q, got %v", sample.Summary, data["Summary"])
	}
}

func TestResultsRepeatable(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	report.PutReport(s, sampleAnalysis())

	for i := 0; i < 3; i++ {
		tmpl := &templateStub{}
		data := flamegoTemplate.Data{}
		f := newResultsTestApp(s, tmpl, data, Options{})

		rec := performGET(t, f, "/results")

		if rec.Code != http.StatusOK {
			t.Fatalf("render %d: expected status 200, got %d", i, rec.Code)
		}

		result, ok := data["Report"].(*report.Analysis)
		if !ok || len(result.Analysis) != 2 {
			t.Fatalf("render %d: stored report lost or truncated", i)
		}
	}
}

func TestPredictionChart(t *testing.T) {
	t.Parallel()

	html, err := predictionChart(report.Predictions{
		{Label: "Normal", Percent: 82.35},
		{Label: "Anemia", Percent: 17.65},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"Normal", "Anemia", "Prediction Confidence"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected chart markup to contain %q", want)
		}
	}
}
