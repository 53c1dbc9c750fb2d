// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	flamegoTemplate "github.com/flamego/template"
	"github.com/google/uuid"

	"github.com/humaidq/hemascope/report"
)

type testSession struct {
	mu    sync.Mutex
	id    string
	data  map[interface{}]interface{}
	flash interface{}
}

func newTestSession() *testSession {
	// Unique IDs keep per-session single-flight isolated across tests.
	return &testSession{
		id:   uuid.NewString(),
		data: make(map[interface{}]interface{}),
	}
}

func (s *testSession) ID() string {
	return s.id
}

func (s *testSession) RegenerateID(http.ResponseWriter, *http.Request) error {
	return nil
}

func (s *testSession) Get(key interface{}) interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key]
}

func (s *testSession) Set(key, val interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = val
}

func (s *testSession) SetFlash(val interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash = val
}

func (s *testSession) Flash() interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flash
}

func (s *testSession) Delete(key interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

func (s *testSession) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[interface{}]interface{})
}

func (s *testSession) Encode() ([]byte, error) {
	return nil, nil
}

func (s *testSession) HasChanged() bool {
	return true
}

type templateStub struct {
	called bool
	status int
	name   string
}

func (s *templateStub) HTML(status int, name string) {
	s.called = true
	s.status = status
	s.name = name
}

type stubAnalyzer struct {
	mu        sync.Mutex
	calls     int
	lastInput *report.PatientInput
	result    *report.Analysis
	err       error
}

func (a *stubAnalyzer) Analyze(_ context.Context, input *report.PatientInput) (*report.Analysis, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.calls++
	a.lastInput = input

	if a.err != nil {
		return nil, a.err
	}

	out := *a.result
	return &out, nil
}

// blockingAnalyzer holds every call until release is closed, so a test
// can keep one analysis in flight while more submissions arrive.
type blockingAnalyzer struct {
	entered chan struct{}
	release chan struct{}
	calls   int32
	result  *report.Analysis
}

func newBlockingAnalyzer(result *report.Analysis) *blockingAnalyzer {
	return &blockingAnalyzer{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
		result:  result,
	}
}

func (a *blockingAnalyzer) Analyze(_ context.Context, _ *report.PatientInput) (*report.Analysis, error) {
	atomic.AddInt32(&a.calls, 1)

	select {
	case a.entered <- struct{}{}:
	default:
	}

	<-a.release

	out := *a.result
	return &out, nil
}

func sampleAnalysis() *report.Analysis {
	return &report.Analysis{
		Gender: report.GenderFemale,
		Age:    35,
		Analysis: report.TestResults{
			{Name: "Hemoglobin", Result: report.TestResult{Name: "Hemoglobin", Value: 11.0, Units: "g/dL", ReferenceRange: "12.0-15.5", Status: "low", Condition: "Anemia", Symptoms: "Fatigue"}},
			{Name: "WBC", Result: report.TestResult{Name: "White Blood Cells", Value: 6.0, ReferenceRange: "4.0-11.0", Status: "normal"}},
		},
		Predictions: report.Predictions{
			{Label: "Normal", Percent: 82.35},
			{Label: "Anemia", Percent: 17.65},
		},
		Recommendations: []report.Recommendation{
			{Title: "For Anemia", Description: "Low hemoglobin may indicate anemia.", Items: []string{"Increase iron-rich foods"}},
			{Title: "General Health", Items: []string{"Maintain a balanced diet and regular exercise"}},
		},
	}
}

func newEnterReportTestApp(s session.Session, a Analyzer, tmpl flamegoTemplate.Template, data flamegoTemplate.Data) *flamego.Flame {
	f := flamego.New()
	f.Use(func(c flamego.Context) {
		c.MapTo(s, (*session.Session)(nil))
		c.MapTo(a, (*Analyzer)(nil))
		c.MapTo(tmpl, (*flamegoTemplate.Template)(nil))
		c.Map(data)
		c.Next()
	})

	f.Get("/enter-report", func(c flamego.Context, t flamegoTemplate.Template, d flamegoTemplate.Data) {
		EnterReportForm(c, t, d)
	})
	f.Post("/enter-report", func(c flamego.Context, sess session.Session, an Analyzer, t flamegoTemplate.Template, d flamegoTemplate.Data) {
		SubmitReport(c, sess, an, t, d)
	})

	return f
}

func newResultsTestApp(s session.Session, tmpl flamegoTemplate.Template, data flamegoTemplate.Data, opts Options) *flamego.Flame {
	f := flamego.New()
	f.Use(func(c flamego.Context) {
		c.MapTo(s, (*session.Session)(nil))
		c.MapTo(tmpl, (*flamegoTemplate.Template)(nil))
		c.Map(data)
		c.Map(opts)
		c.Next()
	})

	f.Get("/results", func(c flamego.Context, sess session.Session, t flamegoTemplate.Template, d flamegoTemplate.Data, o Options) {
		Results(c, sess, t, d, o)
	})
	f.Get("/results/export", func(c flamego.Context, sess session.Session) {
		ExportReport(c, sess)
	})

	return f
}

func performFormPOST(t *testing.T, f *flamego.Flame, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	return rec
}

func performGET(t *testing.T, f *flamego.Flame, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	return rec
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, wantLocation string) {
	t.Helper()

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	if got := rec.Header().Get("Location"); got != wantLocation {
		t.Fatalf("expected redirect %q, got %q", wantLocation, got)
	}
}
