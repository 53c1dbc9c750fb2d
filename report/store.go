/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package report

import (
	"encoding/gob"

	"github.com/flamego/session"
)

// SessionKey is the session slot carrying the latest analysis from the
// submission flow to the results and export flows. The submission handler
// is the only writer; results and export handlers only read. Each
// successful submission fully replaces the previous value.
const SessionKey = "bloodReportData"

func init() {
	// Register Analysis with gob for session serialization
	gob.Register(Analysis{})
}

// PutReport stores the analysis result for the current session.
func PutReport(s session.Session, a *Analysis) {
	s.Set(SessionKey, *a)
}

// GetReport returns the stored analysis for the current session. The
// boolean is false when nothing usable is stored: absent, wrong-typed and
// structurally incomplete payloads are all treated as "no session", never
// as an error.
func GetReport(s session.Session) (*Analysis, bool) {
	stored, ok := s.Get(SessionKey).(Analysis)
	if !ok || !stored.Complete() {
		return nil, false
	}
	return &stored, true
}
