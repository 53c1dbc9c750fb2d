/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/session"

	"github.com/humaidq/hemascope/report"
)

// ExportReport streams the stored analysis as the downloadable PDF
// report. The export trigger only exists on the results page, but the
// handler still guards against a missing session on its own.
func ExportReport(c flamego.Context, s session.Session) {
	result, ok := report.GetReport(s)
	if !ok {
		c.Redirect("/enter-report", http.StatusSeeOther)
		return
	}

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, result, time.Now()); err != nil {
		logger.Error("Failed to generate report PDF", "error", err)
		SetErrorFlash(s, "Failed to generate the PDF export. Please try again.")
		c.Redirect("/results", http.StatusSeeOther)

		return
	}

	headers := c.ResponseWriter().Header()
	headers.Set("Content-Type", "application/pdf")
	headers.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.ExportFileName))
	headers.Set("Content-Length", strconv.Itoa(buf.Len()))
	headers.Set("X-Content-Type-Options", "nosniff")

	c.ResponseWriter().WriteHeader(http.StatusOK)

	if _, err := c.ResponseWriter().Write(buf.Bytes()); err != nil {
		logger.Error("Error writing pdf response", "error", err)
	}
}
