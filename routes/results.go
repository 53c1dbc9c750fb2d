/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	htmltemplate "html/template"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/humaidq/hemascope/report"
)

// Results renders the report page from the session-stored analysis. A
// missing or incomplete stored result means there is nothing to show, so
// the user is sent back to the entry form rather than shown an error.
func Results(c flamego.Context, s session.Session, t template.Template, data template.Data, opts Options) {
	result, ok := report.GetReport(s)
	if !ok {
		c.Redirect("/enter-report", http.StatusSeeOther)
		return
	}

	data["Report"] = result
	data["HasAbnormalities"] = result.HasAbnormalities()
	data["IsResults"] = true

	if opts.ShowAbnormalities && result.HasAbnormalities() {
		data["ShowAbnormalities"] = true
		data["Abnormalities"] = result.AbnormalEntries()
		if result.Summary != "" {
			data["Summary"] = result.Summary
		}
	}

	chartHTML, err := predictionChart(result.Predictions)
	if err != nil {
		logger.Error("Failed to render prediction chart", "error", err)
	} else {
		data["PredictionChart"] = htmltemplate.HTML(chartHTML)
	}

	t.HTML(http.StatusOK, "results")
}
