/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/humaidq/hemascope/report"
)

// predictionChart creates a bar chart of prediction confidence
// percentages, in service order.
func predictionChart(predictions report.Predictions) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Prediction Confidence",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "%",
			Max:  100,
		}),
	)

	labels := make([]string, 0, len(predictions))
	values := make([]opts.BarData, 0, len(predictions))
	for _, p := range predictions {
		labels = append(labels, p.Label)
		values = append(values, opts.BarData{Value: p.Percent})
	}

	bar.SetXAxis(labels).AddSeries("Confidence", values)

	// Render to HTML string
	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return "", err
	}

	return buf.String(), nil
}
