/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// ExportFileName is the fixed name of the downloadable report artifact.
const ExportFileName = "blood_report_analysis.pdf"

// Page layout constants, in millimetres on A4 portrait.
const (
	pdfLeftMargin  = 20.0
	pdfIndent      = 25.0
	pdfTopMargin   = 20.0
	pdfBottomLimit = 250.0
	pdfLineStep    = 10.0
	pdfCenterX     = 105.0

	pdfFont = "Helvetica"
)

// pageCursor tracks the vertical write position of the exporter. All
// itemized sections share the same overflow rule: once a write advances
// past the bottom limit, the next write starts a fresh page at the top
// margin.
type pageCursor struct {
	y float64
}

func (pc *pageCursor) wouldOverflow() bool {
	return pc.y > pdfBottomLimit
}

// advance moves the cursor down and reports whether the next write needs
// a fresh page.
func (pc *pageCursor) advance(step float64) bool {
	pc.y += step
	return pc.wouldOverflow()
}

func (pc *pageCursor) reset() {
	pc.y = pdfTopMargin
}

// WritePDF renders the analysis as the downloadable report document. The
// document mirrors the on-screen report: patient details, test results
// table, predictions and recommendations, with a disclaimer footer.
func WritePDF(w io.Writer, a *Analysis, generatedAt time.Time) error {
	pdf := buildPDF(a, generatedAt)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write report pdf: %w", err)
	}
	return nil
}

func buildPDF(a *Analysis, generatedAt time.Time) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFooterFunc(func() {
		pdf.SetFont(pdfFont, "", 10)
		pdf.SetTextColor(100, 100, 100)
		centerText(pdf, 280, "Note: This report is generated automatically and should not replace professional medical advice.")
		centerText(pdf, 285, "Consult your healthcare provider for proper diagnosis and treatment.")
		pdf.SetTextColor(0, 0, 0)
	})
	pdf.AddPage()

	cur := &pageCursor{}
	nextLine := func(step float64) {
		if cur.advance(step) {
			pdf.AddPage()
			cur.reset()
		}
	}
	sectionTitle := func(title string) {
		pdf.SetFont(pdfFont, "", 14)
		nextLine(pdfLineStep)
		pdf.Text(pdfLeftMargin, cur.y, title)
		nextLine(pdfLineStep)
		pdf.SetFont(pdfFont, "", 12)
	}

	// Title and generation date.
	pdf.SetFont(pdfFont, "B", 20)
	centerText(pdf, 20, "Blood Report Analysis")
	pdf.SetFont(pdfFont, "", 12)
	centerText(pdf, 30, "Generated on: "+generatedAt.Format("January 2, 2006"))

	// Patient details.
	pdf.SetFont(pdfFont, "", 14)
	pdf.Text(pdfLeftMargin, 45, "Patient Details:")
	pdf.SetFont(pdfFont, "", 12)
	pdf.Text(pdfLeftMargin, 55, "Gender: "+a.GenderLabel())
	pdf.Text(pdfLeftMargin, 65, fmt.Sprintf("Age: %d", a.Age))
	if a.ReportID != "" {
		pdf.Text(pdfLeftMargin, 75, "Report ID: "+a.ReportID)
	}

	// Test results table with fixed columns.
	pdf.SetFont(pdfFont, "", 14)
	pdf.Text(pdfLeftMargin, 90, "Test Results:")

	cur.y = 100
	pdf.SetFont(pdfFont, "", 12)
	pdf.Text(20, cur.y, "Test")
	pdf.Text(70, cur.y, "Value")
	pdf.Text(100, cur.y, "Normal Range")
	pdf.Text(150, cur.y, "Status")
	nextLine(pdfLineStep)

	for _, entry := range a.Analysis {
		pdf.Text(20, cur.y, tr(entry.Name))
		pdf.Text(70, cur.y, entry.Result.FormatValue())
		pdf.Text(100, cur.y, tr(entry.Result.ReferenceRange))
		pdf.Text(150, cur.y, entry.Result.StatusLabel())
		nextLine(pdfLineStep)
	}

	// Predictions: bold label, two-decimal percentage.
	sectionTitle("ML Predictions:")
	for _, p := range a.Predictions {
		pdf.SetFont(pdfFont, "B", 12)
		pdf.Text(pdfLeftMargin, cur.y, tr(p.Label)+":")
		pdf.SetFont(pdfFont, "", 12)
		pdf.Text(90, cur.y, p.FormatPercent())
		nextLine(pdfLineStep)
	}

	// Recommendations: bold title, optional description, bulleted items.
	sectionTitle("Recommendations:")
	for _, rec := range a.Recommendations {
		pdf.SetFont(pdfFont, "B", 12)
		pdf.Text(pdfLeftMargin, cur.y, tr(rec.Title))
		pdf.SetFont(pdfFont, "", 12)
		nextLine(pdfLineStep)

		if rec.Description != "" {
			pdf.Text(pdfIndent, cur.y, tr(rec.Description))
			nextLine(pdfLineStep)
		}

		for _, item := range rec.Items {
			pdf.Text(pdfIndent, cur.y, tr("• "+item))
			nextLine(pdfLineStep)
		}

		nextLine(5)
	}

	return pdf
}

func centerText(pdf *fpdf.Fpdf, y float64, s string) {
	pdf.Text(pdfCenterX-pdf.GetStringWidth(s)/2, y, s)
}
