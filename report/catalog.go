/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package report

import (
	"strconv"

	"github.com/elliotchance/orderedmap/v3"
)

// RefRange is an inclusive numeric reference interval. prec is the
// number of decimals both bounds are displayed with, so "12.0 - 15.5"
// keeps its trailing zero.
type RefRange struct {
	Min  float64
	Max  float64
	prec int
}

func (r RefRange) String() string {
	return strconv.FormatFloat(r.Min, 'f', r.prec, 64) + " - " + strconv.FormatFloat(r.Max, 'f', r.prec, 64)
}

// Default display ranges for cells without an explicit category-specific
// range (the hemoglobin adult ranges).
var (
	defaultMaleRange   = RefRange{Min: 13.5, Max: 17.5, prec: 1}
	defaultFemaleRange = RefRange{Min: 12.0, Max: 15.5, prec: 1}
)

// BloodTest describes one entry on the report form. Tests either carry a
// single unisex range or a pair of gender-specific ranges. Medical
// correctness of the ranges themselves is the analysis service's concern;
// these only drive the form display.
type BloodTest struct {
	Key    string // form field identifier, matches the service's test keys
	Name   string
	Units  string
	Male   *RefRange
	Female *RefRange
	Unisex *RefRange
}

// GenderSpecific reports whether the displayed range depends on the
// selected gender category.
func (t BloodTest) GenderSpecific() bool {
	return t.Unisex == nil
}

// DisplayRange returns the reference range shown for the selected gender,
// falling back to the hardcoded defaults when no explicit range exists
// for the category. Selecting the same gender twice yields the same text.
func (t BloodTest) DisplayRange(gender string) string {
	if t.Unisex != nil {
		return t.Unisex.String()
	}

	if gender == GenderFemale {
		if t.Female != nil {
			return t.Female.String()
		}
		return defaultFemaleRange.String()
	}

	if t.Male != nil {
		return t.Male.String()
	}
	return defaultMaleRange.String()
}

// MaleRange returns the male display range with fallback, for data
// attributes on range cells.
func (t BloodTest) MaleRange() string {
	if t.Male != nil {
		return t.Male.String()
	}
	return defaultMaleRange.String()
}

// FemaleRange returns the female display range with fallback.
func (t BloodTest) FemaleRange() string {
	if t.Female != nil {
		return t.Female.String()
	}
	return defaultFemaleRange.String()
}

// rng builds a range displayed with whole-number bounds; rng1 displays
// both bounds with one decimal.
func rng(min, max float64) *RefRange {
	return &RefRange{Min: min, Max: max}
}

func rng1(min, max float64) *RefRange {
	return &RefRange{Min: min, Max: max, prec: 1}
}

// catalog holds the form's blood tests in display order.
var catalog = orderedmap.NewOrderedMap[string, BloodTest]()

func init() {
	for _, t := range []BloodTest{
		{Key: "Hemoglobin", Name: "Hemoglobin", Units: "g/dL", Male: rng1(13.5, 17.5), Female: rng1(12.0, 15.5)},
		{Key: "RBC", Name: "Red Blood Cells", Units: "million cells/μL", Male: rng1(4.5, 5.9), Female: rng1(4.0, 5.2)},
		{Key: "HCT", Name: "Hematocrit", Units: "%", Male: rng(40, 50), Female: rng(36, 46)},
		{Key: "MCV", Name: "Mean Corpuscular Volume", Units: "fL", Unisex: rng(80, 100)},
		{Key: "MCH", Name: "Mean Corpuscular Hemoglobin", Units: "pg", Unisex: rng(27, 33)},
		{Key: "MCHC", Name: "Mean Corpuscular Hemoglobin Concentration", Units: "g/dL", Unisex: rng(32, 36)},
		{Key: "RDW-CV", Name: "Red Cell Distribution Width (CV)", Units: "%", Unisex: rng1(11.5, 14.5)},
		{Key: "RDW-SD", Name: "Red Cell Distribution Width (SD)", Units: "fL", Unisex: rng(39, 46)},
		{Key: "WBC", Name: "White Blood Cells", Units: "×10³/μL", Unisex: rng1(4.0, 11.0)},
		{Key: "NEU%", Name: "Neutrophils", Units: "%", Unisex: rng(40, 70)},
		{Key: "LYM%", Name: "Lymphocytes", Units: "%", Unisex: rng(20, 40)},
		{Key: "MON%", Name: "Monocytes", Units: "%", Unisex: rng(2, 10)},
		{Key: "EOS%", Name: "Eosinophils", Units: "%", Unisex: rng(0, 6)},
		{Key: "BAS%", Name: "Basophils", Units: "%", Unisex: rng(0, 2)},
		{Key: "LYM#", Name: "Lymphocyte Count", Units: "×10³/μL", Unisex: rng1(1.0, 4.0)},
		{Key: "GRA#", Name: "Granulocyte Count", Units: "×10³/μL", Unisex: rng1(1.8, 7.0)},
		{Key: "PLT", Name: "Platelets", Units: "×10³/μL", Unisex: rng(150, 450)},
		{Key: "ESR", Name: "Erythrocyte Sedimentation Rate", Units: "mm/hr", Male: rng(0, 15), Female: rng(0, 20)},
	} {
		catalog.Set(t.Key, t)
	}
}

// Catalog returns the blood tests in form display order.
func Catalog() []BloodTest {
	tests := make([]BloodTest, 0, catalog.Len())
	for _, t := range catalog.AllFromFront() {
		tests = append(tests, t)
	}
	return tests
}

// LookupTest returns the catalog entry for a test key.
func LookupTest(key string) (BloodTest, bool) {
	return catalog.Get(key)
}
