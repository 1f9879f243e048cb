// Package psadt derives PSA doubling time from serial PSA measurements by
// log-linear regression, and interprets the result against the fixed
// clinical cut-points (3/6/9/12/15 months).
//
// Clinical requirements per guidelines: at least 3 PSA values over at least
// 90 days, all values >=0.20 ng/mL, and a rising trend.
package psadt

import (
	"fmt"
	"math"
	"sort"
)

const (
	// ln2 converts a log-linear slope into a doubling time.
	ln2 = 0.693
	// daysPerMonth is the mean Gregorian month length.
	daysPerMonth = 30.44

	DefaultMinPSA             = 0.20
	DefaultMinValues          = 3
	DefaultMinObservationDays = 90
)

// Measurement is one (day, PSA) observation. Day is relative to any fixed
// origin; only differences matter.
type Measurement struct {
	Day float64 `json:"day"`
	PSA float64 `json:"psa"`
}

// Options tunes the validation thresholds. The zero value means defaults.
type Options struct {
	RequireRising      bool
	MinPSA             float64
	MinValues          int
	MinObservationDays float64
}

// DefaultOptions returns the guideline thresholds with rising-trend
// validation enabled.
func DefaultOptions() Options {
	return Options{
		RequireRising:      true,
		MinPSA:             DefaultMinPSA,
		MinValues:          DefaultMinValues,
		MinObservationDays: DefaultMinObservationDays,
	}
}

// Result is the regression outcome. OK=false carries a specific Reason;
// no input ever causes a fault. A stable or declining series yields
// OK=true with infinite doubling time.
type Result struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`

	PSADTMonths     float64 `json:"psadt_months,omitempty"`
	PSADTDays       float64 `json:"psadt_days,omitempty"`
	Slope           float64 `json:"slope,omitempty"`
	RSquared        float64 `json:"r_squared,omitempty"`
	NValues         int     `json:"n_values,omitempty"`
	ObservationDays float64 `json:"observation_days,omitempty"`
	Interpretation  string  `json:"interpretation,omitempty"`
}

// Stable reports whether PSA was flat or declining (infinite doubling time).
func (r *Result) Stable() bool { return r.OK && math.IsInf(r.PSADTMonths, 1) }

// Compute runs the log-linear regression over the measurements.
func Compute(values []Measurement, opts Options) *Result {
	if opts.MinPSA == 0 {
		opts.MinPSA = DefaultMinPSA
	}
	if opts.MinValues == 0 {
		opts.MinValues = DefaultMinValues
	}
	if opts.MinObservationDays == 0 {
		opts.MinObservationDays = DefaultMinObservationDays
	}

	if len(values) < opts.MinValues {
		return &Result{OK: false, Reason: fmt.Sprintf("Need >=%d PSA values for PSADT (got %d)", opts.MinValues, len(values))}
	}

	sorted := make([]Measurement, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Day < sorted[j].Day })

	observationDays := sorted[len(sorted)-1].Day - sorted[0].Day
	if observationDays < opts.MinObservationDays {
		return &Result{OK: false, Reason: fmt.Sprintf("Need >=%.0f days observation (got %.0f days)", opts.MinObservationDays, observationDays)}
	}

	for _, m := range sorted {
		if m.PSA <= 0 {
			return &Result{OK: false, Reason: "All PSA values must be >0"}
		}
	}
	for _, m := range sorted {
		if m.PSA < opts.MinPSA {
			return &Result{OK: false, Reason: fmt.Sprintf("All PSA values should be >=%.2f ng/mL (found %.3f)", opts.MinPSA, m.PSA)}
		}
	}

	if opts.RequireRising {
		for i := 0; i < len(sorted)-1; i++ {
			if sorted[i+1].PSA <= sorted[i].PSA {
				return &Result{OK: false, Reason: fmt.Sprintf("PSA values must be rising (PSA[%d]=%.2f >= PSA[%d]=%.2f)", i, sorted[i].PSA, i+1, sorted[i+1].PSA)}
			}
		}
	}

	n := float64(len(sorted))
	var sumT, sumLn, sumT2, sumTLn float64
	for _, m := range sorted {
		ln := math.Log(m.PSA)
		sumT += m.Day
		sumLn += ln
		sumT2 += m.Day * m.Day
		sumTLn += m.Day * ln
	}

	denominator := n*sumT2 - sumT*sumT
	if denominator == 0 {
		return &Result{OK: false, Reason: "Cannot calculate slope (all time values identical)"}
	}
	slope := (n*sumTLn - sumT*sumLn) / denominator

	if slope <= 0 {
		return &Result{
			OK:              true,
			PSADTMonths:     math.Inf(1),
			PSADTDays:       math.Inf(1),
			Slope:           slope,
			NValues:         len(sorted),
			ObservationDays: observationDays,
			Interpretation:  "PSA stable or declining",
		}
	}

	psadtDays := ln2 / slope
	psadtMonths := math.Round(psadtDays/daysPerMonth*10) / 10

	intercept := (sumLn - slope*sumT) / n
	var ssRes, ssTot float64
	meanLn := sumLn / n
	for _, m := range sorted {
		ln := math.Log(m.PSA)
		fit := slope*m.Day + intercept
		ssRes += (ln - fit) * (ln - fit)
		ssTot += (ln - meanLn) * (ln - meanLn)
	}
	rSquared := 0.0
	if ssTot > 0 {
		rSquared = 1 - ssRes/ssTot
	}

	return &Result{
		OK:              true,
		PSADTMonths:     psadtMonths,
		PSADTDays:       math.Round(psadtDays),
		Slope:           slope,
		RSquared:        math.Round(rSquared*1000) / 1000,
		NValues:         len(sorted),
		ObservationDays: observationDays,
		Interpretation:  Interpret(psadtMonths).Interpretation,
	}
}

// Interpretation is one of the six named PSADT risk bands.
type Interpretation struct {
	Interpretation string `json:"interpretation"`
	Detail         string `json:"detail"`
	Recommendation string `json:"recommendation"`
}

// Interpret maps a PSADT in months onto the fixed clinical bands.
func Interpret(months float64) Interpretation {
	switch {
	case months < 3:
		return Interpretation{
			Interpretation: "Extremely high risk",
			Detail:         "PSADT <3 months: PCa mortality ~100%, median survival 5-6 years",
			Recommendation: "Systemic therapy primary; consider intensified treatment",
		}
	case months < 6:
		return Interpretation{
			Interpretation: "Very high risk",
			Detail:         "PSADT <6 months: Rapid progression likely",
			Recommendation: "Consider systemic therapy; if local, intensified approach",
		}
	case months < 9:
		return Interpretation{
			Interpretation: "High risk",
			Detail:         "PSADT <9 months: Meets EMBARK criteria if PSA >=1",
			Recommendation: "Early salvage RT with ADT; consider enzalutamide",
		}
	case months < 12:
		return Interpretation{
			Interpretation: "Moderate-high risk",
			Detail:         "PSADT <12 months: EAU high-risk BCR",
			Recommendation: "Salvage RT with ADT recommended",
		}
	case months < 15:
		return Interpretation{
			Interpretation: "Moderate risk",
			Detail:         "PSADT 12-15 months: Borderline",
			Recommendation: "Salvage RT; ADT duration per other factors",
		}
	default:
		return Interpretation{
			Interpretation: "Favorable",
			Detail:         "PSADT >15 months: Lower risk of progression",
			Recommendation: "Observation may be appropriate; RT alone if treated",
		}
	}
}
