// Package report renders eligibility verdicts as Polish-language clinical
// summaries, the form in which NFZ programme decisions are communicated.
package report

import (
	"fmt"
	"strings"

	"github.com/prostate-cdss-server/internal/eligibility"
)

const (
	maxMetPerDrug      = 5
	maxNotMetPerDrug   = 3
	maxWarningsPerDrug = 2
)

// FormatAbiraterone renders an abiraterone C.87 verdict as a multi-line
// Polish summary.
func FormatAbiraterone(v *eligibility.AbirateroneVerdict) string {
	var b strings.Builder

	if v.Excluded() {
		b.WriteString("❌ WYKLUCZENIE Z PROGRAMU LEKOWEGO\n")
		b.WriteString(strings.Repeat("-", 40))
		for _, excl := range v.Exclusions {
			b.WriteString("\n  • " + excl)
		}
		return b.String()
	}

	if v.Eligible {
		b.WriteString("✅ KWALIFIKUJE SIĘ DO PROGRAMU LEKOWEGO\n")
	} else {
		b.WriteString("❌ NIE KWALIFIKUJE SIĘ DO PROGRAMU LEKOWEGO\n")
	}
	b.WriteString(strings.Repeat("-", 40))

	if v.Indication != "" {
		b.WriteString("\nWskazanie: " + v.Indication)
	}
	if v.Attachment != "" {
		b.WriteString("\nZałącznik: " + v.Attachment)
	}

	if len(v.CriteriaMet) > 0 {
		b.WriteString("\n\nSpełnione kryteria:")
		for _, c := range v.CriteriaMet {
			b.WriteString("\n  ✓ " + c)
		}
	}
	if len(v.CriteriaNotMet) > 0 {
		b.WriteString("\n\nNiespełnione kryteria:")
		for _, c := range v.CriteriaNotMet {
			b.WriteString("\n  ✗ " + c)
		}
	}
	if len(v.Warnings) > 0 {
		b.WriteString("\n\nUwagi:")
		for _, w := range v.Warnings {
			b.WriteString("\n  ⚠ " + w)
		}
	}

	if v.Alternative != "" {
		b.WriteString("\n\nAlternatywa: " + v.Alternative)
	}
	if len(v.TreatmentOptions) > 0 {
		b.WriteString("\n\nOpcje leczenia:")
		for _, opt := range v.TreatmentOptions {
			b.WriteString("\n  • " + opt)
		}
	}
	if v.MaxDuration != "" {
		b.WriteString("\n\nMaksymalny czas leczenia: " + v.MaxDuration)
	}

	return b.String()
}

// FormatB56 renders a multi-drug B.56 summary. Per-drug detail is capped
// so the report stays readable: 5 met criteria, 3 unmet, 2 warnings.
func FormatB56(s *eligibility.B56Summary) string {
	var b strings.Builder

	rule := strings.Repeat("=", 50)
	b.WriteString(rule + "\n")
	b.WriteString("PROGRAM LEKOWY B.56 - RAK STERCZA\n")
	b.WriteString(rule + "\n")
	b.WriteString("\nStan choroby: " + strings.ToUpper(string(s.DiseaseState)) + "\n")

	if len(s.EligibleDrugs) > 0 {
		b.WriteString(fmt.Sprintf("\n✅ KWALIFIKUJE SIĘ DO LEKÓW (%d):\n", len(s.EligibleDrugs)))
		for _, drug := range s.EligibleDrugs {
			b.WriteString("   • " + drug + "\n")
		}
	} else {
		b.WriteString("\n❌ NIE KWALIFIKUJE SIĘ DO ŻADNEGO LEKU\n")
	}

	thin := strings.Repeat("-", 50)
	b.WriteString("\n" + thin + "\n")
	b.WriteString("SZCZEGÓŁY DLA KAŻDEGO LEKU:\n")
	b.WriteString(thin + "\n")

	for _, drug := range s.DrugOrder {
		v := s.DrugResults[drug]
		if v == nil {
			continue
		}
		status := "❌"
		if v.Eligible {
			status = "✅"
		}
		b.WriteString("\n" + status + " " + v.DrugPL + "\n")

		if v.Indication != "" {
			b.WriteString("   Wskazanie: " + v.Indication + "\n")
		}
		if len(v.CriteriaMet) > 0 {
			b.WriteString("   Spełnione:\n")
			for _, c := range capped(v.CriteriaMet, maxMetPerDrug) {
				b.WriteString("     ✓ " + c + "\n")
			}
		}
		if len(v.CriteriaNotMet) > 0 {
			b.WriteString("   Niespełnione:\n")
			for _, c := range capped(v.CriteriaNotMet, maxNotMetPerDrug) {
				b.WriteString("     ✗ " + c + "\n")
			}
		}
		if len(v.Warnings) > 0 {
			b.WriteString("   Uwagi:\n")
			for _, w := range capped(v.Warnings, maxWarningsPerDrug) {
				b.WriteString("     ⚠ " + w + "\n")
			}
		}
		b.WriteString(fmt.Sprintf("   Dawkowanie: %s (%s)\n", v.Dosing.Dose, v.Dosing.Frequency))
	}

	return strings.TrimRight(b.String(), "\n")
}

func capped(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
