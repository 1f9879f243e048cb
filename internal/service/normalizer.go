// Package service implements the rule cascades: input normalization, the
// NCCN/EAU/AJCC classifiers, the CAPRA point-score engines, and the
// recurrence and salvage-radiotherapy advisors. Every cascade is an ordered
// sequence of rules evaluated top-to-bottom, returning at the first match,
// so rule order encodes clinical precedence.
package service

import (
	"strings"

	"github.com/prostate-cdss-server/internal/domain"
)

// NormalizeT canonicalizes a raw T-category string: uppercase, leading
// "c"/"p" (clinical/pathologic) prefix stripped, composite "a/b" notation
// resolved to the higher sub-stage. Returns a ValidationError naming the
// offending token and the accepted set when the result is not in the closed
// enumeration.
func NormalizeT(raw string) (domain.TCategory, error) {
	token := strings.ToUpper(strings.TrimSpace(raw))

	// "cT2a" / "pT3b" -> "T2A" / "T3B"
	if len(token) > 1 && (token[0] == 'C' || token[0] == 'P') && token[1] == 'T' {
		token = token[1:]
	}

	// Composite notation like "T2B/C" or "T3A/T3B": take the higher stage.
	if idx := strings.IndexByte(token, '/'); idx >= 0 {
		first, second := token[:idx], token[idx+1:]
		if len(second) == 1 {
			// "T2B/C" -> second candidate "T2C"
			second = first[:len(first)-1] + second
		}
		a := domain.TCategory(first)
		b := domain.TCategory(second)
		if !a.IsValid() || !b.IsValid() {
			return "", domain.NewValidationError("T category", raw, domain.ValidTCategories())
		}
		if tCategoryRank(b) > tCategoryRank(a) {
			return b, nil
		}
		return a, nil
	}

	t := domain.TCategory(token)
	if !t.IsValid() {
		return "", domain.NewValidationError("T category", raw, domain.ValidTCategories())
	}
	return t, nil
}

// NormalizeN canonicalizes a raw N-category string.
func NormalizeN(raw string) (domain.NCategory, error) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	if len(token) > 1 && (token[0] == 'C' || token[0] == 'P') && token[1] == 'N' {
		token = token[1:]
	}
	n := domain.NCategory(token)
	if !n.IsValid() {
		return "", domain.NewValidationError("N category", raw, domain.ValidNCategories())
	}
	return n, nil
}

// NormalizeM canonicalizes a raw M-category string.
func NormalizeM(raw string) (domain.MCategory, error) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	if len(token) > 1 && (token[0] == 'C' || token[0] == 'P') && token[1] == 'M' {
		token = token[1:]
	}
	m := domain.MCategory(token)
	if !m.IsValid() {
		return "", domain.NewValidationError("M category", raw, domain.ValidMCategories())
	}
	return m, nil
}

// tCategoryRank orders T categories by extent for composite resolution.
func tCategoryRank(t domain.TCategory) int {
	for i, v := range domain.ValidTCategories() {
		if v == string(t) {
			return i
		}
	}
	return -1
}
