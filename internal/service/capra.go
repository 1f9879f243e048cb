package service

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/prostate-cdss-server/internal/domain"
)

// capraSGleasonPoints maps pathologic Gleason notation to CAPRA-S points.
// Both "a+b" and summed forms are accepted. Read-only after initialization.
var capraSGleasonPoints = map[string]int{
	"3+3": 0, "6": 0,
	"3+4": 1, "7a": 1,
	"4+3": 2, "7b": 2,
	"4+4": 3, "8": 3,
	"4+5": 3, "5+4": 3, "5+3": 3, "3+5": 3,
	"5+5": 3, "9": 3, "10": 3,
}

// CAPRA computes the pre-treatment CAPRA score (0-10). Each factor
// contributes a fixed integer from disjoint threshold bands, and the
// per-factor breakdown is returned for auditability. Band cut-points:
// total <=2 Low, <=5 Intermediate, else High.
func (c *Classifier) CAPRA(psa float64, primaryGleason, secondaryGleason int, t domain.TCategory, pctPositiveCores float64, age int) *domain.ScoreResult {
	result := &domain.ScoreResult{}

	switch {
	case psa <= 6:
		addFactor(result, "psa", 0)
	case psa <= 10:
		addFactor(result, "psa", 1)
	case psa <= 20:
		addFactor(result, "psa", 2)
	case psa <= 30:
		addFactor(result, "psa", 3)
	default:
		addFactor(result, "psa", 4)
	}

	switch {
	case primaryGleason >= 4:
		addFactor(result, "gleason", 3)
	case secondaryGleason >= 4:
		addFactor(result, "gleason", 1)
	default:
		addFactor(result, "gleason", 0)
	}

	if t == domain.T3A {
		addFactor(result, "t_stage", 1)
	} else {
		addFactor(result, "t_stage", 0)
	}

	if pctPositiveCores >= 34 {
		addFactor(result, "cores", 1)
	} else {
		addFactor(result, "cores", 0)
	}

	if age >= 50 {
		addFactor(result, "age", 1)
	} else {
		addFactor(result, "age", 0)
	}

	result.RiskGroup = scoreBand(result.Score)

	c.logger.WithFields(logrus.Fields{
		"score":      result.Score,
		"risk_group": string(result.RiskGroup),
	}).Debug("CAPRA scoring complete")

	return result
}

// CAPRAS computes the post-prostatectomy CAPRA-S score (0-12). The
// pathologic Gleason string goes through a fixed lookup table; notations the
// table does not recognize score 0 and attach an explicit warning rather
// than passing silently.
func (c *Classifier) CAPRAS(preopPSA float64, pathGleason string, marginPositive, ece, svi, lni bool) *domain.ScoreResult {
	result := &domain.ScoreResult{}

	switch {
	case preopPSA <= 6:
		addFactor(result, "psa", 0)
	case preopPSA <= 10:
		addFactor(result, "psa", 1)
	case preopPSA <= 20:
		addFactor(result, "psa", 2)
	default:
		addFactor(result, "psa", 3)
	}

	gs := strings.ToLower(strings.ReplaceAll(pathGleason, " ", ""))
	points, known := capraSGleasonPoints[gs]
	addFactor(result, "gleason", points)
	if !known {
		result.Warnings = append(result.Warnings,
			"Unrecognized pathologic Gleason notation "+pathGleason+" scored 0 points; verify against the CAPRA-S rubric")
	}

	if marginPositive {
		addFactor(result, "margin", 2)
	} else {
		addFactor(result, "margin", 0)
	}
	if ece {
		addFactor(result, "ece", 1)
	} else {
		addFactor(result, "ece", 0)
	}
	if svi {
		addFactor(result, "svi", 2)
	} else {
		addFactor(result, "svi", 0)
	}
	if lni {
		addFactor(result, "lni", 1)
	} else {
		addFactor(result, "lni", 0)
	}

	result.RiskGroup = scoreBand(result.Score)

	c.logger.WithFields(logrus.Fields{
		"score":      result.Score,
		"risk_group": string(result.RiskGroup),
	}).Debug("CAPRA-S scoring complete")

	return result
}

func addFactor(r *domain.ScoreResult, factor string, points int) {
	r.Breakdown = append(r.Breakdown, domain.FactorPoints{Factor: factor, Points: points})
	r.Score += points
}

// scoreBand maps a CAPRA or CAPRA-S total to its fixed risk band.
func scoreBand(score int) domain.ScoreBand {
	switch {
	case score <= 2:
		return domain.BandLow
	case score <= 5:
		return domain.BandIntermediate
	default:
		return domain.BandHigh
	}
}
