package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/prostate-cdss-server/internal/domain"
)

// PelvicNodeAdvice recommends whether salvage radiotherapy should include
// the pelvic lymph nodes, per RTOG 0534/SPPORT.
type PelvicNodeAdvice struct {
	Recommendation string   `json:"recommendation"`
	Strength       string   `json:"strength"`
	ReasonsFor     []string `json:"reasons_for_pelvic_nodes"`
	ReasonsAgainst []string `json:"reasons_against"`
	Reference      string   `json:"reference"`
}

// ADTDurationAdvice recommends ADT duration alongside salvage radiotherapy,
// per GETUG-AFU 16, RTOG 9601, and RADICALS-HD.
type ADTDurationAdvice struct {
	Recommendation  string   `json:"recommendation"`
	Duration        string   `json:"duration"`
	Rationale       string   `json:"rationale"`
	HighRiskFactors []string `json:"high_risk_factors"`
	LowRiskFactors  []string `json:"low_risk_factors"`
	Trials          []string `json:"trials_referenced"`
}

// SPPORTResult reports RTOG 0534/SPPORT trial eligibility, criterion by
// criterion.
type SPPORTResult struct {
	Eligible bool            `json:"eligible"`
	Criteria map[string]bool `json:"criteria"`
}

// PelvicNodes accumulates independent reasons for and against pelvic-node
// inclusion and applies a small decision table: any reason for, with ADT in
// use, means include (strongly above PSA 0.5); any reason for without ADT
// downgrades to consider; otherwise prostate bed alone may suffice.
func (c *Classifier) PelvicNodes(preSRTPSA float64, lniBriganti, lniRoach *float64, usingADT bool) *PelvicNodeAdvice {
	advice := &PelvicNodeAdvice{
		Reference: "RTOG 0534/SPPORT showed benefit with PSA >0.35 ng/mL",
	}

	if preSRTPSA > 0.35 {
		advice.ReasonsFor = append(advice.ReasonsFor, fmt.Sprintf("PSA %.2f > 0.35 (SPPORT benefit threshold)", preSRTPSA))
	} else {
		advice.ReasonsAgainst = append(advice.ReasonsAgainst, fmt.Sprintf("PSA %.2f <= 0.35", preSRTPSA))
	}

	if lniRoach != nil && *lniRoach >= 15 {
		advice.ReasonsFor = append(advice.ReasonsFor, fmt.Sprintf("Roach LNI risk %.1f%% >= 15%%", *lniRoach))
	}
	if lniBriganti != nil && *lniBriganti >= 7 {
		advice.ReasonsFor = append(advice.ReasonsFor, fmt.Sprintf("Briganti LNI risk %.1f%% >= 7%%", *lniBriganti))
	}
	if !usingADT {
		advice.ReasonsAgainst = append(advice.ReasonsAgainst, "SPPORT used ADT with pelvic RT")
	}

	switch {
	case len(advice.ReasonsFor) >= 1 && usingADT:
		advice.Recommendation = "Include pelvic nodes"
		if preSRTPSA > 0.5 {
			advice.Strength = "Strong"
		} else {
			advice.Strength = "Moderate"
		}
	case len(advice.ReasonsFor) >= 1:
		advice.Recommendation = "Consider pelvic nodes"
		advice.Strength = "Conditional"
	default:
		advice.Recommendation = "Prostate bed alone may be sufficient"
		advice.Strength = "Conditional"
	}

	c.logger.WithFields(logrus.Fields{
		"recommendation": advice.Recommendation,
		"strength":       advice.Strength,
		"pre_srt_psa":    preSRTPSA,
	}).Debug("Pelvic node recommendation complete")

	return advice
}

// ADTDuration recommends ADT duration with salvage RT. Factor thresholds
// accumulate into for/against lists, then the count of high-risk factors and
// the pre-SRT PSA select the duration tier.
func (c *Classifier) ADTDuration(preSRTPSA float64, gradeGroup int, psadtMonths float64, decipher *float64, svi, lni bool) *ADTDurationAdvice {
	advice := &ADTDurationAdvice{
		Trials: []string{"GETUG-AFU 16", "RTOG 9601", "RADICALS-HD"},
	}

	switch {
	case preSRTPSA >= 1.5:
		advice.HighRiskFactors = append(advice.HighRiskFactors, fmt.Sprintf("PSA >=1.5 (%.2f) - RTOG 9601 strong benefit", preSRTPSA))
	case preSRTPSA >= 0.7:
		advice.HighRiskFactors = append(advice.HighRiskFactors, fmt.Sprintf("PSA 0.7-1.5 (%.2f) - RTOG 9601 moderate benefit", preSRTPSA))
	default:
		advice.LowRiskFactors = append(advice.LowRiskFactors, fmt.Sprintf("PSA <0.7 (%.2f) - potential harm from ADT", preSRTPSA))
	}

	if gradeGroup >= 4 {
		advice.HighRiskFactors = append(advice.HighRiskFactors, fmt.Sprintf("Grade Group %d", gradeGroup))
	} else {
		advice.LowRiskFactors = append(advice.LowRiskFactors, fmt.Sprintf("Grade Group %d", gradeGroup))
	}

	switch {
	case psadtMonths <= 6:
		advice.HighRiskFactors = append(advice.HighRiskFactors, fmt.Sprintf("PSADT <=6 months (%.1f)", psadtMonths))
	case psadtMonths <= 12:
		advice.HighRiskFactors = append(advice.HighRiskFactors, fmt.Sprintf("PSADT 6-12 months (%.1f)", psadtMonths))
	default:
		advice.LowRiskFactors = append(advice.LowRiskFactors, fmt.Sprintf("PSADT >12 months (%.1f)", psadtMonths))
	}

	if decipher != nil {
		if *decipher >= 0.6 {
			advice.HighRiskFactors = append(advice.HighRiskFactors, fmt.Sprintf("Decipher high (%.2f)", *decipher))
		} else if *decipher < 0.45 {
			advice.LowRiskFactors = append(advice.LowRiskFactors, fmt.Sprintf("Decipher low (%.2f)", *decipher))
		}
	}

	if svi {
		advice.HighRiskFactors = append(advice.HighRiskFactors, "Seminal vesicle invasion")
	}
	if lni {
		advice.HighRiskFactors = append(advice.HighRiskFactors, "Lymph node invasion")
	}

	switch {
	case preSRTPSA < 0.7 && len(advice.HighRiskFactors) <= 1:
		advice.Recommendation = "RT alone or observation"
		advice.Duration = "0 months"
		advice.Rationale = "RTOG 9601: No benefit, potential harm in PSA <0.7"
	case len(advice.HighRiskFactors) >= 3 || preSRTPSA >= 1.5:
		advice.Recommendation = "Long-term ADT"
		advice.Duration = "24 months"
		advice.Rationale = "RTOG 9601 + RADICALS-HD support long-term ADT"
	case len(advice.HighRiskFactors) >= 1:
		advice.Recommendation = "Short-term ADT"
		advice.Duration = "4-6 months"
		advice.Rationale = "GETUG-AFU 16 shows PFS/MFS benefit"
	default:
		advice.Recommendation = "RT alone acceptable"
		advice.Duration = "0 months"
		advice.Rationale = "Low-risk profile; ADT toxicity may outweigh benefit"
	}

	c.logger.WithFields(logrus.Fields{
		"recommendation":    advice.Recommendation,
		"duration":          advice.Duration,
		"high_risk_factors": len(advice.HighRiskFactors),
	}).Debug("ADT duration recommendation complete")

	return advice
}

// SPPORTEligibility checks the RTOG 0534/SPPORT inclusion criteria: pT2-pT3,
// Gleason <=9, pre-SRT PSA 0.1-2.0, and N0 or NX nodes. All four must hold.
func (c *Classifier) SPPORTEligibility(t domain.TCategory, gleason int, preSRTPSA float64, n domain.NCategory) *SPPORTResult {
	stageOK := false
	switch t {
	case domain.T2, domain.T2A, domain.T2B, domain.T2C, domain.T3, domain.T3A, domain.T3B:
		stageOK = true
	}

	criteria := map[string]bool{
		"stage":   stageOK,
		"gleason": gleason <= 9,
		"psa":     preSRTPSA >= 0.1 && preSRTPSA <= 2.0,
		"nodes":   n == domain.N0 || n == domain.NX,
	}

	eligible := true
	for _, ok := range criteria {
		if !ok {
			eligible = false
			break
		}
	}

	return &SPPORTResult{Eligible: eligible, Criteria: criteria}
}
