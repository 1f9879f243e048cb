package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/prostate-cdss-server/internal/domain"
)

// BCRResult is the EAU biochemical-recurrence risk assessment after radical
// prostatectomy, including EMBARK trial eligibility.
type BCRResult struct {
	RiskGroup       domain.BCRRiskGroup `json:"risk_group"`
	HighRiskFactors []string            `json:"high_risk_factors"`
	LowRiskCriteria []string            `json:"low_risk_criteria"`

	EmbarkEligible bool   `json:"embark_eligible"`
	EmbarkPSADTMet bool   `json:"embark_psadt_met"`
	EmbarkPSAMet   *bool  `json:"embark_psa_met,omitempty"`
	EmbarkNote     string `json:"embark_note"`
}

// BCRRisk classifies biochemical recurrence risk. Any of PSADT <=12 months
// or Grade Group >=4 is high risk; low risk needs at least two independent
// low-risk criteria (PSADT >12, Grade Group <=3, and optionally time to BCR
// >18 months when supplied); anything else is indeterminate.
//
// EMBARK eligibility requires both PSADT <=9 months and current PSA >=1.0
// ng/mL. Without a PSA value the note says eligibility cannot be determined
// instead of reporting false.
func (c *Classifier) BCRRisk(psadtMonths float64, gradeGroup int, timeToBCRMonths, currentPSA *float64) *BCRResult {
	result := &BCRResult{}

	if psadtMonths <= 12 {
		result.HighRiskFactors = append(result.HighRiskFactors, fmt.Sprintf("PSADT <=12 months (%.1f)", psadtMonths))
	} else {
		result.LowRiskCriteria = append(result.LowRiskCriteria, fmt.Sprintf("PSADT >12 months (%.1f)", psadtMonths))
	}

	if gradeGroup >= 4 {
		result.HighRiskFactors = append(result.HighRiskFactors, fmt.Sprintf("Grade Group %d", gradeGroup))
	} else {
		result.LowRiskCriteria = append(result.LowRiskCriteria, fmt.Sprintf("Grade Group %d", gradeGroup))
	}

	// Time to BCR counts toward low risk only when known and >18 months;
	// a shorter interval is not itself a high-risk factor.
	if timeToBCRMonths != nil && *timeToBCRMonths > 18 {
		result.LowRiskCriteria = append(result.LowRiskCriteria, fmt.Sprintf("Time to BCR >18 months (%.0f)", *timeToBCRMonths))
	}

	switch {
	case len(result.HighRiskFactors) > 0:
		result.RiskGroup = domain.BCRHighRisk
	case len(result.LowRiskCriteria) >= 2:
		result.RiskGroup = domain.BCRLowRisk
	default:
		result.RiskGroup = domain.BCRIndeterminate
	}

	result.EmbarkPSADTMet = psadtMonths <= 9
	psaMet := currentPSA != nil && *currentPSA >= 1.0
	result.EmbarkEligible = result.EmbarkPSADTMet && psaMet
	if currentPSA != nil {
		result.EmbarkPSAMet = &psaMet
	}

	switch {
	case currentPSA == nil:
		result.EmbarkNote = "EMBARK eligibility requires PSA value (PSADT <=9mo AND PSA >=1 ng/mL)"
	case result.EmbarkEligible:
		result.EmbarkNote = fmt.Sprintf("EMBARK eligible: PSADT %.1fmo <=9 AND PSA %.2f >=1 ng/mL", psadtMonths, *currentPSA)
	case result.EmbarkPSADTMet:
		result.EmbarkNote = fmt.Sprintf("PSADT meets EMBARK (%.1fmo <=9), but PSA %.2f <1 ng/mL", psadtMonths, *currentPSA)
	default:
		result.EmbarkNote = fmt.Sprintf("Not EMBARK eligible: PSADT %.1fmo >9 (requires <=9mo)", psadtMonths)
	}

	c.logger.WithFields(logrus.Fields{
		"risk_group":      string(result.RiskGroup),
		"psadt_months":    psadtMonths,
		"grade_group":     gradeGroup,
		"embark_eligible": result.EmbarkEligible,
	}).Debug("BCR risk classification complete")

	return result
}
