package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/prostate-cdss-server/internal/domain"
)

// TNMStage normalizes and validates raw T/N/M tokens and, when PSA and
// Grade Group are supplied, derives the AJCC 8th Edition prognostic stage
// group. Invalid tokens yield OK=false with the accepted set in the error;
// no fault escapes so callers can keep evaluating other patients.
func (c *Classifier) TNMStage(rawT, rawN, rawM string, psa *float64, gradeGroup *int) *domain.StagingResult {
	t, err := NormalizeT(rawT)
	if err != nil {
		return &domain.StagingResult{OK: false, Error: err.(*domain.ValidationError)}
	}
	n, err := NormalizeN(rawN)
	if err != nil {
		return &domain.StagingResult{OK: false, Error: err.(*domain.ValidationError)}
	}
	m, err := NormalizeM(rawM)
	if err != nil {
		return &domain.StagingResult{OK: false, Error: err.(*domain.ValidationError)}
	}

	result := &domain.StagingResult{
		OK:           true,
		T:            t,
		TDescription: domain.TDescriptions[t],
		N:            n,
		NDescription: domain.NDescriptions[n],
		M:            m,
		MDescription: domain.MDescriptions[m],
		Summary:      fmt.Sprintf("%s %s %s", t, n, m),
	}

	if psa != nil && gradeGroup != nil {
		stage, desc, criteria, perr := c.PrognosticStage(t, n, m, *psa, *gradeGroup)
		if perr != nil {
			result.OK = false
			result.Error = perr.(*domain.ValidationError)
			return result
		}
		result.PrognosticStage = stage
		result.PrognosticStageDescription = desc
		result.PrognosticCriteria = criteria
	}

	c.logger.WithFields(logrus.Fields{
		"tnm":              result.Summary,
		"prognostic_stage": string(result.PrognosticStage),
	}).Debug("TNM staging complete")

	return result
}

// PrognosticStage derives the AJCC 8th Edition prognostic stage group from
// already-normalized categories. Precedence runs highest to lowest: any M1
// variant is IVB, N1 with M0 is IVA, Grade Group 5 is IIIC, T3-T4 is IIIB,
// then the PSA and Grade Group splits for the stage II and I groups. NX
// makes staging indeterminate regardless of other inputs.
func (c *Classifier) PrognosticStage(t domain.TCategory, n domain.NCategory, m domain.MCategory, psa float64, gradeGroup int) (domain.PrognosticStage, string, string, error) {
	if psa < 0 {
		return "", "", "", &domain.ValidationError{Field: "PSA", Value: fmt.Sprintf("%.2f", psa), Message: "must be a non-negative number"}
	}
	if gradeGroup < 1 || gradeGroup > 5 {
		return "", "", "", &domain.ValidationError{
			Field: "Grade Group", Value: fmt.Sprintf("%d", gradeGroup),
			Allowed: []string{"1", "2", "3", "4", "5"},
		}
	}

	criteria := fmt.Sprintf("%s, %s, %s, PSA %.1f, GG%d", t, n, m, psa, gradeGroup)

	if n == domain.NX {
		return domain.StageUnclassifiable,
			"N stage unknown (NX); AJCC prognostic stage requires definitive N staging",
			criteria, nil
	}

	type prognosticRule struct {
		when  func() bool
		stage domain.PrognosticStage
		desc  string
	}
	rules := []prognosticRule{
		{func() bool { return m.IsMetastatic() }, domain.StageIVB, "Metastatic disease"},
		{func() bool { return n == domain.N1 }, domain.StageIVA, "Regional lymph node involvement"},
		{func() bool { return gradeGroup == 5 }, domain.StageIIIC, "Grade Group 5 (Gleason 9-10)"},
		{func() bool { return t.IsT3ToT4() && gradeGroup <= 4 }, domain.StageIIIB, "Locally advanced (extraprostatic or seminal vesicle invasion)"},
		{func() bool { return t.IsT1ToT2() && psa >= 20 && gradeGroup <= 4 }, domain.StageIIIA, "High PSA (>=20 ng/mL)"},
		{func() bool { return t.IsT1ToT2() && psa < 20 && (gradeGroup == 3 || gradeGroup == 4) }, domain.StageIIC, "Intermediate-unfavorable Grade Group"},
		{func() bool { return t.IsT1ToT2() && psa < 20 && gradeGroup == 2 }, domain.StageIIB, "Grade Group 2 (Gleason 3+4=7)"},
		{func() bool { return gradeGroup == 1 && t.IsT1ToT2A() && psa >= 10 && psa < 20 }, domain.StageIIA, "Intermediate PSA with low-grade cancer"},
		{func() bool { return gradeGroup == 1 && (t == domain.T2B || t == domain.T2C) && psa < 20 }, domain.StageIIA, "Bilateral disease with low-grade cancer"},
		{func() bool { return t.IsT1ToT2A() && psa < 10 && gradeGroup == 1 }, domain.StageI, "Localized low-risk disease"},
	}

	for _, r := range rules {
		if r.when() {
			return r.stage, r.desc, criteria, nil
		}
	}

	return domain.StageUnclassifiable, "Does not fit standard prognostic categories", criteria, nil
}
