package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/prostate-cdss-server/internal/domain"
)

// NCCNRisk assigns the eight-tier NCCN risk group. Metastatic status
// dominates nodal status, which dominates the local T/grade/PSA rules;
// within the localized tiers the cascade checks Very High before High before
// the intermediate splits, so the first matching rule is always the most
// severe applicable one.
//
// Requires PSA and Grade Group; without them the verdict is
// "Unable to classify" with the missing fields listed.
func (c *Classifier) NCCNRisk(snap *domain.ClinicalSnapshot) (domain.NCCNRiskGroup, *domain.RuleVerdict) {
	if missing := requireFields(snap, "psa", "grade_group"); len(missing) > 0 {
		return domain.NCCNUnclassifiable, &domain.RuleVerdict{
			Class:       string(domain.NCCNUnclassifiable),
			MissingData: missing,
		}
	}

	psa := *snap.PSA
	gg := *snap.GradeGroup
	t := snap.T
	pctPositive := snap.PercentPositiveCores()
	positiveCores := 0
	if snap.PositiveCores != nil {
		positiveCores = *snap.PositiveCores
	}
	// Absent involvement and density default conservatively: a patient
	// without them can be Low but never Very Low.
	maxInvolvement := 100.0
	if snap.MaxCoreInvolvement != nil {
		maxInvolvement = *snap.MaxCoreInvolvement
	}
	psaDensity := 0.2
	if snap.PSADensity != nil {
		psaDensity = *snap.PSADensity
	}

	intermediateFactors := countTrue(
		t == domain.T2B || t == domain.T2C,
		gg == 2 || gg == 3,
		psa >= 10 && psa <= 20,
	)
	highRiskFactors := countTrue(
		t == domain.T3A,
		gg >= 4,
		psa > 20,
	)

	rules := []stageRule{
		{
			criterion: "Any M1 (distant metastasis)",
			when:      func() bool { return snap.M.IsMetastatic() },
			class:     string(domain.NCCNMetastatic),
		},
		{
			criterion: "N1 (regional lymph node metastasis)",
			when:      func() bool { return snap.N == domain.N1 },
			class:     string(domain.NCCNRegional),
		},
		{
			criterion: "T3b or T4",
			when:      func() bool { return t == domain.T3B || t == domain.T4 },
			class:     string(domain.NCCNVeryHigh),
		},
		{
			criterion: "Primary Gleason pattern 5",
			when:      func() bool { return snap.PrimaryGleason != nil && *snap.PrimaryGleason == 5 },
			class:     string(domain.NCCNVeryHigh),
		},
		{
			criterion: ">4 positive cores with Grade Group >=4",
			when:      func() bool { return positiveCores > 4 && gg >= 4 },
			class:     string(domain.NCCNVeryHigh),
		},
		{
			criterion: ">=2 high-risk factors (T3a, Grade Group >=4, PSA >20)",
			when:      func() bool { return highRiskFactors >= 2 },
			class:     string(domain.NCCNVeryHigh),
		},
		{
			criterion: "Exactly 1 high-risk factor",
			when:      func() bool { return highRiskFactors == 1 },
			class:     string(domain.NCCNHigh),
		},
		{
			criterion: ">=2 intermediate factors, Grade Group 3, or >=50% positive cores",
			when:      func() bool { return intermediateFactors >= 2 || gg == 3 || pctPositive >= 50 },
			class:     string(domain.NCCNUnfavorableInt),
		},
		{
			criterion: "Exactly 1 intermediate factor with Grade Group <=2 and <50% positive cores",
			when:      func() bool { return intermediateFactors == 1 && gg <= 2 && pctPositive < 50 },
			class:     string(domain.NCCNFavorableInt),
		},
		{
			criterion: "T1a-T2a, Grade Group 1, PSA <10 (Very Low if T1c, <3 cores, <=50% involvement, density <0.15)",
			when:      func() bool { return t.IsT1ToT2A() && gg == 1 && psa < 10 },
			class:     string(domain.NCCNLow),
		},
	}

	verdict := runCascade(rules, string(domain.NCCNUnclassifiable))
	group := domain.NCCNRiskGroup(verdict.Class)

	// Very Low refines Low for the most indolent presentations.
	if group == domain.NCCNLow &&
		t == domain.T1C && positiveCores < 3 && maxInvolvement <= 50 && psaDensity < 0.15 {
		group = domain.NCCNVeryLow
		verdict.Class = string(group)
		verdict.AddMet("T1c with <3 positive cores, <=50% involvement, PSA density <0.15")
	}

	c.logger.WithFields(logrus.Fields{
		"risk_group":           string(group),
		"psa":                  psa,
		"grade_group":          gg,
		"t_category":           string(t),
		"intermediate_factors": intermediateFactors,
		"high_risk_factors":    highRiskFactors,
	}).Debug("NCCN risk classification complete")

	return group, verdict
}

// requireFields reports which of the named snapshot fields are absent.
func requireFields(snap *domain.ClinicalSnapshot, fields ...string) []string {
	var missing []string
	for _, f := range fields {
		switch f {
		case "psa":
			if snap.PSA == nil {
				missing = append(missing, f)
			}
		case "grade_group":
			if snap.GradeGroup == nil {
				missing = append(missing, f)
			}
		case "age":
			if snap.Age == nil {
				missing = append(missing, f)
			}
		case "ecog":
			if snap.ECOG == nil {
				missing = append(missing, f)
			}
		default:
			missing = append(missing, fmt.Sprintf("unknown field %q", f))
		}
	}
	return missing
}

// countTrue counts how many of the given conditions hold.
func countTrue(conds ...bool) int {
	n := 0
	for _, c := range conds {
		if c {
			n++
		}
	}
	return n
}
