package service

import (
	"github.com/sirupsen/logrus"

	"github.com/prostate-cdss-server/internal/domain"
)

// EAURisk assigns the five-tier EAU risk group. Locally advanced disease
// (T3-T4 or N1) dominates; high-risk localized (Grade Group >=4, PSA >20,
// or T2c) comes next; then low risk requires all three of Grade Group 1,
// PSA <10, and T1a-T2a. What remains is intermediate, split unfavorable
// (Grade Group 3, or Grade Group 2 with PSA >=10) versus favorable.
func (c *Classifier) EAURisk(snap *domain.ClinicalSnapshot) (domain.EAURiskGroup, *domain.RuleVerdict) {
	if missing := requireFields(snap, "psa", "grade_group"); len(missing) > 0 {
		return domain.EAUUnclassifiable, &domain.RuleVerdict{
			Class:       string(domain.EAUUnclassifiable),
			MissingData: missing,
		}
	}

	psa := *snap.PSA
	gg := *snap.GradeGroup
	t := snap.T

	rules := []stageRule{
		{
			criterion: "Locally advanced: T3a/T3b/T4 or N1",
			when:      func() bool { return t.IsT3ToT4() || snap.N == domain.N1 },
			class:     string(domain.EAUHighRiskLocallyAdv),
		},
		{
			criterion: "High-risk localized: Grade Group >=4, PSA >20, or T2c",
			when:      func() bool { return gg >= 4 || psa > 20 || t == domain.T2C },
			class:     string(domain.EAUHighRiskLocalized),
		},
		{
			criterion: "Low risk: Grade Group 1, PSA <10, and T1a-T2a",
			when:      func() bool { return gg == 1 && psa < 10 && t.IsT1ToT2A() },
			class:     string(domain.EAULow),
		},
		{
			criterion: "Unfavorable intermediate: Grade Group 3, or Grade Group 2 with PSA >=10",
			when:      func() bool { return gg == 3 || (gg == 2 && psa >= 10) },
			class:     string(domain.EAUIntermediateUnfav),
		},
	}

	verdict := runCascade(rules, string(domain.EAUIntermediateFav))
	group := domain.EAURiskGroup(verdict.Class)
	if group == domain.EAUIntermediateFav && len(verdict.CriteriaMet) == 0 {
		verdict.AddMet("Remaining intermediate presentation (favorable)")
	}

	c.logger.WithFields(logrus.Fields{
		"risk_group":  string(group),
		"psa":         psa,
		"grade_group": gg,
		"t_category":  string(t),
	}).Debug("EAU risk classification complete")

	return group, verdict
}
