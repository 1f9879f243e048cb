package service

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prostate-cdss-server/internal/domain"
)

func testClassifier() *Classifier {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel) // Suppress logs during testing
	return NewClassifier(logger)
}

func snapshot(psa float64, gg int, t domain.TCategory) *domain.ClinicalSnapshot {
	return &domain.ClinicalSnapshot{PSA: &psa, GradeGroup: &gg, T: t}
}

func withCores(snap *domain.ClinicalSnapshot, positive, total int) *domain.ClinicalSnapshot {
	snap.PositiveCores = &positive
	snap.TotalCores = &total
	return snap
}

func TestNCCNRiskTiers(t *testing.T) {
	c := testClassifier()

	cases := []struct {
		name string
		snap *domain.ClinicalSnapshot
		want domain.NCCNRiskGroup
	}{
		{"metastatic dominates", &domain.ClinicalSnapshot{PSA: domain.Float(4), GradeGroup: domain.Int(1), M: domain.M1B}, domain.NCCNMetastatic},
		{"N1 is regional", &domain.ClinicalSnapshot{PSA: domain.Float(4), GradeGroup: domain.Int(1), N: domain.N1}, domain.NCCNRegional},
		{"T3b is very high", snapshot(4, 1, domain.T3B), domain.NCCNVeryHigh},
		{"two high risk factors is very high", snapshot(25, 4, domain.T1C), domain.NCCNVeryHigh},
		{"single high risk factor is high", snapshot(25, 1, domain.T1C), domain.NCCNHigh},
		{"over 4 positive cores with grade group 4 is very high", withCores(snapshot(4, 4, domain.T1C), 5, 10), domain.NCCNVeryHigh},
		{"grade group 3 is unfavorable intermediate", snapshot(4, 3, domain.T1C), domain.NCCNUnfavorableInt},
		{"two intermediate factors is unfavorable", snapshot(12, 2, domain.T2B), domain.NCCNUnfavorableInt},
		{"half the cores positive is unfavorable", withCores(snapshot(12, 1, domain.T1C), 6, 12), domain.NCCNUnfavorableInt},
		{"one intermediate factor is favorable", snapshot(4, 2, domain.T1C), domain.NCCNFavorableInt},
		{"low risk", snapshot(4.5, 1, domain.T1C), domain.NCCNLow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			group, verdict := c.NCCNRisk(tc.snap)
			assert.Equal(t, tc.want, group)
			assert.Equal(t, string(tc.want), verdict.Class)
		})
	}
}

func TestNCCNVeryLowRefinement(t *testing.T) {
	c := testClassifier()

	snap := snapshot(4.5, 1, domain.T1C)
	snap.PositiveCores = domain.Int(2)
	snap.TotalCores = domain.Int(12)
	snap.MaxCoreInvolvement = domain.Float(30)
	snap.PSADensity = domain.Float(0.1)

	group, _ := c.NCCNRisk(snap)
	assert.Equal(t, domain.NCCNVeryLow, group)
}

func TestNCCNVeryLowRequiresCoreData(t *testing.T) {
	c := testClassifier()

	// Without involvement and density the patient stays Low.
	group, _ := c.NCCNRisk(snapshot(4.5, 1, domain.T1C))
	assert.Equal(t, domain.NCCNLow, group)
}

func TestNCCNMissingRequiredFields(t *testing.T) {
	c := testClassifier()

	group, verdict := c.NCCNRisk(&domain.ClinicalSnapshot{T: domain.T1C})
	assert.Equal(t, domain.NCCNUnclassifiable, group)
	assert.ElementsMatch(t, []string{"psa", "grade_group"}, verdict.MissingData)
}

func TestNCCNPrimaryGleason5IsVeryHigh(t *testing.T) {
	c := testClassifier()

	snap := snapshot(4, 4, domain.T1C)
	snap.PrimaryGleason = domain.Int(5)

	group, _ := c.NCCNRisk(snap)
	assert.Equal(t, domain.NCCNVeryHigh, group)
}

func TestEAURiskTiers(t *testing.T) {
	c := testClassifier()

	cases := []struct {
		name string
		snap *domain.ClinicalSnapshot
		want domain.EAURiskGroup
	}{
		{"T3a is locally advanced", snapshot(4, 1, domain.T3A), domain.EAUHighRiskLocallyAdv},
		{"N1 is locally advanced", &domain.ClinicalSnapshot{PSA: domain.Float(4), GradeGroup: domain.Int(1), T: domain.T2A, N: domain.N1}, domain.EAUHighRiskLocallyAdv},
		{"T2c is high risk localized", snapshot(4, 1, domain.T2C), domain.EAUHighRiskLocalized},
		{"PSA over 20 is high risk localized", snapshot(22, 1, domain.T1C), domain.EAUHighRiskLocalized},
		{"low risk", snapshot(4, 1, domain.T1C), domain.EAULow},
		{"grade group 3 is unfavorable intermediate", snapshot(4, 3, domain.T1C), domain.EAUIntermediateUnfav},
		{"grade group 2 with PSA 12 is unfavorable", snapshot(12, 2, domain.T1C), domain.EAUIntermediateUnfav},
		{"grade group 2 with low PSA is favorable", snapshot(4, 2, domain.T1C), domain.EAUIntermediateFav},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			group, _ := c.EAURisk(tc.snap)
			assert.Equal(t, tc.want, group)
		})
	}
}

func TestEAUMissingRequiredFields(t *testing.T) {
	c := testClassifier()

	group, verdict := c.EAURisk(&domain.ClinicalSnapshot{T: domain.T1C})
	assert.Equal(t, domain.EAUUnclassifiable, group)
	assert.Equal(t, string(domain.EAUUnclassifiable), verdict.Class)
	assert.ElementsMatch(t, []string{"psa", "grade_group"}, verdict.MissingData)
}

func TestTNMStageDescriptions(t *testing.T) {
	c := testClassifier()

	result := c.TNMStage("cT2a", "N0", "M0", nil, nil)
	require.True(t, result.OK)
	assert.Equal(t, domain.T2A, result.T)
	assert.Equal(t, "Tumor involves <=50% of one lobe", result.TDescription)
	assert.Equal(t, "T2A N0 M0", result.Summary)
	assert.Empty(t, result.PrognosticStage)
}

func TestTNMStageInvalidToken(t *testing.T) {
	c := testClassifier()

	result := c.TNMStage("T9", "N0", "M0", nil, nil)
	assert.False(t, result.OK)
	require.NotNil(t, result.Error)
	assert.Equal(t, "T category", result.Error.Field)
}

func TestPrognosticStageGroups(t *testing.T) {
	c := testClassifier()

	cases := []struct {
		name string
		t    domain.TCategory
		n    domain.NCategory
		m    domain.MCategory
		psa  float64
		gg   int
		want domain.PrognosticStage
	}{
		{"M1 is IVB", domain.T1C, domain.N0, domain.M1B, 4, 1, domain.StageIVB},
		{"N1 M0 is IVA", domain.T1C, domain.N1, domain.M0, 4, 1, domain.StageIVA},
		{"grade group 5 is IIIC", domain.T2A, domain.N0, domain.M0, 4, 5, domain.StageIIIC},
		{"T3a is IIIB", domain.T3A, domain.N0, domain.M0, 4, 2, domain.StageIIIB},
		{"PSA 25 localized is IIIA", domain.T2A, domain.N0, domain.M0, 25, 2, domain.StageIIIA},
		{"grade group 3 is IIC", domain.T2A, domain.N0, domain.M0, 8, 3, domain.StageIIC},
		{"grade group 2 is IIB", domain.T2A, domain.N0, domain.M0, 8, 2, domain.StageIIB},
		{"PSA 10-20 low grade is IIA", domain.T1C, domain.N0, domain.M0, 12, 1, domain.StageIIA},
		{"T2b low grade low PSA is IIA", domain.T2B, domain.N0, domain.M0, 8, 1, domain.StageIIA},
		{"low risk is I", domain.T1C, domain.N0, domain.M0, 4, 1, domain.StageI},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stage, _, _, err := c.PrognosticStage(tc.t, tc.n, tc.m, tc.psa, tc.gg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, stage)
		})
	}
}

func TestPrognosticStageNXUnclassifiable(t *testing.T) {
	c := testClassifier()

	stage, desc, _, err := c.PrognosticStage(domain.T1C, domain.NX, domain.M0, 4, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StageUnclassifiable, stage)
	assert.Contains(t, desc, "NX")
}

func TestPrognosticStageRejectsBadInputs(t *testing.T) {
	c := testClassifier()

	_, _, _, err := c.PrognosticStage(domain.T1C, domain.N0, domain.M0, -1, 1)
	assert.Error(t, err)

	_, _, _, err = c.PrognosticStage(domain.T1C, domain.N0, domain.M0, 4, 6)
	assert.Error(t, err)
}

func TestCAPRAScoring(t *testing.T) {
	c := testClassifier()

	// PSA 8 -> 1, primary 4 -> 3, T3a -> 1, 50% cores -> 1, age 66 -> 1.
	result := c.CAPRA(8, 4, 3, domain.T3A, 50, 66)
	assert.Equal(t, 7, result.Score)
	assert.Equal(t, domain.BandHigh, result.RiskGroup)

	// PSA 4 -> 0, Gleason 3+3 -> 0, T1c -> 0, 10% cores -> 0, age 45 -> 0.
	result = c.CAPRA(4, 3, 3, domain.T1C, 10, 45)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, domain.BandLow, result.RiskGroup)

	// Secondary pattern 4 scores 1 when the primary is 3.
	result = c.CAPRA(4, 3, 4, domain.T1C, 10, 45)
	assert.Equal(t, 1, result.Score)
}

func TestCAPRABreakdownSumsToScore(t *testing.T) {
	c := testClassifier()

	result := c.CAPRA(15, 4, 4, domain.T3A, 40, 70)
	sum := 0
	for _, fp := range result.Breakdown {
		sum += fp.Points
	}
	assert.Equal(t, result.Score, sum)
}

func TestCAPRASScoring(t *testing.T) {
	c := testClassifier()

	// PSA 12 -> 2, Gleason 4+3 -> 2, margin -> 2, svi -> 2.
	result := c.CAPRAS(12, "4+3", true, false, true, false)
	assert.Equal(t, 8, result.Score)
	assert.Equal(t, domain.BandHigh, result.RiskGroup)
	assert.Empty(t, result.Warnings)

	// Summed notation and whitespace are accepted.
	result = c.CAPRAS(4, "3 + 4", false, false, false, false)
	assert.Equal(t, 1, result.Score)
	assert.Empty(t, result.Warnings)
}

func TestCAPRASUnknownGleasonWarns(t *testing.T) {
	c := testClassifier()

	result := c.CAPRAS(4, "2+2", false, false, false, false)
	assert.Equal(t, 0, result.Score)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "2+2")
}

func TestBCRRiskGroups(t *testing.T) {
	c := testClassifier()

	// Short PSADT is high risk regardless of grade.
	result := c.BCRRisk(8, 2, nil, nil)
	assert.Equal(t, domain.BCRHighRisk, result.RiskGroup)

	// Grade Group 4 alone is high risk.
	result = c.BCRRisk(18, 4, nil, nil)
	assert.Equal(t, domain.BCRHighRisk, result.RiskGroup)

	// PSADT >12 and Grade Group <=3 make two low-risk criteria.
	result = c.BCRRisk(18, 2, nil, nil)
	assert.Equal(t, domain.BCRLowRisk, result.RiskGroup)
}

func TestBCREmbarkEligibility(t *testing.T) {
	c := testClassifier()

	result := c.BCRRisk(7, 3, nil, domain.Float(2.5))
	assert.True(t, result.EmbarkEligible)
	assert.Contains(t, result.EmbarkNote, "EMBARK eligible")

	// PSADT met but PSA below 1.
	result = c.BCRRisk(7, 3, nil, domain.Float(0.5))
	assert.False(t, result.EmbarkEligible)
	assert.Contains(t, result.EmbarkNote, "<1 ng/mL")

	// Without a PSA value eligibility is undetermined, not false-negative.
	result = c.BCRRisk(7, 3, nil, nil)
	assert.False(t, result.EmbarkEligible)
	assert.Nil(t, result.EmbarkPSAMet)
	assert.Contains(t, result.EmbarkNote, "requires PSA value")
}

func TestPelvicNodesRecommendation(t *testing.T) {
	c := testClassifier()

	// PSA above SPPORT threshold with ADT: include, strongly above 0.5.
	advice := c.PelvicNodes(0.8, nil, nil, true)
	assert.Equal(t, "Include pelvic nodes", advice.Recommendation)
	assert.Equal(t, "Strong", advice.Strength)

	// Same without ADT downgrades to consider.
	advice = c.PelvicNodes(0.8, nil, nil, false)
	assert.Equal(t, "Consider pelvic nodes", advice.Recommendation)

	// Low PSA, no nomogram risk: prostate bed alone.
	advice = c.PelvicNodes(0.2, nil, nil, false)
	assert.Equal(t, "Prostate bed alone may be sufficient", advice.Recommendation)
}

func TestPelvicNodesNomogramThresholds(t *testing.T) {
	c := testClassifier()

	advice := c.PelvicNodes(0.2, domain.Float(12), nil, true)
	assert.Equal(t, "Include pelvic nodes", advice.Recommendation)
	assert.Equal(t, "Moderate", advice.Strength)

	advice = c.PelvicNodes(0.2, nil, domain.Float(20), true)
	assert.Equal(t, "Include pelvic nodes", advice.Recommendation)
}

func TestADTDurationTiers(t *testing.T) {
	c := testClassifier()

	// Low PSA, no other high-risk factors: no ADT.
	advice := c.ADTDuration(0.3, 2, 18, nil, false, false)
	assert.Equal(t, "0 months", advice.Duration)

	// PSA >=1.5 alone selects long-term ADT.
	advice = c.ADTDuration(2.0, 2, 18, nil, false, false)
	assert.Equal(t, "24 months", advice.Duration)

	// Single moderate factor: short-term ADT.
	advice = c.ADTDuration(0.9, 2, 18, nil, false, false)
	assert.Equal(t, "4-6 months", advice.Duration)

	// Three accumulated factors: long-term ADT.
	advice = c.ADTDuration(0.9, 4, 5, nil, true, false)
	assert.Equal(t, "24 months", advice.Duration)
}

func TestSPPORTEligibility(t *testing.T) {
	c := testClassifier()

	result := c.SPPORTEligibility(domain.T3A, 8, 0.7, domain.N0)
	assert.True(t, result.Eligible)

	// Gleason 10 fails.
	result = c.SPPORTEligibility(domain.T3A, 10, 0.7, domain.N0)
	assert.False(t, result.Eligible)
	assert.False(t, result.Criteria["gleason"])

	// PSA outside 0.1-2.0 fails.
	result = c.SPPORTEligibility(domain.T3A, 8, 2.5, domain.N0)
	assert.False(t, result.Eligible)
	assert.False(t, result.Criteria["psa"])

	// N1 fails; NX is accepted.
	result = c.SPPORTEligibility(domain.T3A, 8, 0.7, domain.N1)
	assert.False(t, result.Eligible)
	result = c.SPPORTEligibility(domain.T3A, 8, 0.7, domain.NX)
	assert.True(t, result.Eligible)

	// T4 fails the stage criterion.
	result = c.SPPORTEligibility(domain.T4, 8, 0.7, domain.N0)
	assert.False(t, result.Eligible)
	assert.False(t, result.Criteria["stage"])
}

func TestNormalizeT(t *testing.T) {
	cases := []struct {
		raw  string
		want domain.TCategory
	}{
		{"T2a", domain.T2A},
		{"cT2a", domain.T2A},
		{"pT3b", domain.T3B},
		{" t1c ", domain.T1C},
		{"T2B/C", domain.T2C},
		{"T3A/T3B", domain.T3B},
	}

	for _, tc := range cases {
		got, err := NormalizeT(tc.raw)
		require.NoError(t, err, "input %q", tc.raw)
		assert.Equal(t, tc.want, got, "input %q", tc.raw)
	}
}

func TestNormalizeTRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"T9", "X", "", "T2a/T9"} {
		_, err := NormalizeT(raw)
		require.Error(t, err, "input %q", raw)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	}
}

func TestNormalizeNAndM(t *testing.T) {
	n, err := NormalizeN("pN1")
	require.NoError(t, err)
	assert.Equal(t, domain.N1, n)

	m, err := NormalizeM("m1b")
	require.NoError(t, err)
	assert.Equal(t, domain.M1B, m)

	_, err = NormalizeN("N5")
	assert.Error(t, err)
	_, err = NormalizeM("M3")
	assert.Error(t, err)
}
