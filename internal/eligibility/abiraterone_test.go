package eligibility

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prostate-cdss-server/internal/domain"
)

func testEngine() *Engine {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel) // Suppress logs during testing
	return NewEngine(logger)
}

func TestAbirateronePriorAbirateroneExcludes(t *testing.T) {
	engine := testEngine()

	v := engine.CheckAbiraterone(AbirateroneInput{
		State:               domain.MHSPC,
		HasMetastases:       true,
		GleasonScore:        domain.Int(9),
		BoneMetastasesCount: domain.Int(5),
		MonthsSinceADTStart: domain.Float(1),
		PriorAbiraterone:    true,
	})

	assert.False(t, v.Eligible)
	assert.True(t, v.Excluded())
	assert.Equal(t, "Prior abiraterone treatment", v.ExclusionReason)
	require.Len(t, v.Exclusions, 1)
	assert.Contains(t, v.Exclusions[0], "Wcześniejsze leczenie abirateronem")
}

func TestAbirateronePriorNovelHormonalAgentExcludes(t *testing.T) {
	engine := testEngine()

	v := engine.CheckAbiraterone(AbirateroneInput{
		State:                   domain.MCRPCPre,
		HasMetastases:           true,
		CastrationResistant:     true,
		ADTFailure:              true,
		PriorNovelHormonalAgent: true,
	})

	assert.True(t, v.Excluded())
	assert.Contains(t, v.ExclusionReason, "Prior novel hormonal agent")
}

func TestAbirateroneMHSPCHighRisk(t *testing.T) {
	engine := testEngine()

	v := engine.CheckAbiraterone(AbirateroneInput{
		State:               domain.MHSPC,
		HasMetastases:       true,
		GleasonScore:        domain.Int(9),
		BoneMetastasesCount: domain.Int(4),
		MonthsSinceADTStart: domain.Float(2),
	})

	assert.True(t, v.Eligible)
	assert.Equal(t, "C.87.a", v.Attachment)
	assert.Equal(t, 2, v.HighRiskFactorCount)
	assert.Contains(t, v.CriteriaMet, "Gleason ≥8 (9)")
	assert.Contains(t, v.CriteriaMet, "≥3 przerzuty do kości (4)")
}

func TestAbirateroneMHSPCOneFactorNeverEligible(t *testing.T) {
	engine := testEngine()

	// Only Gleason >=8; regardless of ADT timing the patient cannot
	// qualify under C.87.a.
	v := engine.CheckAbiraterone(AbirateroneInput{
		State:               domain.MHSPC,
		HasMetastases:       true,
		GleasonScore:        domain.Int(9),
		BoneMetastasesCount: domain.Int(1),
		MonthsSinceADTStart: domain.Float(1),
	})

	assert.False(t, v.Eligible)
	assert.Contains(t, v.CriteriaNotMet, "Wymagane ≥2 z 3 czynników wysokiego ryzyka (spełnione: 1)")
	assert.Equal(t, "Rozważ kwalifikację jako mCSPC (zał. C.87.b)", v.Alternative)
}

func TestAbirateroneMHSPCADTTimingWindow(t *testing.T) {
	engine := testEngine()

	base := AbirateroneInput{
		State:               domain.MHSPC,
		HasMetastases:       true,
		GleasonScore:        domain.Int(8),
		BoneMetastasesCount: domain.Int(3),
	}

	// Missing ADT start time blocks eligibility even with 2 of 3 factors.
	missing := engine.CheckAbiraterone(base)
	assert.False(t, missing.Eligible)
	assert.Contains(t, missing.CriteriaNotMet, "Brak danych o czasie od rozpoczęcia ADT (wymagane: ≤3 miesiące)")
	assert.NotEmpty(t, missing.Warnings)

	// Over 3 months since ADT start is a hard stop.
	late := base
	late.MonthsSinceADTStart = domain.Float(4.5)
	lateVerdict := engine.CheckAbiraterone(late)
	assert.False(t, lateVerdict.Eligible)
	assert.Contains(t, lateVerdict.CriteriaNotMet, "Przekroczony limit czasowy: 4.5 mies. od ADT (max. 3 mies.)")

	// Within 3 months qualifies.
	onTime := base
	onTime.MonthsSinceADTStart = domain.Float(2.5)
	onTimeVerdict := engine.CheckAbiraterone(onTime)
	assert.True(t, onTimeVerdict.Eligible)
}

func TestAbirateroneMHSPCMissingRiskData(t *testing.T) {
	engine := testEngine()

	v := engine.CheckAbiraterone(AbirateroneInput{
		State:         domain.MHSPC,
		HasMetastases: true,
	})

	assert.False(t, v.Eligible)
	assert.True(t, v.InsufficientData())
	assert.Contains(t, v.CriteriaNotMet[0], "Brak danych wymaganych do oceny wysokiego ryzyka")
	assert.Contains(t, v.CriteriaNotMet[0], "Gleason")
	assert.Contains(t, v.CriteriaNotMet[0], "liczba przerzutów do kości")
}

func TestAbirateroneMCRPCPreChemotherapy(t *testing.T) {
	engine := testEngine()

	v := engine.CheckAbiraterone(AbirateroneInput{
		State:               domain.MCRPCPre,
		HasMetastases:       true,
		CastrationResistant: true,
		ADTFailure:          true,
	})

	assert.True(t, v.Eligible)
	assert.Equal(t, "C.87.a", v.Attachment)
	assert.Contains(t, v.Indication, "przed chemioterapią")
}

func TestAbirateroneMCRPCSymptomaticBlocked(t *testing.T) {
	engine := testEngine()

	v := engine.CheckAbiraterone(AbirateroneInput{
		State:               domain.MCRPCPre,
		HasMetastases:       true,
		CastrationResistant: true,
		ADTFailure:          true,
		Symptomatic:         true,
	})

	assert.False(t, v.Eligible)
	assert.Contains(t, v.CriteriaNotMet, "Pacjent objawowy (wymagany bezobjawowy lub skąpoobjawowy)")
}

func TestAbirateroneMCRPCPostDocetaxel(t *testing.T) {
	engine := testEngine()

	v := engine.CheckAbiraterone(AbirateroneInput{
		State:               domain.MCRPCPost,
		HasMetastases:       true,
		CastrationResistant: true,
	})

	assert.True(t, v.Eligible)
	assert.Contains(t, v.Indication, "po niepowodzeniu chemioterapii")
	assert.NotEmpty(t, v.Warnings)
}

func TestAbirateroneMCSPCRedirectsHighRisk(t *testing.T) {
	engine := testEngine()

	v := engine.CheckAbiraterone(AbirateroneInput{
		State:               domain.MCSPC,
		HasMetastases:       true,
		GleasonScore:        domain.Int(9),
		BoneMetastasesCount: domain.Int(5),
	})

	assert.False(t, v.Eligible)
	assert.Equal(t, "Pacjent kwalifikuje się do C.87.a (mHSPC wysokiego ryzyka), nie C.87.b", v.Alternative)
}

func TestAbirateroneMCSPCEligible(t *testing.T) {
	engine := testEngine()

	v := engine.CheckAbiraterone(AbirateroneInput{
		State:               domain.MCSPC,
		HasMetastases:       true,
		GleasonScore:        domain.Int(7),
		BoneMetastasesCount: domain.Int(1),
	})

	assert.True(t, v.Eligible)
	assert.Equal(t, "C.87.b", v.Attachment)
	require.Len(t, v.TreatmentOptions, 2)
	assert.Contains(t, v.TreatmentOptions[0], "monoterapia")
	assert.Contains(t, v.TreatmentOptions[1], "docetaksel")
}

func TestAbirateroneMCSPCIncompleteDataWarns(t *testing.T) {
	engine := testEngine()

	v := engine.CheckAbiraterone(AbirateroneInput{
		State:         domain.MCSPC,
		HasMetastases: true,
	})

	assert.True(t, v.Eligible)
	require.NotEmpty(t, v.Warnings)
	assert.Contains(t, v.Warnings[0], "Brak pełnych danych do oceny wysokiego ryzyka")
}

func TestAbirateroneNMCRPC(t *testing.T) {
	engine := testEngine()

	eligible := engine.CheckAbiraterone(AbirateroneInput{
		State:               domain.NMCRPC,
		CastrationResistant: true,
		PSADTMonths:         domain.Float(8),
	})
	assert.True(t, eligible.Eligible)
	assert.Equal(t, "C.87.b", eligible.Attachment)

	slowPSADT := engine.CheckAbiraterone(AbirateroneInput{
		State:               domain.NMCRPC,
		CastrationResistant: true,
		PSADTMonths:         domain.Float(14),
	})
	assert.False(t, slowPSADT.Eligible)
	assert.Contains(t, slowPSADT.CriteriaNotMet[0], "PSA DT >10 miesięcy")

	noPSADT := engine.CheckAbiraterone(AbirateroneInput{
		State:               domain.NMCRPC,
		CastrationResistant: true,
	})
	assert.False(t, noPSADT.Eligible)
	assert.True(t, noPSADT.InsufficientData())
}

func TestAbirateroneAdjuvantNodePositive(t *testing.T) {
	engine := testEngine()

	v := engine.CheckAbiraterone(AbirateroneInput{
		State:          domain.AdjuvantPostRT,
		AfterRadicalRT: true,
		NodePositive:   domain.Bool(true),
	})

	assert.True(t, v.Eligible)
	assert.Equal(t, "24 miesiące (2 lata)", v.MaxDuration)
	assert.Contains(t, v.CriteriaMet, "Przerzuty w węzłach chłonnych (N+)")
}

func TestAbirateroneAdjuvantNodeNegativeFactors(t *testing.T) {
	engine := testEngine()

	base := AbirateroneInput{
		State:          domain.AdjuvantPostRT,
		AfterRadicalRT: true,
		NodePositive:   domain.Bool(false),
	}

	// One factor only: not eligible.
	one := base
	one.GleasonScore = domain.Int(9)
	oneVerdict := engine.CheckAbiraterone(one)
	assert.False(t, oneVerdict.Eligible)
	assert.Contains(t, oneVerdict.CriteriaNotMet[0], "N- wymaga ≥2 z 3 czynników")

	// Two factors qualify.
	two := base
	two.GleasonScore = domain.Int(9)
	two.PSAAtDiagnosis = domain.Float(45)
	twoVerdict := engine.CheckAbiraterone(two)
	assert.True(t, twoVerdict.Eligible)
	assert.Equal(t, "24 miesiące (2 lata)", twoVerdict.MaxDuration)

	// T3-4 counts as a factor.
	t3 := base
	t3.TCategory = "cT3a"
	t3.PSAAtDiagnosis = domain.Float(42)
	t3Verdict := engine.CheckAbiraterone(t3)
	assert.True(t, t3Verdict.Eligible)
}

func TestAbirateroneAdjuvantUnknownNodes(t *testing.T) {
	engine := testEngine()

	v := engine.CheckAbiraterone(AbirateroneInput{
		State:          domain.AdjuvantPostRT,
		AfterRadicalRT: true,
		GleasonScore:   domain.Int(9),
		PSAAtDiagnosis: domain.Float(50),
	})

	assert.False(t, v.Eligible)
	assert.Contains(t, v.CriteriaNotMet[0], "Brak danych o statusie węzłów chłonnych (N)")
}

func TestAbirateroneUnknownState(t *testing.T) {
	engine := testEngine()

	v := engine.CheckAbiraterone(AbirateroneInput{State: "localized"})

	assert.False(t, v.Eligible)
	require.Len(t, v.CriteriaNotMet, 1)
	assert.Contains(t, v.CriteriaNotMet[0], "Nierozpoznany stan choroby: 'localized'")
	assert.Contains(t, v.CriteriaNotMet[0], "adjuvant_post_rt")
}
