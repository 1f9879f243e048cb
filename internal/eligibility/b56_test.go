package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prostate-cdss-server/internal/domain"
)

// mhspcInput is a patient who qualifies for apalutamide in mHSPC.
func mhspcInput() B56Input {
	return B56Input{
		State:               domain.MHSPC,
		ECOG:                1,
		Age:                 68,
		HistologyConfirmed:  true,
		HasMetastases:       true,
		DocetaxelStatus:     DocetaxelNotIndicated,
		CanReceiveDocetaxel: true,
	}
}

// nmcrpcInput is a patient who qualifies for all three nmCRPC drugs.
func nmcrpcInput() B56Input {
	return B56Input{
		State:               domain.NMCRPC,
		ECOG:                0,
		Age:                 71,
		HistologyConfirmed:  true,
		TestosteroneNgDl:    domain.Float(20),
		PSADTMonths:         domain.Float(7),
		PSAValue:            domain.Float(4.2),
		CanReceiveDocetaxel: true,
	}
}

// mcrpcPreInput is a first-line mCRPC patient with a BRCA2 mutation.
func mcrpcPreInput() B56Input {
	return B56Input{
		State:                domain.MCRPCPre,
		ECOG:                 1,
		Age:                  66,
		HistologyConfirmed:   true,
		HasMetastases:        true,
		TestosteroneNgDl:     domain.Float(15),
		PSAProgression:       true,
		BRCAMutation:         "BRCA2",
		HRRMutations:         []string{"BRCA2"},
		ProgressedOnHormonal: true,
		CrClMlMin:            domain.Float(80),
	}
}

func TestApalutamideMHSPC(t *testing.T) {
	engine := testEngine()

	v := engine.CheckApalutamide(mhspcInput())

	assert.True(t, v.Eligible)
	assert.Equal(t, "Apalutamid", v.DrugPL)
	assert.Equal(t, "240 mg", v.Dosing.Dose)
	assert.Contains(t, v.CriteriaMet, "Docetaksel niestosowany (udokumentowana decyzja)")
}

func TestApalutamideMHSPCRequiresDocetaxelDecision(t *testing.T) {
	engine := testEngine()

	in := mhspcInput()
	in.DocetaxelStatus = DocetaxelNotApplicable
	v := engine.CheckApalutamide(in)

	assert.False(t, v.Eligible)
	assert.Contains(t, v.CriteriaNotMet, "Wymagane: docetaksel ukończony LUB udokumentowana decyzja o pominięciu")
}

func TestApalutamideSeizureExclusion(t *testing.T) {
	engine := testEngine()

	in := mhspcInput()
	in.SeizureHistory = true
	v := engine.CheckApalutamide(in)

	assert.False(t, v.Eligible)
	assert.Contains(t, v.CriteriaNotMet, "Drgawki w wywiadzie lub czynniki ryzyka drgawek")
}

func TestApalutamideBoneModifyingAgents(t *testing.T) {
	engine := testEngine()

	in := mhspcInput()
	in.BoneModifyingAgents = true
	blocked := engine.CheckApalutamide(in)
	assert.False(t, blocked.Eligible)

	// Osteoporosis indication is the carve-out.
	in.BoneModifyingForOsteo = true
	allowed := engine.CheckApalutamide(in)
	assert.True(t, allowed.Eligible)
}

func TestApalutamideNMCRPC(t *testing.T) {
	engine := testEngine()

	v := engine.CheckApalutamide(nmcrpcInput())

	assert.True(t, v.Eligible)
	assert.Contains(t, v.CriteriaMet, "PSA DT ≤10 mies. (7.0)")

	// ECOG 2 is allowed in mHSPC but not nmCRPC.
	in := nmcrpcInput()
	in.ECOG = 2
	assert.False(t, engine.CheckApalutamide(in).Eligible)

	// Testosterone measurement is mandatory.
	in = nmcrpcInput()
	in.TestosteroneNgDl = nil
	noTesto := engine.CheckApalutamide(in)
	assert.False(t, noTesto.Eligible)
	assert.Contains(t, noTesto.CriteriaNotMet, "Brak pomiaru testosteronu")

	// PSA <=2 blocks when provided.
	in = nmcrpcInput()
	in.PSAValue = domain.Float(1.5)
	assert.False(t, engine.CheckApalutamide(in).Eligible)
}

func TestDarolutamideMHSPCRequiresDocetaxel(t *testing.T) {
	engine := testEngine()

	in := mhspcInput()
	v := engine.CheckDarolutamide(in)
	assert.True(t, v.Eligible)
	require.NotEmpty(t, v.TreatmentProtocol)
	assert.Contains(t, v.TreatmentProtocol[1], "6 tygodni")

	in.CanReceiveDocetaxel = false
	blocked := engine.CheckDarolutamide(in)
	assert.False(t, blocked.Eligible)
	assert.Contains(t, blocked.CriteriaNotMet, "Darolutamid w mHSPC wymaga leczenia skojarzonego z docetakselem")
	assert.Contains(t, blocked.Warnings, "Rozważ apalutamid lub enzalutamid jako alternatywę")
}

func TestDarolutamideNoSeizureExclusion(t *testing.T) {
	engine := testEngine()

	// Unlike apalutamide and enzalutamide, darolutamide has no seizure
	// contraindication in the programme.
	in := mhspcInput()
	in.SeizureHistory = true
	v := engine.CheckDarolutamide(in)
	assert.True(t, v.Eligible)
}

func TestEnzalutamideMCRPCPre(t *testing.T) {
	engine := testEngine()

	v := engine.CheckEnzalutamide(mcrpcPreInput())

	assert.True(t, v.Eligible)
	assert.Equal(t, "mCRPC przed chemioterapią", v.Indication)
	assert.Contains(t, v.CriteriaMet, "Progresja PSA")
}

func TestEnzalutamidePlainMCRPCTreatedAsPre(t *testing.T) {
	engine := testEngine()

	in := mcrpcPreInput()
	in.State = domain.MCRPCUnqualified
	v := engine.CheckEnzalutamide(in)

	assert.True(t, v.Eligible)
	assert.Equal(t, "mCRPC przed chemioterapią", v.Indication)
}

func TestEnzalutamideMCRPCPostAllowsECOG2(t *testing.T) {
	engine := testEngine()

	in := mcrpcPreInput()
	in.ECOG = 2

	// ECOG 2 fails the pre-docetaxel pathway.
	pre := engine.CheckEnzalutamide(in)
	assert.False(t, pre.Eligible)

	// The same patient passes post-docetaxel.
	in.State = domain.MCRPCPost
	post := engine.CheckEnzalutamide(in)
	assert.True(t, post.Eligible)
	assert.Equal(t, "mCRPC po docetakselu", post.Indication)
}

func TestEnzalutamideRequiresProgression(t *testing.T) {
	engine := testEngine()

	in := mcrpcPreInput()
	in.PSAProgression = false
	in.RadiologicalProgression = false
	v := engine.CheckEnzalutamide(in)

	assert.False(t, v.Eligible)
	assert.Contains(t, v.CriteriaNotMet, "Brak progresji PSA ani radiologicznej")
}

func TestOlaparibEligible(t *testing.T) {
	engine := testEngine()

	in := mcrpcPreInput()
	in.PriorDocetaxel = true
	v := engine.CheckOlaparib(in)

	assert.True(t, v.Eligible)
	assert.Contains(t, v.CriteriaMet, "Mutacja BRCA2 (unknown)")
	assert.Contains(t, v.CriteriaMet, "Po docetakselu")
	assert.Contains(t, v.CriteriaMet, "CrCl 80 mL/min (>50)")
}

func TestOlaparibRequiresBRCA(t *testing.T) {
	engine := testEngine()

	in := mcrpcPreInput()
	in.BRCAMutation = "ATM"
	v := engine.CheckOlaparib(in)

	assert.False(t, v.Eligible)
	assert.Contains(t, v.CriteriaNotMet, "Wymagana mutacja BRCA1 lub BRCA2 (patogenna/prawdopodobnie patogenna)")
}

func TestOlaparibRenalGate(t *testing.T) {
	engine := testEngine()

	// No CrCl: blocked.
	in := mcrpcPreInput()
	in.CrClMlMin = nil
	assert.False(t, engine.CheckOlaparib(in).Eligible)

	// CrCl <=30: contraindicated.
	in.CrClMlMin = domain.Float(25)
	low := engine.CheckOlaparib(in)
	assert.False(t, low.Eligible)
	assert.Contains(t, low.CriteriaNotMet, "CrCl 25 mL/min ≤30 (przeciwwskazanie)")

	// CrCl 31-50: eligible with a dose-reduction warning.
	in.CrClMlMin = domain.Float(40)
	mid := engine.CheckOlaparib(in)
	assert.True(t, mid.Eligible)
	require.NotEmpty(t, mid.Warnings)
	assert.Contains(t, mid.Warnings[0], "redukcja dawki")
}

func TestNiraparibAbirateroneEligible(t *testing.T) {
	engine := testEngine()

	v := engine.CheckNiraparibAbiraterone(mcrpcPreInput())

	assert.True(t, v.Eligible)
	assert.Equal(t, "Niraparib + Abirateron", v.DrugPL)
	assert.Contains(t, v.Warnings, "UWAGA: Stosować WYŁĄCZNIE tabletkę złożoną niraparib+abirateron")
	assert.Equal(t, "MUST use combination tablet", v.Dosing.Note)
}

func TestNiraparibAbirateroneChemoIndicated(t *testing.T) {
	engine := testEngine()

	in := mcrpcPreInput()
	in.ChemotherapyIndicated = true
	v := engine.CheckNiraparibAbiraterone(in)

	assert.False(t, v.Eligible)
	assert.Contains(t, v.CriteriaNotMet, "Chemioterapia jest wskazana (niraparib+abi dla 1. linii bez wskazań do CHT)")
}

func TestNiraparibAbirateroneAbirateroneException(t *testing.T) {
	engine := testEngine()

	// Started abiraterone under 4 months ago without progression: the
	// exception applies and the combination may continue.
	in := mcrpcPreInput()
	in.PriorAbiraterone = true
	in.AbirateroneMonths = domain.Float(2)
	allowed := engine.CheckNiraparibAbiraterone(in)
	assert.True(t, allowed.Eligible)
	assert.Contains(t, allowed.Warnings[0], "Wyjątek")

	// Over 4 months of abiraterone voids the exception.
	in.AbirateroneMonths = domain.Float(6)
	tooLong := engine.CheckNiraparibAbiraterone(in)
	assert.False(t, tooLong.Eligible)

	// Progression on abiraterone voids it too.
	in.AbirateroneMonths = domain.Float(2)
	in.AbirateroneProgression = true
	progressed := engine.CheckNiraparibAbiraterone(in)
	assert.False(t, progressed.Eligible)
	assert.Contains(t, progressed.CriteriaNotMet, "Progresja w trakcie abirateronu (wyklucza wyjątek)")
}

func TestTalazoparibEnzalutamideHRRFilter(t *testing.T) {
	engine := testEngine()

	// Accepted gene, case-insensitive.
	in := mcrpcPreInput()
	in.HRRMutations = []string{"chek2"}
	v := engine.CheckTalazoparibEnzalutamide(in)
	assert.True(t, v.Eligible)
	assert.Contains(t, v.CriteriaMet, "Mutacja HRR: chek2")

	// Gene outside the accepted panel.
	in.HRRMutations = []string{"TP53"}
	rejected := engine.CheckTalazoparibEnzalutamide(in)
	assert.False(t, rejected.Eligible)
	assert.Contains(t, rejected.CriteriaNotMet[0], "Brak uznawanej mutacji HRR")

	// No mutation data at all.
	in.HRRMutations = nil
	missing := engine.CheckTalazoparibEnzalutamide(in)
	assert.False(t, missing.Eligible)
	assert.Contains(t, missing.CriteriaNotMet[0], "Wymagana mutacja HRR")
}

func TestTalazoparibEnzalutamidePriorAbirateroneExcludes(t *testing.T) {
	engine := testEngine()

	in := mcrpcPreInput()
	in.PriorAbiraterone = true
	v := engine.CheckTalazoparibEnzalutamide(in)

	assert.False(t, v.Eligible)
	assert.Contains(t, v.CriteriaNotMet, "Wcześniejszy abirateron")
}

func TestGeneralCriteriaReportedTogether(t *testing.T) {
	engine := testEngine()

	in := mhspcInput()
	in.HistologyConfirmed = false
	in.Age = 17
	in.Neuroendocrine = true
	v := engine.CheckApalutamide(in)

	assert.False(t, v.Eligible)
	// All failing general criteria come back at once.
	require.Len(t, v.CriteriaNotMet, 3)
	assert.Contains(t, v.CriteriaNotMet, "Wymagane histologiczne potwierdzenie gruczolakoraka stercza")
	assert.Contains(t, v.CriteriaNotMet, "Wiek <18 lat (17)")
	assert.Contains(t, v.CriteriaNotMet, "Rak neuroendokrynny/drobnokomórkowy/przewodowy (wyklucza z programu)")
}

func TestCheckB56MHSPCRoster(t *testing.T) {
	engine := testEngine()

	summary, err := engine.CheckB56(mhspcInput())
	require.NoError(t, err)

	assert.Equal(t, []domain.Drug{domain.Apalutamide, domain.Darolutamide, domain.Enzalutamide}, summary.DrugOrder)
	assert.Len(t, summary.DrugResults, 3)
	assert.Contains(t, summary.EligibleDrugs, "Apalutamid")
	assert.Contains(t, summary.EligibleDrugs, "Darolutamid")
	assert.Contains(t, summary.EligibleDrugs, "Enzalutamid")
}

func TestCheckB56MCRPCPreRoster(t *testing.T) {
	engine := testEngine()

	summary, err := engine.CheckB56(mcrpcPreInput())
	require.NoError(t, err)

	assert.Len(t, summary.DrugResults, 4)
	assert.Contains(t, summary.EligibleDrugs, "Enzalutamid")
	assert.Contains(t, summary.EligibleDrugs, "Olaparib")
}

func TestCheckB56PriorAbirateroneRoster(t *testing.T) {
	engine := testEngine()

	in := mcrpcPreInput()
	in.PriorAbiraterone = true
	in.AbirateroneMonths = domain.Float(12)
	summary, err := engine.CheckB56(in)
	require.NoError(t, err)

	// Prior abiraterone blocks enzalutamide, the niraparib combination
	// (12 months is past the 4-month exception) and talazoparib+enza.
	// Olaparib remains open: it targets exactly the post-hormonal
	// progression setting.
	assert.Equal(t, []string{"Olaparib"}, summary.EligibleDrugs)
	assert.Len(t, summary.IneligibleDrugs, 3)
	assert.False(t, summary.DrugResults[domain.Enzalutamide].Eligible)
	assert.False(t, summary.DrugResults[domain.NiraparibAbiraterone].Eligible)
	assert.False(t, summary.DrugResults[domain.TalazoparibEnzalutamide].Eligible)
}

func TestCheckB56AmbiguousMCRPC(t *testing.T) {
	engine := testEngine()

	in := mcrpcPreInput()
	in.State = domain.MCRPCUnqualified
	summary, err := engine.CheckB56(in)

	assert.Nil(t, summary)
	require.Error(t, err)
	var ambiguous *domain.AmbiguousInputError
	require.ErrorAs(t, err, &ambiguous)
	assert.Contains(t, ambiguous.Message, "niejednoznaczny")
	assert.Equal(t, "mCRPC_pre dla ECOG 0-1, mCRPC_post dla ECOG 0-2 (po docetakselu)", ambiguous.Hint)
}

func TestCheckB56UnknownState(t *testing.T) {
	engine := testEngine()

	in := mcrpcPreInput()
	in.State = "localized"
	summary, err := engine.CheckB56(in)

	assert.Nil(t, summary)
	require.Error(t, err)
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, []string{"mHSPC", "nmCRPC", "mCRPC_pre", "mCRPC_post"}, validation.Allowed)
}
