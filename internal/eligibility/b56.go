package eligibility

import (
	"fmt"
	"strings"

	"github.com/prostate-cdss-server/internal/domain"
)

// B56Input carries every field any of the six B.56 per-drug cascades can
// look at. Each drug reads its own subset; pointer fields distinguish
// "not measured" from a negative result.
type B56Input struct {
	State domain.DiseaseState `json:"disease_state"`

	// General programme criteria.
	ECOG               int  `json:"ecog"`
	Age                int  `json:"age"`
	HistologyConfirmed bool `json:"histology_confirmed"`
	OtherMalignancy    bool `json:"has_other_malignancy"`
	Neuroendocrine     bool `json:"has_neuroendocrine"`

	// Disease status.
	HasMetastases           bool     `json:"has_metastases"`
	TestosteroneNgDl        *float64 `json:"testosterone_ng_dl,omitempty"`
	PSADTMonths             *float64 `json:"psadt_months,omitempty"`
	PSAValue                *float64 `json:"psa_value,omitempty"`
	PSAProgression          bool     `json:"has_psa_progression"`
	RadiologicalProgression bool     `json:"has_radiological_progression"`

	// Mutation status.
	BRCAMutation string   `json:"brca_mutation,omitempty"` // "BRCA1", "BRCA2" or empty
	MutationType string   `json:"mutation_type,omitempty"` // "germline", "somatic", "unknown"
	HRRMutations []string `json:"hrr_mutations,omitempty"`

	// Prior treatment.
	PriorAbiraterone       bool     `json:"prior_abiraterone"`
	AbirateroneMonths      *float64 `json:"abiraterone_months,omitempty"`
	AbirateroneProgression bool     `json:"abiraterone_progression"`
	PriorADTMonthsMet      *float64 `json:"prior_adt_months_metastatic,omitempty"`
	DocetaxelStatus        string   `json:"docetaxel_status,omitempty"`
	PriorDocetaxel         bool     `json:"prior_docetaxel"`
	PriorCabazitaxel       bool     `json:"prior_cabazitaxel"`
	PriorPARPInhibitor     bool     `json:"prior_parp_inhibitor"`
	PriorNSAA              bool     `json:"prior_nonsteroidal_antiandrogen"`
	ProgressedOnHormonal   bool     `json:"progressed_on_hormonal_therapy"`
	CanReceiveDocetaxel    bool     `json:"can_receive_docetaxel"`
	ChemotherapyIndicated  bool     `json:"chemotherapy_indicated"`
	BoneModifyingAgents    bool     `json:"bone_modifying_agents"`
	BoneModifyingForOsteo  bool     `json:"bone_modifying_for_osteoporosis"`

	// Safety.
	SeizureHistory     bool     `json:"seizure_history"`
	SeizureRiskFactors bool     `json:"seizure_risk_factors"`
	CrClMlMin          *float64 `json:"crcl_ml_min,omitempty"`
}

// gate applies the shared programme preconditions to a fresh drug verdict.
// Returns false when the general criteria already disqualify the patient.
func (in B56Input) gate(v *DrugVerdict) bool {
	issues := generalCriteria(in.HistologyConfirmed, in.Age, in.OtherMalignancy, in.Neuroendocrine)
	if len(issues) > 0 {
		v.CriteriaNotMet = append(v.CriteriaNotMet, issues...)
		return false
	}
	return true
}

// castrationOK checks the testosterone level when it was measured,
// recording a failed criterion otherwise. A missing measurement passes.
func (in B56Input) castrationOK(v *DrugVerdict) bool {
	if in.TestosteroneNgDl != nil && *in.TestosteroneNgDl > 50 {
		v.AddNotMet(fmt.Sprintf("Testosteron %.1f > 50 ng/dL", *in.TestosteroneNgDl))
		return false
	}
	return true
}

// progressionOK requires PSA or radiological progression.
func (in B56Input) progressionOK(v *DrugVerdict) bool {
	if !in.PSAProgression && !in.RadiologicalProgression {
		v.AddNotMet("Brak progresji PSA ani radiologicznej")
		return false
	}
	return true
}

// crclOK applies the PARP-inhibitor renal gate: CrCl must be measured and
// >30 mL/min; 31-50 passes with a dose-reduction warning.
func (in B56Input) crclOK(v *DrugVerdict, reductionNote string) bool {
	if in.CrClMlMin == nil {
		v.AddNotMet("Brak wyliczenia CrCl (wymagane >30 mL/min)")
		return false
	}
	if *in.CrClMlMin <= 30 {
		v.AddNotMet(fmt.Sprintf("CrCl %.0f mL/min ≤30 (przeciwwskazanie)", *in.CrClMlMin))
		return false
	}
	if *in.CrClMlMin <= 50 {
		v.AddWarning(fmt.Sprintf("CrCl %.0f mL/min %s", *in.CrClMlMin, reductionNote))
	}
	return true
}

// CheckApalutamide evaluates apalutamide under B.56 (mHSPC and nmCRPC).
func (e *Engine) CheckApalutamide(in B56Input) *DrugVerdict {
	v := newDrugVerdict(domain.Apalutamide, "Apalutamide", "Apalutamid")
	if !in.gate(v) {
		return v
	}

	if in.PriorAbiraterone {
		v.AddNotMet("Wcześniejsze leczenie abirateronem")
		return v
	}
	if in.SeizureHistory || in.SeizureRiskFactors {
		v.AddNotMet("Drgawki w wywiadzie lub czynniki ryzyka drgawek")
		return v
	}
	if in.BoneModifyingAgents && !in.BoneModifyingForOsteo {
		v.AddNotMet("Stosowanie leków modyfikujących metabolizm kości (z wyjątkiem osteoporozy)")
		return v
	}

	switch normalizeState(in.State) {
	case "mhspc":
		if in.ECOG > 2 {
			v.AddNotMet(fmt.Sprintf("ECOG %d > 2 (wymagane ECOG 0-2 dla mHSPC)", in.ECOG))
			return v
		}
		if !in.HasMetastases {
			v.AddNotMet("Brak potwierdzonych przerzutów")
			return v
		}
		if in.PriorADTMonthsMet != nil && *in.PriorADTMonthsMet > 6 {
			v.AddNotMet(fmt.Sprintf("ADT dla choroby przerzutowej >%.1f mies. (max 6 mies.)", *in.PriorADTMonthsMet))
			return v
		}
		status := in.DocetaxelStatus
		if status != DocetaxelCompleted && status != DocetaxelNotIndicated {
			v.AddNotMet("Wymagane: docetaksel ukończony LUB udokumentowana decyzja o pominięciu")
			v.AddWarning("Podaj docetaxel_status='completed' lub 'not_indicated' z uzasadnieniem")
			return v
		}

		v.Eligible = true
		v.Indication = "mHSPC (przerzutowy hormonowrażliwy rak stercza)"
		v.CriteriaMet = []string{
			fmt.Sprintf("ECOG %d (0-2)", in.ECOG),
			"Potwierdzone przerzuty",
			"Hormonowrażliwy",
		}
		if in.PriorADTMonthsMet != nil {
			v.AddMet(fmt.Sprintf("ADT dla mets ≤6 mies. (%.1f)", *in.PriorADTMonthsMet))
		}
		if status == DocetaxelCompleted {
			v.AddMet("Docetaksel ukończony")
		} else {
			v.AddMet("Docetaksel niestosowany (udokumentowana decyzja)")
		}
		return v

	case "nmcrpc":
		if in.ECOG > 1 {
			v.AddNotMet(fmt.Sprintf("ECOG %d > 1 (wymagane ECOG 0-1 dla nmCRPC)", in.ECOG))
			return v
		}
		if in.HasMetastases {
			v.AddNotMet("Przerzuty obecne (wymagany M0 dla nmCRPC)")
			return v
		}
		if in.TestosteroneNgDl == nil {
			v.AddNotMet("Brak pomiaru testosteronu")
			return v
		}
		if *in.TestosteroneNgDl > 50 {
			v.AddNotMet(fmt.Sprintf("Testosteron %.1f ng/dL > 50 ng/dL (brak kastracji)", *in.TestosteroneNgDl))
			return v
		}
		if in.PSADTMonths == nil {
			v.AddNotMet("Brak PSA DT (wymagane ≤10 mies.)")
			return v
		}
		if *in.PSADTMonths > 10 {
			v.AddNotMet(fmt.Sprintf("PSA DT %.1f mies. > 10 mies.", *in.PSADTMonths))
			return v
		}
		if in.PSAValue != nil && *in.PSAValue <= 2 {
			v.AddNotMet(fmt.Sprintf("PSA %.2f ≤ 2 ng/mL", *in.PSAValue))
			return v
		}

		v.Eligible = true
		v.Indication = "nmCRPC (nieprzerzutowy oporny na kastrację rak stercza)"
		v.CriteriaMet = []string{
			fmt.Sprintf("ECOG %d (0-1)", in.ECOG),
			"M0 (bez przerzutów)",
			fmt.Sprintf("Testosteron ≤50 ng/dL (%.1f)", *in.TestosteroneNgDl),
			fmt.Sprintf("PSA DT ≤10 mies. (%.1f)", *in.PSADTMonths),
		}
		if in.PSAValue != nil {
			v.AddMet(fmt.Sprintf("PSA > 2 ng/mL (%.2f)", *in.PSAValue))
		}
		return v
	}

	v.AddNotMet(fmt.Sprintf("Nierozpoznany stan choroby: '%s'. Dozwolone: mHSPC, nmCRPC", in.State))
	return v
}

// CheckDarolutamide evaluates darolutamide under B.56. In mHSPC
// darolutamide is reimbursed only in combination with docetaxel.
func (e *Engine) CheckDarolutamide(in B56Input) *DrugVerdict {
	v := newDrugVerdict(domain.Darolutamide, "Darolutamide", "Darolutamid")
	if !in.gate(v) {
		return v
	}

	if in.PriorAbiraterone {
		v.AddNotMet("Wcześniejsze leczenie abirateronem")
		return v
	}
	if in.BoneModifyingAgents && !in.BoneModifyingForOsteo {
		v.AddNotMet("Stosowanie leków modyfikujących metabolizm kości (z wyjątkiem osteoporozy)")
		return v
	}

	switch normalizeState(in.State) {
	case "mhspc":
		if in.ECOG > 2 {
			v.AddNotMet(fmt.Sprintf("ECOG %d > 2 (wymagane ECOG 0-2 dla mHSPC)", in.ECOG))
			return v
		}
		if !in.HasMetastases {
			v.AddNotMet("Brak potwierdzonych przerzutów")
			return v
		}
		if !in.CanReceiveDocetaxel {
			v.AddNotMet("Darolutamid w mHSPC wymaga leczenia skojarzonego z docetakselem")
			v.AddWarning("Rozważ apalutamid lub enzalutamid jako alternatywę")
			return v
		}
		if in.PriorADTMonthsMet != nil && *in.PriorADTMonthsMet > 6 {
			v.AddNotMet(fmt.Sprintf("ADT dla choroby przerzutowej >%.1f mies. (max 6 mies.)", *in.PriorADTMonthsMet))
			return v
		}

		v.Eligible = true
		v.Indication = "mHSPC (przerzutowy hormonowrażliwy) + docetaksel"
		v.CriteriaMet = []string{
			fmt.Sprintf("ECOG %d (0-2)", in.ECOG),
			"Potwierdzone przerzuty",
			"Hormonowrażliwy",
			"Kwalifikuje się do docetakselu",
		}
		v.TreatmentProtocol = []string{
			"Rozpocznij darolutamid",
			"Pierwszy cykl docetakselu w ciągu 6 tygodni",
			"Plan: 6 cykli docetakselu",
			"Kontynuuj darolutamid nawet przy przerwaniu docetakselu",
		}
		if in.PriorADTMonthsMet != nil {
			v.AddMet(fmt.Sprintf("ADT dla mets ≤6 mies. (%.1f)", *in.PriorADTMonthsMet))
		}
		return v

	case "nmcrpc":
		if in.ECOG > 1 {
			v.AddNotMet(fmt.Sprintf("ECOG %d > 1 (wymagane ECOG 0-1 dla nmCRPC)", in.ECOG))
			return v
		}
		if in.HasMetastases {
			v.AddNotMet("Przerzuty obecne (wymagany M0 dla nmCRPC)")
			return v
		}
		if in.TestosteroneNgDl == nil {
			v.AddNotMet("Brak pomiaru testosteronu")
			return v
		}
		if *in.TestosteroneNgDl > 50 {
			v.AddNotMet(fmt.Sprintf("Testosteron %.1f ng/dL > 50 ng/dL", *in.TestosteroneNgDl))
			return v
		}
		if in.PSADTMonths == nil {
			v.AddNotMet("Brak PSA DT (wymagane ≤10 mies.)")
			return v
		}
		if *in.PSADTMonths > 10 {
			v.AddNotMet(fmt.Sprintf("PSA DT %.1f mies. > 10 mies.", *in.PSADTMonths))
			return v
		}
		if in.PSAValue != nil && *in.PSAValue <= 2 {
			v.AddNotMet(fmt.Sprintf("PSA %.2f ≤ 2 ng/mL", *in.PSAValue))
			return v
		}

		v.Eligible = true
		v.Indication = "nmCRPC (nieprzerzutowy oporny na kastrację)"
		v.CriteriaMet = []string{
			fmt.Sprintf("ECOG %d (0-1)", in.ECOG),
			"M0 (bez przerzutów)",
			fmt.Sprintf("Testosteron ≤50 ng/dL (%.1f)", *in.TestosteroneNgDl),
			fmt.Sprintf("PSA DT ≤10 mies. (%.1f)", *in.PSADTMonths),
		}
		return v
	}

	v.AddNotMet(fmt.Sprintf("Nierozpoznany stan choroby: '%s'. Dozwolone: mHSPC, nmCRPC", in.State))
	return v
}

// CheckEnzalutamide evaluates enzalutamide under B.56 across all four
// states. A plain "mCRPC" tag is treated as pre-docetaxel here; the
// multi-drug roster rejects it instead, because the ECOG limit differs
// between the pre and post settings.
func (e *Engine) CheckEnzalutamide(in B56Input) *DrugVerdict {
	v := newDrugVerdict(domain.Enzalutamide, "Enzalutamide", "Enzalutamid")
	if !in.gate(v) {
		return v
	}

	if in.PriorAbiraterone {
		v.AddNotMet("Wcześniejsze leczenie abirateronem")
		return v
	}
	if in.SeizureHistory || in.SeizureRiskFactors {
		v.AddNotMet("Drgawki w wywiadzie lub czynniki ryzyka drgawek")
		return v
	}
	if in.BoneModifyingAgents && !in.BoneModifyingForOsteo {
		v.AddNotMet("Leki modyfikujące metabolizm kości (z wyjątkiem osteoporozy)")
		return v
	}

	switch normalizeState(in.State) {
	case "mhspc":
		if in.ECOG > 2 {
			v.AddNotMet(fmt.Sprintf("ECOG %d > 2", in.ECOG))
			return v
		}
		if !in.HasMetastases {
			v.AddNotMet("Brak przerzutów")
			return v
		}
		if in.PriorADTMonthsMet != nil && *in.PriorADTMonthsMet > 6 {
			v.AddNotMet(fmt.Sprintf("ADT dla mets >%.1f mies. (max 6)", *in.PriorADTMonthsMet))
			return v
		}

		v.Eligible = true
		v.Indication = "mHSPC (przerzutowy hormonowrażliwy)"
		v.CriteriaMet = []string{
			fmt.Sprintf("ECOG %d (0-2)", in.ECOG),
			"Potwierdzone przerzuty",
		}
		return v

	case "nmcrpc":
		if in.ECOG > 1 {
			v.AddNotMet(fmt.Sprintf("ECOG %d > 1", in.ECOG))
			return v
		}
		if in.HasMetastases {
			v.AddNotMet("Przerzuty obecne (wymagany M0)")
			return v
		}
		if in.TestosteroneNgDl == nil {
			v.AddNotMet("Brak pomiaru testosteronu (wymagane ≤50 ng/dL)")
			return v
		}
		if *in.TestosteroneNgDl > 50 {
			v.AddNotMet(fmt.Sprintf("Testosteron %.1f > 50 ng/dL", *in.TestosteroneNgDl))
			return v
		}
		if in.PSADTMonths == nil {
			v.AddNotMet("Brak PSA DT (wymagane ≤10 mies.)")
			return v
		}
		if *in.PSADTMonths > 10 {
			v.AddNotMet(fmt.Sprintf("PSA DT %.1f > 10 mies.", *in.PSADTMonths))
			return v
		}
		if in.PSAValue != nil && *in.PSAValue <= 2 {
			v.AddNotMet(fmt.Sprintf("PSA %.2f ≤ 2 ng/mL (wymagane >2)", *in.PSAValue))
			return v
		}

		v.Eligible = true
		v.Indication = "nmCRPC (nieprzerzutowy oporny na kastrację)"
		v.CriteriaMet = []string{
			fmt.Sprintf("ECOG %d (0-1)", in.ECOG),
			"M0",
			fmt.Sprintf("Testosteron ≤50 ng/dL (%.1f)", *in.TestosteroneNgDl),
			fmt.Sprintf("PSA DT ≤10 mies. (%.1f)", *in.PSADTMonths),
		}
		if in.PSAValue != nil {
			v.AddMet(fmt.Sprintf("PSA > 2 ng/mL (%.2f)", *in.PSAValue))
		}
		return v

	case "mcrpc_pre", "mcrpc":
		if in.ECOG > 1 {
			v.AddNotMet(fmt.Sprintf("ECOG %d > 1 (pre-docetaxel wymaga ECOG 0-1)", in.ECOG))
			return v
		}
		if !in.HasMetastases {
			v.AddNotMet("Brak przerzutów (wymagane dla mCRPC)")
			return v
		}
		if !in.castrationOK(v) {
			return v
		}
		if !in.progressionOK(v) {
			return v
		}

		v.Eligible = true
		v.Indication = "mCRPC przed chemioterapią"
		v.CriteriaMet = []string{
			fmt.Sprintf("ECOG %d (0-1)", in.ECOG),
			"Przerzuty obecne",
			"Oporny na kastrację",
		}
		if in.PSAProgression {
			v.AddMet("Progresja PSA")
		}
		if in.RadiologicalProgression {
			v.AddMet("Progresja radiologiczna")
		}
		return v

	case "mcrpc_post":
		if in.ECOG > 2 {
			v.AddNotMet(fmt.Sprintf("ECOG %d > 2", in.ECOG))
			return v
		}
		if !in.HasMetastases {
			v.AddNotMet("Brak przerzutów")
			return v
		}
		if !in.castrationOK(v) {
			return v
		}
		if !in.progressionOK(v) {
			return v
		}

		v.Eligible = true
		v.Indication = "mCRPC po docetakselu"
		v.CriteriaMet = []string{
			fmt.Sprintf("ECOG %d (0-2)", in.ECOG),
			"Przerzuty obecne",
			"Po docetakselu",
		}
		return v
	}

	v.AddNotMet(fmt.Sprintf("Nierozpoznany stan: '%s'. Dozwolone: mHSPC, nmCRPC, mCRPC_pre, mCRPC_post", in.State))
	return v
}

// CheckOlaparib evaluates olaparib under B.56: mCRPC with a BRCA1/2
// mutation after progression on new-generation hormonal therapy.
func (e *Engine) CheckOlaparib(in B56Input) *DrugVerdict {
	v := newDrugVerdict(domain.Olaparib, "Olaparib", "Olaparib")
	if !in.gate(v) {
		return v
	}

	if in.ECOG > 2 {
		v.AddNotMet(fmt.Sprintf("ECOG %d > 2", in.ECOG))
		return v
	}
	if !in.HasMetastases {
		v.AddNotMet("Brak przerzutów (wymagane mCRPC)")
		return v
	}
	if !in.castrationOK(v) {
		return v
	}
	if !in.progressionOK(v) {
		return v
	}

	brca := strings.ToUpper(strings.TrimSpace(in.BRCAMutation))
	if brca != "BRCA1" && brca != "BRCA2" {
		v.AddNotMet("Wymagana mutacja BRCA1 lub BRCA2 (patogenna/prawdopodobnie patogenna)")
		return v
	}
	if !in.ProgressedOnHormonal {
		v.AddNotMet("Wymagana progresja po nowej generacji terapii hormonalnej")
		return v
	}
	if !in.crclOK(v, "(31-50) - wymagana redukcja dawki per ChPL") {
		return v
	}

	mutationType := in.MutationType
	if mutationType == "" {
		mutationType = "unknown"
	}

	v.Eligible = true
	v.Indication = "mCRPC z mutacją BRCA po progresji na terapii hormonalnej"
	v.CriteriaMet = []string{
		fmt.Sprintf("ECOG %d (0-2)", in.ECOG),
		"mCRPC (przerzuty + oporność na kastrację)",
		fmt.Sprintf("Mutacja %s (%s)", brca, mutationType),
		"Progresja po nowej generacji terapii hormonalnej",
	}
	if in.PriorDocetaxel {
		v.AddMet("Po docetakselu")
	}
	if in.PriorCabazitaxel {
		v.AddMet("Po kabazytakselu")
	}
	if in.CrClMlMin != nil && *in.CrClMlMin > 50 {
		v.AddMet(fmt.Sprintf("CrCl %.0f mL/min (>50)", *in.CrClMlMin))
	}
	return v
}

// CheckNiraparibAbiraterone evaluates the niraparib + abiraterone
// combination: first-line mCRPC with BRCA1/2 mutation and no chemotherapy
// indication. Prior abiraterone is excluded except when started under 4
// months ago without progression, in which case it may be continued.
func (e *Engine) CheckNiraparibAbiraterone(in B56Input) *DrugVerdict {
	v := newDrugVerdict(domain.NiraparibAbiraterone, "Niraparib + Abiraterone", "Niraparib + Abirateron")
	if !in.gate(v) {
		return v
	}

	if in.ECOG > 2 {
		v.AddNotMet(fmt.Sprintf("ECOG %d > 2", in.ECOG))
		return v
	}
	if !in.HasMetastases {
		v.AddNotMet("Brak przerzutów (wymagane mCRPC)")
		return v
	}
	if !in.castrationOK(v) {
		return v
	}
	if !in.progressionOK(v) {
		return v
	}

	brca := strings.ToUpper(strings.TrimSpace(in.BRCAMutation))
	if brca != "BRCA1" && brca != "BRCA2" {
		v.AddNotMet("Wymagana mutacja BRCA1 lub BRCA2")
		return v
	}
	if in.ChemotherapyIndicated {
		v.AddNotMet("Chemioterapia jest wskazana (niraparib+abi dla 1. linii bez wskazań do CHT)")
		return v
	}
	if in.PriorPARPInhibitor {
		v.AddNotMet("Wcześniejsze leczenie inhibitorem PARP")
		return v
	}
	if in.PriorNSAA {
		v.AddNotMet("Wcześniejsze leczenie niesteroidowym antyandrogenem")
		return v
	}

	if in.PriorAbiraterone {
		if in.AbirateroneMonths != nil && *in.AbirateroneMonths > 4 {
			v.AddNotMet(fmt.Sprintf("Abirateron stosowany >%.1f mies. (max 4 mies. dla wyjątku)", *in.AbirateroneMonths))
			return v
		}
		if in.AbirateroneProgression {
			v.AddNotMet("Progresja w trakcie abirateronu (wyklucza wyjątek)")
			return v
		}
		v.AddWarning("Wyjątek: abirateron rozpoczęty <4 mies. temu bez progresji - może kontynuować")
	}

	if !in.crclOK(v, "- redukcja dawki") {
		return v
	}

	v.Eligible = true
	v.Indication = "mCRPC z mutacją BRCA, 1. linia (bez wskazań do CHT)"
	v.CriteriaMet = []string{
		fmt.Sprintf("ECOG %d (0-2)", in.ECOG),
		"mCRPC",
		fmt.Sprintf("Mutacja %s", brca),
		"Brak wskazań do chemioterapii w 1. linii",
		"Bez wcześniejszego inhibitora PARP",
		"Bez wcześniejszego niesteroidowego antyandrogenu",
	}
	v.AddWarning("UWAGA: Stosować WYŁĄCZNIE tabletkę złożoną niraparib+abirateron")
	return v
}

// CheckTalazoparibEnzalutamide evaluates the talazoparib + enzalutamide
// combination: first-line mCRPC with any accepted HRR gene mutation.
func (e *Engine) CheckTalazoparibEnzalutamide(in B56Input) *DrugVerdict {
	v := newDrugVerdict(domain.TalazoparibEnzalutamide, "Talazoparib + Enzalutamide", "Talazoparib + Enzalutamid")
	if !in.gate(v) {
		return v
	}

	if in.ECOG > 2 {
		v.AddNotMet(fmt.Sprintf("ECOG %d > 2", in.ECOG))
		return v
	}
	if !in.HasMetastases {
		v.AddNotMet("Brak przerzutów (wymagane mCRPC)")
		return v
	}
	if !in.castrationOK(v) {
		return v
	}
	if !in.progressionOK(v) {
		return v
	}

	if len(in.HRRMutations) == 0 {
		v.AddNotMet("Wymagana mutacja HRR: " + strings.Join(HRRGeneList(), ", "))
		return v
	}
	var valid []string
	for _, m := range in.HRRMutations {
		if HRRGenes[strings.ToUpper(strings.TrimSpace(m))] {
			valid = append(valid, m)
		}
	}
	if len(valid) == 0 {
		v.AddNotMet(fmt.Sprintf("Brak uznawanej mutacji HRR. Podane: %v. Akceptowane: %s",
			in.HRRMutations, strings.Join(HRRGeneList(), ", ")))
		return v
	}

	if in.ChemotherapyIndicated {
		v.AddNotMet("Chemioterapia wskazana (tala+enza dla 1. linii bez CHT)")
		return v
	}
	if in.PriorAbiraterone {
		v.AddNotMet("Wcześniejszy abirateron")
		return v
	}
	if in.PriorPARPInhibitor {
		v.AddNotMet("Wcześniejszy inhibitor PARP")
		return v
	}
	if in.PriorNSAA {
		v.AddNotMet("Wcześniejszy niesteroidowy antyandrogen")
		return v
	}
	if !in.crclOK(v, "- redukcja dawki talazoparib") {
		return v
	}

	v.Eligible = true
	v.Indication = "mCRPC z mutacją HRR, 1. linia (bez wskazań do CHT)"
	v.CriteriaMet = []string{
		fmt.Sprintf("ECOG %d (0-2)", in.ECOG),
		"mCRPC",
		"Mutacja HRR: " + strings.Join(valid, ", "),
		"Brak wskazań do chemioterapii",
		"Bez wcześniejszego abirateronu/PARP/niesteroidowego antyandrogenu",
	}
	return v
}
