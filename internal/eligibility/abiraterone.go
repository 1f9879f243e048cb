package eligibility

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/prostate-cdss-server/internal/domain"
)

// AbirateroneInput carries everything the C.87.a/C.87.b cascades look at.
// Pointer fields are optional clinical data; a nil value means "not
// assessed", which the cascade treats differently from a negative finding.
type AbirateroneInput struct {
	State domain.DiseaseState `json:"disease_state"`

	HasMetastases       bool `json:"has_metastases"`
	CastrationResistant bool `json:"castration_resistant"`

	// High-risk assessment for mHSPC/mCSPC.
	GleasonScore        *int `json:"gleason_score,omitempty"`
	BoneMetastasesCount *int `json:"bone_metastases_count,omitempty"`
	VisceralMetastases  bool `json:"has_visceral_metastases"`

	// nmCRPC.
	PSADTMonths *float64 `json:"psadt_months,omitempty"`

	// Adjuvant after radical radiotherapy.
	AfterRadicalRT bool     `json:"after_radical_rt"`
	NodePositive   *bool    `json:"n_positive,omitempty"`
	TCategory      string   `json:"t_category,omitempty"`
	PSAAtDiagnosis *float64 `json:"psa_at_diagnosis,omitempty"`

	// mCRPC.
	Symptomatic   bool `json:"symptomatic"`
	PostDocetaxel bool `json:"post_docetaxel"`
	ADTFailure    bool `json:"adt_failure"`

	// Treatment history.
	PriorNovelHormonalAgent bool     `json:"prior_novel_hormonal_agent"`
	PriorAbiraterone        bool     `json:"prior_abiraterone"`
	MonthsSinceADTStart     *float64 `json:"months_since_adt_start,omitempty"`
}

// AbirateroneVerdict extends the base verdict with the C.87-specific
// outputs: the qualifying attachment, treatment options and duration cap.
type AbirateroneVerdict struct {
	domain.RuleVerdict

	HighRiskFactorCount int      `json:"high_risk_factors_count,omitempty"`
	TreatmentOptions    []string `json:"treatment_options,omitempty"`
	MaxDuration         string   `json:"max_duration,omitempty"`
}

// CheckAbiraterone evaluates abiraterone reimbursement under attachments
// C.87.a and C.87.b. A patient can receive abiraterone under only one
// indication, and prior novel hormonal agents exclude reimbursement
// entirely; both exclusions fire before any per-state cascade runs.
func (e *Engine) CheckAbiraterone(in AbirateroneInput) *AbirateroneVerdict {
	v := &AbirateroneVerdict{}

	e.logger.WithFields(logrus.Fields{
		"disease_state":        in.State,
		"has_metastases":       in.HasMetastases,
		"castration_resistant": in.CastrationResistant,
	}).Debug("Evaluating abiraterone eligibility")

	if in.PriorAbiraterone {
		v.Exclusions = append(v.Exclusions,
			"Wcześniejsze leczenie abirateronem (można stosować tylko w jednym wskazaniu)")
		v.ExclusionReason = "Prior abiraterone treatment"
		return v
	}
	if in.PriorNovelHormonalAgent {
		v.Exclusions = append(v.Exclusions,
			"Wcześniejsze leczenie nowoczesnym lekiem hormonalnym (apalutamid, enzalutamid, darolutamid)")
		v.ExclusionReason = "Prior novel hormonal agent (apalutamide, enzalutamide, darolutamide)"
		return v
	}

	switch normalizeState(in.State) {
	case "mhspc":
		e.abirateroneMHSPC(in, v)
	case "mcrpc", "mcrpc_pre", "mcrpc_post":
		e.abirateroneMCRPC(in, v)
	case "mcspc":
		e.abirateroneMCSPC(in, v)
	case "nmcrpc":
		e.abirateroneNMCRPC(in, v)
	case "adjuvant_post_rt":
		e.abirateroneAdjuvant(in, v)
	default:
		v.AddNotMet(fmt.Sprintf(
			"Nierozpoznany stan choroby: '%s'. Dozwolone (bez rozróżnienia wielkości liter): mhspc, mcspc, nmcrpc, mcrpc, adjuvant_post_rt",
			in.State))
	}

	e.logger.WithFields(logrus.Fields{
		"eligible":   v.Eligible,
		"attachment": v.Attachment,
	}).Info("Abiraterone eligibility evaluated")
	return v
}

// abirateroneMHSPC is attachment C.87.a.1: high-risk newly diagnosed mHSPC.
// High risk means >=2 of {Gleason >=8, >=3 bone metastases, visceral
// metastases}, and treatment must start within 3 months of ADT.
func (e *Engine) abirateroneMHSPC(in AbirateroneInput, v *AbirateroneVerdict) {
	if !in.HasMetastases {
		v.AddNotMet("Brak przerzutów (wymagane przerzuty dla mHSPC)")
		return
	}
	if in.CastrationResistant {
		v.AddNotMet("Rak oporny na kastrację (wymagany hormonowrażliwy)")
		return
	}

	var missing []string
	if in.GleasonScore == nil {
		missing = append(missing, "Gleason")
	}
	if in.BoneMetastasesCount == nil {
		missing = append(missing, "liczba przerzutów do kości")
	}
	if len(missing) > 0 {
		v.AddNotMet("Brak danych wymaganych do oceny wysokiego ryzyka: " + strings.Join(missing, ", "))
		v.AddWarning("Nie można ocenić kwalifikacji do C.87.a bez pełnych danych o czynnikach ryzyka")
		v.MissingData = missing
		return
	}

	factors := 0
	var details []string
	if *in.GleasonScore >= 8 {
		factors++
		details = append(details, fmt.Sprintf("Gleason ≥8 (%d)", *in.GleasonScore))
	} else {
		v.AddNotMet(fmt.Sprintf("Gleason <8 (%d)", *in.GleasonScore))
	}
	if *in.BoneMetastasesCount >= 3 {
		factors++
		details = append(details, fmt.Sprintf("≥3 przerzuty do kości (%d)", *in.BoneMetastasesCount))
	} else {
		v.AddNotMet(fmt.Sprintf("<3 przerzuty do kości (%d)", *in.BoneMetastasesCount))
	}
	if in.VisceralMetastases {
		factors++
		details = append(details, "Przerzuty trzewne (z wyłączeniem węzłów chłonnych)")
	}

	if factors < 2 {
		v.AddNotMet(fmt.Sprintf("Wymagane ≥2 z 3 czynników wysokiego ryzyka (spełnione: %d)", factors))
		v.Alternative = "Rozważ kwalifikację jako mCSPC (zał. C.87.b)"
		return
	}

	v.Eligible = true
	v.Indication = "mHSPC wysokiego ryzyka (nowo rozpoznany)"
	v.IndicationEN = "High-risk newly diagnosed mHSPC"
	v.Attachment = "C.87.a"
	v.CriteriaMet = details
	v.HighRiskFactorCount = factors

	// Mandatory timing window: abiraterone must start within 3 months of ADT.
	switch {
	case in.MonthsSinceADTStart == nil:
		v.Eligible = false
		v.AddNotMet("Brak danych o czasie od rozpoczęcia ADT (wymagane: ≤3 miesiące)")
		v.AddWarning("Podaj months_since_adt_start - leczenie musi być rozpoczęte w ciągu 3 mies. od ADT")
	case *in.MonthsSinceADTStart > 3:
		v.Eligible = false
		v.AddNotMet(fmt.Sprintf("Przekroczony limit czasowy: %.1f mies. od ADT (max. 3 mies.)", *in.MonthsSinceADTStart))
	default:
		v.AddMet(fmt.Sprintf("Rozpoczęcie w ciągu 3 mies. od ADT (%.1f mies.)", *in.MonthsSinceADTStart))
	}
}

// abirateroneMCRPC is attachment C.87.a.2/a.3: mCRPC before chemotherapy
// (asymptomatic or oligosymptomatic) or after docetaxel failure. The
// explicit mCRPC_pre/mCRPC_post tags override the PostDocetaxel flag.
func (e *Engine) abirateroneMCRPC(in AbirateroneInput, v *AbirateroneVerdict) {
	postDocetaxel := in.PostDocetaxel
	switch normalizeState(in.State) {
	case "mcrpc_pre":
		postDocetaxel = false
	case "mcrpc_post":
		postDocetaxel = true
	}

	if !in.HasMetastases {
		v.AddNotMet("Brak przerzutów (wymagane dla mCRPC)")
		return
	}
	if !in.CastrationResistant {
		v.AddNotMet("Rak wrażliwy na kastrację (wymagany CRPC)")
		return
	}

	if postDocetaxel {
		v.Eligible = true
		v.Indication = "mCRPC po niepowodzeniu chemioterapii opartej o docetaksel"
		v.IndicationEN = "mCRPC after docetaxel-based chemotherapy failure"
		v.Attachment = "C.87.a"
		v.CriteriaMet = []string{
			"Oporny na kastrację",
			"Przerzuty obecne",
			"Po niepowodzeniu chemioterapii opartej o docetaksel (progresja lub nietolerancja)",
		}
		v.AddWarning("UWAGA: post_docetaxel=True zakłada niepowodzenie leczenia docetakselem (progresja biochemiczna/kliniczna lub nietolerancja)")
		return
	}

	if !in.ADTFailure {
		v.AddNotMet("Wymagane niepowodzenie ADT")
		return
	}
	if in.Symptomatic {
		v.AddNotMet("Pacjent objawowy (wymagany bezobjawowy lub skąpoobjawowy)")
		v.AddWarning("Dla pacjentów objawowych rozważ chemioterapię lub C.87.a.3 po docetakselu")
		return
	}

	v.Eligible = true
	v.Indication = "mCRPC bezobjawowy/skąpoobjawowy, przed chemioterapią"
	v.IndicationEN = "Asymptomatic/oligosymptomatic mCRPC, pre-chemotherapy"
	v.Attachment = "C.87.a"
	v.CriteriaMet = []string{
		"Oporny na kastrację",
		"Przerzuty obecne",
		"Niepowodzenie ADT",
		"Bezobjawowy lub skąpoobjawowy",
		"Chemioterapia nie jest jeszcze wskazana klinicznie",
	}
}

// abirateroneMCSPC is attachment C.87.b.1: mCSPC that does NOT meet the
// C.87.a high-risk criteria. When the high-risk factors can be counted and
// reach 2, the patient belongs under C.87.a instead.
func (e *Engine) abirateroneMCSPC(in AbirateroneInput, v *AbirateroneVerdict) {
	if !in.HasMetastases {
		v.AddNotMet("Brak przerzutów (wymagane dla mCSPC)")
		return
	}
	if in.CastrationResistant {
		v.AddNotMet("Rak oporny na kastrację (wymagany wrażliwy)")
		return
	}

	factors := 0
	var details []string
	if in.GleasonScore != nil && *in.GleasonScore >= 8 {
		factors++
		details = append(details, fmt.Sprintf("Gleason ≥8 (%d)", *in.GleasonScore))
	}
	if in.BoneMetastasesCount != nil && *in.BoneMetastasesCount >= 3 {
		factors++
		details = append(details, fmt.Sprintf("≥3 przerzuty do kości (%d)", *in.BoneMetastasesCount))
	}
	if in.VisceralMetastases {
		factors++
		details = append(details, "Przerzuty trzewne")
	}

	if factors >= 2 {
		v.AddNotMet(fmt.Sprintf("Spełnia kryteria wysokiego ryzyka C.87.a (%d/3 czynników)", factors))
		v.CriteriaNotMet = append(v.CriteriaNotMet, details...)
		v.Alternative = "Pacjent kwalifikuje się do C.87.a (mHSPC wysokiego ryzyka), nie C.87.b"
		return
	}

	if in.GleasonScore == nil || in.BoneMetastasesCount == nil {
		v.AddWarning("Brak pełnych danych do oceny wysokiego ryzyka - upewnij się, że pacjent nie spełnia kryteriów C.87.a")
	}

	v.Eligible = true
	v.Indication = "mCSPC niespełniający kryteriów wysokiego ryzyka C.87.a, w połączeniu z ADT (samodzielnie lub z 18-tyg. docetakselem)"
	v.IndicationEN = "mCSPC not meeting C.87.a high-risk criteria, with ADT alone or with 18-week docetaxel"
	v.Attachment = "C.87.b"
	v.CriteriaMet = []string{
		"Wrażliwy na kastrację",
		"Przerzuty obecne",
		fmt.Sprintf("Nie spełnia kryteriów wysokiego ryzyka C.87.a (%d/3 czynników)", factors),
	}
	v.TreatmentOptions = []string{
		"ADT + abirateron (monoterapia)",
		"ADT + abirateron + docetaksel (18 tyg.)",
	}
}

// abirateroneNMCRPC is attachment C.87.b.2: nmCRPC with high metastasis
// risk, defined as PSADT <=10 months.
func (e *Engine) abirateroneNMCRPC(in AbirateroneInput, v *AbirateroneVerdict) {
	if in.HasMetastases {
		v.AddNotMet("Przerzuty obecne (wymagany nmCRPC bez przerzutów)")
		return
	}
	if !in.CastrationResistant {
		v.AddNotMet("Rak wrażliwy na kastrację (wymagany CRPC)")
		return
	}
	if in.PSADTMonths == nil {
		v.AddNotMet("Brak danych o PSA DT (wymagane PSA DT ≤10 mies.)")
		v.MissingData = append(v.MissingData, "psadt_months")
		return
	}
	if *in.PSADTMonths > 10 {
		v.AddNotMet(fmt.Sprintf("PSA DT >10 miesięcy (%.1f mies.) - wymagane ≤10 mies.", *in.PSADTMonths))
		v.AddWarning("Duże ryzyko przerzutów definiowane jako PSA DT ≤10 miesięcy")
		return
	}

	v.Eligible = true
	v.Indication = "nmCRPC z dużym ryzykiem przerzutów (PSA DT ≤10 mies.)"
	v.IndicationEN = "nmCRPC with high risk of metastasis (PSADT ≤10 months)"
	v.Attachment = "C.87.b"
	v.CriteriaMet = []string{
		"Oporny na kastrację",
		"Bez przerzutów (M0)",
		fmt.Sprintf("PSA DT ≤10 miesięcy (%.1f mies.) - duże ryzyko przerzutów", *in.PSADTMonths),
	}
}

// abirateroneAdjuvant is attachment C.87.b.3: adjuvant hormonal therapy
// after radical radiotherapy, high-risk group. N+ qualifies outright;
// N- needs >=2 of {T3-4, Gleason 8-10, PSA >=40}; unknown N blocks.
func (e *Engine) abirateroneAdjuvant(in AbirateroneInput, v *AbirateroneVerdict) {
	if !in.AfterRadicalRT {
		v.AddNotMet("Brak radioterapii radykalnej w wywiadzie")
		return
	}

	if in.HasMetastases {
		v.AddWarning("UWAGA: Wskazano przerzuty (has_metastases=True), ale leczenie adjuwantowe dotyczy zwykle choroby miejscowej po RT")
	}
	if in.CastrationResistant {
		v.AddWarning("UWAGA: Wskazano oporność na kastrację (castration_resistant=True), ale leczenie adjuwantowe dotyczy zwykle choroby hormonowrażliwej")
	}

	if in.NodePositive == nil {
		v.AddNotMet("Brak danych o statusie węzłów chłonnych (N) - wymagane dla oceny kwalifikacji")
		v.MissingData = append(v.MissingData, "n_positive")
		return
	}

	if *in.NodePositive {
		v.Eligible = true
		v.Indication = "Uzupełniająca hormonoterapia po RT radykalnej - grupa wysokiego ryzyka (N+)"
		v.IndicationEN = "Adjuvant after radical RT - high-risk (N+)"
		v.Attachment = "C.87.b"
		v.CriteriaMet = []string{
			"Po radioterapii radykalnej",
			"Przerzuty w węzłach chłonnych (N+)",
		}
		v.MaxDuration = "24 miesiące (2 lata)"
		v.AddWarning("Maksymalny czas leczenia: 2 lata w skojarzeniu z ADT")
		return
	}

	factors := 0
	var details []string
	if in.TCategory != "" && isT3ToT4(in.TCategory) {
		factors++
		details = append(details, fmt.Sprintf("Cecha T3-4 (%s)", in.TCategory))
	}
	if in.GleasonScore != nil && *in.GleasonScore >= 8 {
		factors++
		details = append(details, fmt.Sprintf("Gleason 8-10 (%d)", *in.GleasonScore))
	}
	if in.PSAAtDiagnosis != nil && *in.PSAAtDiagnosis >= 40 {
		factors++
		details = append(details, fmt.Sprintf("PSA ≥40 ng/mL (%.1f)", *in.PSAAtDiagnosis))
	}

	if factors < 2 {
		v.AddNotMet(fmt.Sprintf("N- wymaga ≥2 z 3 czynników: T3-4, Gleason 8-10, PSA ≥40 (spełnione: %d/3)", factors))
		v.CriteriaMet = details
		return
	}

	v.Eligible = true
	v.Indication = "Uzupełniająca hormonoterapia po RT radykalnej - grupa wysokiego ryzyka (N-, ≥2 czynniki ryzyka)"
	v.IndicationEN = "Adjuvant after radical RT - high-risk (N-, >=2 risk factors)"
	v.Attachment = "C.87.b"
	v.CriteriaMet = append([]string{
		"Po radioterapii radykalnej",
		"Brak przerzutów w węzłach chłonnych (N-)",
		fmt.Sprintf("≥2 z 3 czynników ryzyka spełnione (%d/3)", factors),
	}, details...)
	v.MaxDuration = "24 miesiące (2 lata)"
	v.AddWarning("Maksymalny czas leczenia: 2 lata w skojarzeniu z ADT")
}

// isT3ToT4 reports whether a raw clinical T tag is locally advanced.
func isT3ToT4(raw string) bool {
	t := strings.ToUpper(strings.TrimSpace(raw))
	t = strings.TrimPrefix(t, "C")
	t = strings.TrimPrefix(t, "P")
	switch t {
	case "T3", "T3A", "T3B", "T4":
		return true
	}
	return false
}
