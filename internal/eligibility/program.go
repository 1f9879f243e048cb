// Package eligibility evaluates Polish NFZ drug-reimbursement cascades for
// prostate cancer: abiraterone under attachments C.87.a/C.87.b and the six
// B.56 programme drugs. Criterion strings are kept in Polish exactly as the
// programme annexes phrase them; classification labels stay in English.
//
// Every check returns a structured verdict rather than an error: a patient
// who fails a criterion is a normal outcome, not a fault.
package eligibility

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/prostate-cdss-server/internal/domain"
)

// Engine runs the reimbursement cascades. Stateless apart from logging.
type Engine struct {
	logger *logrus.Logger
}

// NewEngine creates an eligibility engine.
func NewEngine(logger *logrus.Logger) *Engine {
	return &Engine{logger: logger}
}

// HRRGenes lists the homologous-recombination-repair genes the B.56
// programme accepts for talazoparib + enzalutamide.
var HRRGenes = map[string]bool{
	"BRCA1":  true,
	"BRCA2":  true,
	"ATM":    true,
	"CDK12":  true,
	"CHEK2":  true,
	"PALB2":  true,
	"RAD51C": true,
}

// HRRGeneList returns the accepted HRR genes in sorted order.
func HRRGeneList() []string {
	return []string{"ATM", "BRCA1", "BRCA2", "CDK12", "CHEK2", "PALB2", "RAD51C"}
}

// Dosing is the registered dose for a B.56 drug.
type Dosing struct {
	Dose      string `json:"dose"`
	Frequency string `json:"frequency"`
	WithFood  bool   `json:"with_food"`
	Note      string `json:"note,omitempty"`
}

// DosingTable holds the registered B.56 dosing per drug.
var DosingTable = map[domain.Drug]Dosing{
	domain.Apalutamide:  {Dose: "240 mg", Frequency: "once daily"},
	domain.Darolutamide: {Dose: "600 mg BID (1200 mg/day)", Frequency: "twice daily", WithFood: true},
	domain.Enzalutamide: {Dose: "160 mg", Frequency: "once daily"},
	domain.Olaparib:     {Dose: "300 mg BID (600 mg/day)", Frequency: "twice daily"},
	domain.NiraparibAbiraterone: {
		Dose:      "200 mg nira + 1000 mg abi + prednisone 10 mg",
		Frequency: "once daily",
		Note:      "MUST use combination tablet",
	},
	domain.TalazoparibEnzalutamide: {Dose: "0.5 mg tala + 160 mg enza", Frequency: "once daily"},
}

// DrugVerdict is the outcome of one B.56 per-drug cascade.
type DrugVerdict struct {
	Drug   domain.Drug `json:"drug"`
	DrugEN string      `json:"drug_en"`
	DrugPL string      `json:"drug_pl"`
	Dosing Dosing      `json:"dosing"`

	domain.RuleVerdict

	// TreatmentProtocol is filled for darolutamide in mHSPC, where the
	// docetaxel combination schedule is part of the indication.
	TreatmentProtocol []string `json:"treatment_protocol,omitempty"`
}

func newDrugVerdict(drug domain.Drug, en, pl string) *DrugVerdict {
	return &DrugVerdict{
		Drug:   drug,
		DrugEN: en,
		DrugPL: pl,
		Dosing: DosingTable[drug],
	}
}

// DocetaxelStatus values accepted for the apalutamide mHSPC pathway.
const (
	DocetaxelCompleted     = "completed"
	DocetaxelNotIndicated  = "not_indicated"
	DocetaxelNotApplicable = "not_applicable"
)

// generalCriteria applies the B.56 preconditions shared by every drug.
// All failing reasons are reported together so the clinician sees the
// complete picture in one pass.
func generalCriteria(histologyConfirmed bool, age int, otherMalignancy, neuroendocrine bool) []string {
	var issues []string
	if !histologyConfirmed {
		issues = append(issues, "Wymagane histologiczne potwierdzenie gruczolakoraka stercza")
	}
	if age < 18 {
		issues = append(issues, fmt.Sprintf("Wiek <18 lat (%d)", age))
	}
	if otherMalignancy {
		issues = append(issues, "Niekontrolowany inny nowotwór złośliwy")
	}
	if neuroendocrine {
		issues = append(issues, "Rak neuroendokrynny/drobnokomórkowy/przewodowy (wyklucza z programu)")
	}
	return issues
}

// normalizeState lowercases and trims a disease-state tag the way the
// programme annexes compare them.
func normalizeState(s domain.DiseaseState) string {
	return strings.ToLower(strings.TrimSpace(string(s)))
}
