package nomogram

import "strings"

// MSKCCInput carries the predictors for the MSKCC-style LNI approximation.
type MSKCCInput struct {
	PSA           float64
	GradeGroup    int
	ClinicalStage string
}

// MSKCC approximates the MSKCC pre-radical-prostatectomy lymph node
// invasion nomogram from grade group, PSA band and clinical stage.
func MSKCC(in MSKCCInput) *LNIResult {
	if in.PSA < 0 {
		return invalid("PSA must be >=0")
	}
	if in.GradeGroup < 1 || in.GradeGroup > 5 {
		return invalidf("Grade group must be 1-5 (got %d)", in.GradeGroup)
	}

	base := map[int]float64{1: 1, 2: 3, 3: 8, 4: 15, 5: 25}[in.GradeGroup]
	if base == 0 {
		base = 5
	}

	var psaMult float64
	switch {
	case in.PSA <= 4:
		psaMult = 0.5
	case in.PSA <= 10:
		psaMult = 1.0
	case in.PSA <= 20:
		psaMult = 1.5
	default:
		psaMult = 2.5
	}

	stage := strings.ToUpper(strings.TrimSpace(in.ClinicalStage))
	stage = strings.TrimPrefix(stage, "C")
	stage = strings.TrimPrefix(stage, "P")
	var stageMult float64
	switch {
	case strings.HasPrefix(stage, "T1"):
		stageMult = 0.8
	case stage == "T2A":
		stageMult = 1.0
	case stage == "T2B", stage == "T2C", stage == "T2":
		stageMult = 1.3
	default:
		stageMult = 2.0
	}

	prob := base * psaMult * stageMult
	if prob > 95 {
		prob = 95
	}
	return lniResult(round1(prob), "MSKCC (approximation)")
}
