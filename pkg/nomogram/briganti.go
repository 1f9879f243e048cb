package nomogram

import (
	"math"
	"strings"
)

// Briganti 2017 logistic model coefficients (Gandaglia et al., Eur Urol 2017).
const (
	b17Intercept  = -5.8717
	b17PSA        = 0.0826
	b17StageT2    = 0.3633
	b17StageT3    = 0.9555
	b17GG2        = 0.3293
	b17GG3        = 0.7419
	b17GG4        = 0.8755
	b17GG5        = 1.2809
	b17PctHighest = 0.0130
	b17PctLowest  = 0.0113
)

// Briganti2017Input carries the biopsy-based predictors for the 2017 model.
// Percentages refer to core involvement of the highest- and lowest-grade
// positive cores.
type Briganti2017Input struct {
	PSA             float64
	ClinicalStage   string // T1, T2, T3 (subcategories simplified)
	GradeGroup      int
	PctCoresHighest float64
	PctCoresLowest  float64
}

// Briganti2017 computes the probability of lymph node invasion with the
// Briganti 2017 logistic regression model.
func Briganti2017(in Briganti2017Input) *LNIResult {
	if in.PSA < 0 {
		return invalid("PSA must be >=0")
	}
	if in.GradeGroup < 1 || in.GradeGroup > 5 {
		return invalidf("Grade group must be 1-5 (got %d)", in.GradeGroup)
	}
	if in.PctCoresHighest < 0 || in.PctCoresHighest > 100 {
		return invalid("Percent highest-grade core involvement must be 0-100")
	}
	if in.PctCoresLowest < 0 || in.PctCoresLowest > 100 {
		return invalid("Percent lowest-grade core involvement must be 0-100")
	}

	stage := simplifyStage(in.ClinicalStage)
	if stage == "" {
		return invalidf("Clinical stage must be T1-T3 (got %q)", in.ClinicalStage)
	}

	lp := b17Intercept + b17PSA*in.PSA
	switch stage {
	case "T2":
		lp += b17StageT2
	case "T3":
		lp += b17StageT3
	}
	switch in.GradeGroup {
	case 2:
		lp += b17GG2
	case 3:
		lp += b17GG3
	case 4:
		lp += b17GG4
	case 5:
		lp += b17GG5
	}
	lp += b17PctHighest*in.PctCoresHighest + b17PctLowest*in.PctCoresLowest

	prob := 100 / (1 + math.Exp(-lp))
	return lniResult(round1(prob), "Briganti 2017")
}

// simplifyStage reduces a clinical T category to T1/T2/T3 for the 2017 model.
func simplifyStage(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "C")
	s = strings.TrimPrefix(s, "P")
	switch {
	case strings.HasPrefix(s, "T1"):
		return "T1"
	case strings.HasPrefix(s, "T2"):
		return "T2"
	case strings.HasPrefix(s, "T3"), strings.HasPrefix(s, "T4"):
		return "T3"
	}
	return ""
}

// Briganti2012Input carries the predictors for the simplified 2012 model.
type Briganti2012Input struct {
	PSA              float64
	ClinicalStage    string
	GleasonPrimary   int
	GleasonSecondary int
	PctPositiveCores float64
}

// Briganti2012 approximates the Briganti 2012 LNI nomogram from PSA band,
// Gleason pattern, clinical stage and percent positive cores.
func Briganti2012(in Briganti2012Input) *LNIResult {
	if in.PSA < 0 {
		return invalid("PSA must be >=0")
	}
	gleason := in.GleasonPrimary + in.GleasonSecondary
	if gleason < 6 || gleason > 10 {
		return invalidf("Gleason score must be 6-10 (got %d)", gleason)
	}
	if in.PctPositiveCores < 0 || in.PctPositiveCores > 100 {
		return invalid("Percent positive cores must be 0-100")
	}

	var base float64
	switch {
	case in.PSA < 10:
		base = 2
	case in.PSA < 20:
		base = 5
	default:
		base = 10
	}

	var gleasonMult float64
	switch {
	case gleason <= 6:
		gleasonMult = 1.0
	case gleason == 7:
		if in.GleasonPrimary == 4 {
			gleasonMult = 2.0
		} else {
			gleasonMult = 1.5
		}
	case gleason == 8:
		gleasonMult = 3.0
	default:
		gleasonMult = 4.0
	}

	stage := strings.ToUpper(strings.TrimSpace(in.ClinicalStage))
	stage = strings.TrimPrefix(stage, "C")
	stage = strings.TrimPrefix(stage, "P")
	var stageMult float64
	switch stage {
	case "T1A", "T1B", "T1C", "T1", "T2A":
		stageMult = 1.0
	case "T2B", "T2C", "T2":
		stageMult = 1.5
	default:
		stageMult = 2.5
	}

	coreMult := 1 + in.PctPositiveCores/100

	prob := base * gleasonMult * stageMult * coreMult
	if prob > 95 {
		prob = 95
	}
	return lniResult(round1(prob), "Briganti 2012 (approximation)")
}
