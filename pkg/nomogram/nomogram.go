// Package nomogram implements published lymph-node-invasion and pelvic
// risk nomograms for prostate cancer: Briganti 2017 and 2012, the Roach
// formula, the Yale formula, and an MSKCC-style approximation.
//
// All functions return a probability in percent together with the
// guideline decision threshold that drives extended pelvic lymph node
// dissection (ePLND) or elective pelvic irradiation.
package nomogram

import "fmt"

// ePLND is recommended when predicted LNI risk is >=7% (EAU guidelines).
const EPLNDThreshold = 7.0

// PelvicRTThreshold is the Roach cut-point for elective pelvic RT (>=15%).
const PelvicRTThreshold = 15.0

// LNIResult is a lymph-node-invasion probability with the ePLND decision.
type LNIResult struct {
	OK             bool    `json:"ok"`
	Reason         string  `json:"reason,omitempty"`
	Probability    float64 `json:"probability,omitempty"`
	RecommendEPLND bool    `json:"recommend_eplnd"`
	Threshold      float64 `json:"threshold,omitempty"`
	Model          string  `json:"model,omitempty"`
}

// RTResult is a pelvic nodal risk estimate with the elective-RT decision.
type RTResult struct {
	OK                bool    `json:"ok"`
	Reason            string  `json:"reason,omitempty"`
	Probability       float64 `json:"probability,omitempty"`
	RecommendPelvicRT bool    `json:"recommend_pelvic_rt"`
	Threshold         float64 `json:"threshold,omitempty"`
	Model             string  `json:"model,omitempty"`
}

func round1(v float64) float64 {
	if v < 0 {
		return 0
	}
	return float64(int(v*10+0.5)) / 10
}

func lniResult(prob float64, model string) *LNIResult {
	return &LNIResult{
		OK:             true,
		Probability:    prob,
		RecommendEPLND: prob >= EPLNDThreshold,
		Threshold:      EPLNDThreshold,
		Model:          model,
	}
}

func invalid(reason string) *LNIResult {
	return &LNIResult{OK: false, Reason: reason}
}

func invalidf(format string, args ...interface{}) *LNIResult {
	return invalid(fmt.Sprintf(format, args...))
}
