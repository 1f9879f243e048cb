package nomogram

import "strings"

// Roach estimates the risk of pelvic lymph node involvement with the Roach
// formula: 2/3 * PSA + 10 * (Gleason - 6), clamped to [0, 100]. Risk >=15%
// supports elective pelvic nodal irradiation.
func Roach(psa float64, gleason int) *RTResult {
	if psa < 0 {
		return &RTResult{OK: false, Reason: "PSA must be >=0"}
	}
	if gleason < 6 || gleason > 10 {
		return &RTResult{OK: false, Reason: "Gleason score must be 6-10 for the Roach formula"}
	}

	prob := (2.0/3.0)*psa + float64(gleason-6)*10
	if prob < 0 {
		prob = 0
	}
	if prob > 100 {
		prob = 100
	}
	prob = round1(prob)

	return &RTResult{
		OK:                true,
		Probability:       prob,
		RecommendPelvicRT: prob >= PelvicRTThreshold,
		Threshold:         PelvicRTThreshold,
		Model:             "Roach formula",
	}
}

// Yale estimates pelvic nodal risk with the Yale formula:
// (Gleason - 5) * (PSA/3 + 1.5 * T), where T is 0 for T1a-c, 1 for T2a
// and 2 for higher stages.
func Yale(psa float64, gleason int, clinicalStage string) *RTResult {
	if psa < 0 {
		return &RTResult{OK: false, Reason: "PSA must be >=0"}
	}
	if gleason < 6 || gleason > 10 {
		return &RTResult{OK: false, Reason: "Gleason score must be 6-10 for the Yale formula"}
	}

	stage := strings.ToUpper(strings.TrimSpace(clinicalStage))
	stage = strings.TrimPrefix(stage, "C")
	stage = strings.TrimPrefix(stage, "P")

	var tValue float64
	switch stage {
	case "T1A", "T1B", "T1C", "T1":
		tValue = 0
	case "T2A":
		tValue = 1
	default:
		tValue = 2
	}

	prob := float64(gleason-5) * (psa/3 + 1.5*tValue)
	if prob < 0 {
		prob = 0
	}
	if prob > 100 {
		prob = 100
	}
	prob = round1(prob)

	return &RTResult{
		OK:                true,
		Probability:       prob,
		RecommendPelvicRT: prob >= PelvicRTThreshold,
		Threshold:         PelvicRTThreshold,
		Model:             "Yale formula",
	}
}
