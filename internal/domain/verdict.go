package domain

// RuleVerdict is the uniform output shape produced by every rule cascade:
// one class label, the criteria that matched, the criteria that did not, and
// any warnings. Eligibility cascades additionally carry an exclusion reason
// that short-circuits all further evaluation, and the indication/attachment
// fields the report formatters need.
//
// Exactly one class label per verdict. CriteriaMet and CriteriaNotMet are
// mutually exclusive per rule instance but may co-exist on a verdict when
// some optional data is absent.
type RuleVerdict struct {
	Class          string   `json:"class"`
	Eligible       bool     `json:"eligible"`
	CriteriaMet    []string `json:"criteria_met,omitempty"`
	CriteriaNotMet []string `json:"criteria_not_met,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
	MissingData    []string `json:"missing_data,omitempty"`

	// Eligibility-only fields.
	Indication      string   `json:"indication,omitempty"`
	IndicationEN    string   `json:"indication_en,omitempty"`
	Attachment      string   `json:"attachment,omitempty"`
	Exclusions      []string `json:"exclusions,omitempty"`
	ExclusionReason string   `json:"exclusion_reason,omitempty"`
	Alternative     string   `json:"alternative,omitempty"`
}

// Excluded reports whether a global or programme exclusion fired.
func (v *RuleVerdict) Excluded() bool { return v.ExclusionReason != "" }

// InsufficientData reports whether the cascade stopped for missing fields
// rather than a failed condition.
func (v *RuleVerdict) InsufficientData() bool { return len(v.MissingData) > 0 }

// AddMet appends a matched criterion.
func (v *RuleVerdict) AddMet(c string) { v.CriteriaMet = append(v.CriteriaMet, c) }

// AddNotMet appends an unmatched criterion.
func (v *RuleVerdict) AddNotMet(c string) { v.CriteriaNotMet = append(v.CriteriaNotMet, c) }

// AddWarning appends a warning.
func (v *RuleVerdict) AddWarning(w string) { v.Warnings = append(v.Warnings, w) }

// StagingResult is the structured outcome of TNM category assignment.
// Invalid tokens produce OK=false with the validation detail; they are never
// raised as faults so batch evaluation can continue.
type StagingResult struct {
	OK    bool             `json:"ok"`
	Error *ValidationError `json:"error,omitempty"`

	T            TCategory `json:"t_category,omitempty"`
	TDescription string    `json:"t_description,omitempty"`
	N            NCategory `json:"n_category,omitempty"`
	NDescription string    `json:"n_description,omitempty"`
	M            MCategory `json:"m_category,omitempty"`
	MDescription string    `json:"m_description,omitempty"`
	Summary      string    `json:"tnm_summary,omitempty"`

	// Prognostic stage is filled when PSA and Grade Group were supplied.
	PrognosticStage            PrognosticStage `json:"prognostic_stage,omitempty"`
	PrognosticStageDescription string          `json:"prognostic_stage_description,omitempty"`
	PrognosticCriteria         string          `json:"prognostic_criteria,omitempty"`
}

// FactorPoints records one rubric factor's contribution to a point score.
type FactorPoints struct {
	Factor string `json:"factor"`
	Points int    `json:"points"`
}

// ScoreResult is the outcome of an additive point-score engine (CAPRA,
// CAPRA-S): the total, the fixed-cut-point band, and the per-factor
// breakdown required for auditability.
type ScoreResult struct {
	Score     int            `json:"score"`
	RiskGroup ScoreBand      `json:"risk_group"`
	Breakdown []FactorPoints `json:"breakdown"`
	Warnings  []string       `json:"warnings,omitempty"`
}

// Points returns the breakdown entry for a factor, 0 if absent.
func (r *ScoreResult) Points(factor string) int {
	for _, f := range r.Breakdown {
		if f.Factor == factor {
			return f.Points
		}
	}
	return 0
}
