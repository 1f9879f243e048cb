package domain

// ClinicalSnapshot holds the normalized inputs for one evaluation. Optional
// fields are pointers: nil means the value was not supplied, and each cascade
// documents whether an absent field fails validation or is silently skipped.
// A snapshot is constructed fresh per call and never mutated afterwards.
type ClinicalSnapshot struct {
	PSA        *float64  `json:"psa,omitempty"`         // ng/mL, >=0
	GradeGroup *int      `json:"grade_group,omitempty"` // ISUP 1-5
	T          TCategory `json:"t_category"`
	N          NCategory `json:"n_category"`
	M          MCategory `json:"m_category"`

	PositiveCores      *int     `json:"positive_cores,omitempty"`
	TotalCores         *int     `json:"total_cores,omitempty"`
	MaxCoreInvolvement *float64 `json:"max_core_involvement,omitempty"` // percent
	PSADensity         *float64 `json:"psa_density,omitempty"`          // ng/mL/g
	PrimaryGleason     *int     `json:"primary_gleason,omitempty"`
	SecondaryGleason   *int     `json:"secondary_gleason,omitempty"`

	Age   *int         `json:"age,omitempty"`
	ECOG  *int         `json:"ecog,omitempty"` // 0-4
	State DiseaseState `json:"disease_state,omitempty"`
}

// PercentPositiveCores returns positive/total*100 when both counts are
// present and total > 0, otherwise 0. Never a division fault.
func (s *ClinicalSnapshot) PercentPositiveCores() float64 {
	if s.PositiveCores == nil || s.TotalCores == nil || *s.TotalCores <= 0 {
		return 0
	}
	return float64(*s.PositiveCores) / float64(*s.TotalCores) * 100
}

// Validate checks the snapshot's categorical fields against their closed
// enumerations. Numeric ranges are intentionally not checked here: each
// cascade validates the ranges it actually requires (e.g., Roach needs
// Gleason 6-10 while CAPRA accepts any non-negative PSA).
func (s *ClinicalSnapshot) Validate() error {
	if s.T != "" && !s.T.IsValid() {
		return NewValidationError("T category", string(s.T), ValidTCategories())
	}
	if s.N != "" && !s.N.IsValid() {
		return NewValidationError("N category", string(s.N), ValidNCategories())
	}
	if s.M != "" && !s.M.IsValid() {
		return NewValidationError("M category", string(s.M), ValidMCategories())
	}
	if s.State != "" && !s.State.IsValid() {
		return NewValidationError("disease state", string(s.State), ValidDiseaseStates())
	}
	return nil
}

// Float returns a *float64 for literal optional values.
func Float(v float64) *float64 { return &v }

// Int returns an *int for literal optional values.
func Int(v int) *int { return &v }

// Bool returns a *bool for literal optional values.
func Bool(v bool) *bool { return &v }
