// Package domain contains the core value types for prostate-cancer clinical
// decision support: the closed T/N/M category enumerations, disease states,
// risk-group labels, and the structured verdicts every rule cascade produces.
//
// References: AJCC Cancer Staging Manual, 8th Edition (2018); NCCN Clinical
// Practice Guidelines in Oncology, Prostate Cancer; EAU Guidelines on
// Prostate Cancer.
package domain

// TCategory is the clinical/pathologic T category from the closed AJCC
// enumeration. Values are canonical tokens: uppercase with any leading
// "c"/"p" prefix already stripped by the normalizer.
type TCategory string

const (
	T1  TCategory = "T1"
	T1A TCategory = "T1A"
	T1B TCategory = "T1B"
	T1C TCategory = "T1C"
	T2  TCategory = "T2"
	T2A TCategory = "T2A"
	T2B TCategory = "T2B"
	T2C TCategory = "T2C"
	T3  TCategory = "T3"
	T3A TCategory = "T3A"
	T3B TCategory = "T3B"
	T4  TCategory = "T4"
	TX  TCategory = "TX"
)

// NCategory is the regional lymph-node category.
type NCategory string

const (
	N0 NCategory = "N0"
	N1 NCategory = "N1"
	NX NCategory = "NX"
)

// MCategory is the distant-metastasis category.
type MCategory string

const (
	M0  MCategory = "M0"
	M1  MCategory = "M1"
	M1A MCategory = "M1A"
	M1B MCategory = "M1B"
	M1C MCategory = "M1C"
)

// ValidTCategories lists the accepted T tokens in staging order.
// Used for validation error messages.
func ValidTCategories() []string {
	return []string{"T1", "T1A", "T1B", "T1C", "T2", "T2A", "T2B", "T2C", "T3", "T3A", "T3B", "T4", "TX"}
}

// ValidNCategories lists the accepted N tokens.
func ValidNCategories() []string {
	return []string{"N0", "N1", "NX"}
}

// ValidMCategories lists the accepted M tokens.
func ValidMCategories() []string {
	return []string{"M0", "M1", "M1A", "M1B", "M1C"}
}

// IsValid reports whether the T category belongs to the closed enumeration.
func (t TCategory) IsValid() bool {
	switch t {
	case T1, T1A, T1B, T1C, T2, T2A, T2B, T2C, T3, T3A, T3B, T4, TX:
		return true
	default:
		return false
	}
}

// IsValid reports whether the N category belongs to the closed enumeration.
func (n NCategory) IsValid() bool {
	switch n {
	case N0, N1, NX:
		return true
	default:
		return false
	}
}

// IsValid reports whether the M category belongs to the closed enumeration.
func (m MCategory) IsValid() bool {
	switch m {
	case M0, M1, M1A, M1B, M1C:
		return true
	default:
		return false
	}
}

// IsMetastatic reports whether the M category denotes any distant metastasis.
func (m MCategory) IsMetastatic() bool {
	switch m {
	case M1, M1A, M1B, M1C:
		return true
	default:
		return false
	}
}

// IsT1ToT2A reports whether the category falls in T1a-T2a (organ-confined,
// at most half of one lobe). Used by the AJCC and NCCN cascades.
func (t TCategory) IsT1ToT2A() bool {
	switch t {
	case T1, T1A, T1B, T1C, T2, T2A:
		return true
	default:
		return false
	}
}

// IsT1ToT2 reports whether the category is organ-confined (T1-T2).
func (t TCategory) IsT1ToT2() bool {
	switch t {
	case T1, T1A, T1B, T1C, T2, T2A, T2B, T2C:
		return true
	default:
		return false
	}
}

// IsT3ToT4 reports whether the category denotes extraprostatic disease.
func (t TCategory) IsT3ToT4() bool {
	switch t {
	case T3, T3A, T3B, T4:
		return true
	default:
		return false
	}
}

// String returns the canonical token.
func (t TCategory) String() string { return string(t) }

// String returns the canonical token.
func (n NCategory) String() string { return string(n) }

// String returns the canonical token.
func (m MCategory) String() string { return string(m) }

// TDescriptions maps T categories to the AJCC 8th Edition wording.
// Read-only reference data, initialized once.
var TDescriptions = map[TCategory]string{
	T1:  "Tumor not palpable or visible on imaging",
	T1A: "Incidental histologic finding in <=5% of tissue resected",
	T1B: "Incidental histologic finding in >5% of tissue resected",
	T1C: "Tumor identified by needle biopsy (e.g., due to elevated PSA)",
	T2:  "Tumor confined within prostate",
	T2A: "Tumor involves <=50% of one lobe",
	T2B: "Tumor involves >50% of one lobe but not both lobes",
	T2C: "Tumor involves both lobes",
	T3:  "Extraprostatic tumor",
	T3A: "Extraprostatic extension (unilateral or bilateral)",
	T3B: "Tumor invades seminal vesicle(s)",
	T4:  "Tumor fixed or invades adjacent structures (external sphincter, rectum, bladder, levator muscles, pelvic wall)",
	TX:  "Primary tumor cannot be assessed",
}

// NDescriptions maps N categories to the AJCC wording.
var NDescriptions = map[NCategory]string{
	N0: "No regional lymph node metastasis",
	N1: "Metastasis in regional lymph node(s)",
	NX: "Regional lymph nodes not assessed",
}

// MDescriptions maps M categories to the AJCC wording.
var MDescriptions = map[MCategory]string{
	M0:  "No distant metastasis",
	M1:  "Distant metastasis",
	M1A: "Non-regional lymph node(s)",
	M1B: "Bone(s)",
	M1C: "Other site(s) with or without bone disease",
}

// DiseaseState tags the clinical setting an eligibility evaluation runs in.
type DiseaseState string

const (
	// MHSPC is metastatic hormone-sensitive disease (newly diagnosed).
	MHSPC DiseaseState = "mHSPC"
	// MCSPC is metastatic castration-sensitive disease not meeting the
	// high-risk mHSPC criteria.
	MCSPC DiseaseState = "mCSPC"
	// NMCRPC is non-metastatic castration-resistant disease.
	NMCRPC DiseaseState = "nmCRPC"
	// MCRPCPre is metastatic castration-resistant disease before chemotherapy.
	MCRPCPre DiseaseState = "mCRPC_pre"
	// MCRPCPost is metastatic castration-resistant disease after docetaxel.
	MCRPCPost DiseaseState = "mCRPC_post"
	// MCRPCUnqualified is "mCRPC" without the pre/post-chemotherapy
	// distinction. Single-drug checks may interpret it; the multi-drug
	// aggregator rejects it as ambiguous.
	MCRPCUnqualified DiseaseState = "mCRPC"
	// AdjuvantPostRT is adjuvant hormonal therapy after radical radiotherapy.
	AdjuvantPostRT DiseaseState = "adjuvant_post_RT"
)

// IsValid reports whether the disease state belongs to the closed enumeration.
func (d DiseaseState) IsValid() bool {
	switch d {
	case MHSPC, MCSPC, NMCRPC, MCRPCPre, MCRPCPost, MCRPCUnqualified, AdjuvantPostRT:
		return true
	default:
		return false
	}
}

// String returns the canonical tag.
func (d DiseaseState) String() string { return string(d) }

// ValidDiseaseStates lists the accepted disease-state tags.
func ValidDiseaseStates() []string {
	return []string{"mHSPC", "mCSPC", "nmCRPC", "mCRPC_pre", "mCRPC_post", "mCRPC", "adjuvant_post_RT"}
}

// NCCNRiskGroup is one of the eight NCCN tiers, or Unclassifiable.
type NCCNRiskGroup string

const (
	NCCNVeryLow        NCCNRiskGroup = "Very Low"
	NCCNLow            NCCNRiskGroup = "Low"
	NCCNFavorableInt   NCCNRiskGroup = "Favorable Intermediate"
	NCCNUnfavorableInt NCCNRiskGroup = "Unfavorable Intermediate"
	NCCNHigh           NCCNRiskGroup = "High"
	NCCNVeryHigh       NCCNRiskGroup = "Very High"
	NCCNRegional       NCCNRiskGroup = "Regional"
	NCCNMetastatic     NCCNRiskGroup = "Metastatic"
	NCCNUnclassifiable NCCNRiskGroup = "Unable to classify"
)

// EAURiskGroup is one of the five EAU tiers.
type EAURiskGroup string

const (
	EAULow                EAURiskGroup = "Low"
	EAUIntermediateFav    EAURiskGroup = "Intermediate Favorable"
	EAUIntermediateUnfav  EAURiskGroup = "Intermediate Unfavorable"
	EAUHighRiskLocalized  EAURiskGroup = "High-Risk Localized"
	EAUHighRiskLocallyAdv EAURiskGroup = "High-Risk Locally Advanced"
	EAUUnclassifiable     EAURiskGroup = "Unable to classify"
)

// PrognosticStage is an AJCC 8th Edition prognostic stage group.
type PrognosticStage string

const (
	StageI    PrognosticStage = "I"
	StageIIA  PrognosticStage = "IIA"
	StageIIB  PrognosticStage = "IIB"
	StageIIC  PrognosticStage = "IIC"
	StageIIIA PrognosticStage = "IIIA"
	StageIIIB PrognosticStage = "IIIB"
	StageIIIC PrognosticStage = "IIIC"
	StageIVA  PrognosticStage = "IVA"
	StageIVB  PrognosticStage = "IVB"
	// StageUnclassifiable covers inputs that fit no prognostic group,
	// including NX node status.
	StageUnclassifiable PrognosticStage = "Unable to classify"
)

// ScoreBand is the three-tier banding shared by CAPRA and CAPRA-S.
type ScoreBand string

const (
	BandLow          ScoreBand = "Low"
	BandIntermediate ScoreBand = "Intermediate"
	BandHigh         ScoreBand = "High"
)

// BCRRiskGroup classifies biochemical recurrence after radical prostatectomy.
type BCRRiskGroup string

const (
	BCRHighRisk      BCRRiskGroup = "High Risk BCR"
	BCRLowRisk       BCRRiskGroup = "Low Risk BCR"
	BCRIndeterminate BCRRiskGroup = "Indeterminate"
)

// Drug identifies a reimbursement-programme drug.
type Drug string

const (
	Abiraterone             Drug = "abiraterone"
	Apalutamide             Drug = "apalutamide"
	Darolutamide            Drug = "darolutamide"
	Enzalutamide            Drug = "enzalutamide"
	Olaparib                Drug = "olaparib"
	NiraparibAbiraterone    Drug = "niraparib_abiraterone"
	TalazoparibEnzalutamide Drug = "talazoparib_enzalutamide"
)

// String returns the roster identifier.
func (d Drug) String() string { return string(d) }
