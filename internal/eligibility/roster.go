package eligibility

import (
	"github.com/sirupsen/logrus"

	"github.com/prostate-cdss-server/internal/domain"
)

// B56Summary aggregates per-drug verdicts for one patient across every
// drug the programme offers in their disease state.
type B56Summary struct {
	DiseaseState    domain.DiseaseState          `json:"disease_state"`
	EligibleDrugs   []string                     `json:"eligible_drugs"`
	IneligibleDrugs []string                     `json:"ineligible_drugs"`
	DrugResults     map[domain.Drug]*DrugVerdict `json:"drug_results"`
	DrugOrder       []domain.Drug                `json:"-"`
}

// CheckB56 evaluates every B.56 drug offered in the patient's disease
// state. A plain "mCRPC" tag is rejected here because the pre- and
// post-docetaxel pathways carry different ECOG limits; callers must say
// which one they mean.
func (e *Engine) CheckB56(in B56Input) (*B56Summary, error) {
	e.logger.WithFields(logrus.Fields{
		"disease_state":  in.State,
		"ecog":           in.ECOG,
		"has_metastases": in.HasMetastases,
	}).Debug("Evaluating B.56 multi-drug eligibility")

	var drugs []domain.Drug
	switch normalizeState(in.State) {
	case "mhspc", "nmcrpc":
		drugs = []domain.Drug{domain.Apalutamide, domain.Darolutamide, domain.Enzalutamide}
	case "mcrpc_pre", "mcrpc_post":
		drugs = []domain.Drug{
			domain.Enzalutamide,
			domain.Olaparib,
			domain.NiraparibAbiraterone,
			domain.TalazoparibEnzalutamide,
		}
	case "mcrpc":
		return nil, &domain.AmbiguousInputError{
			Field: "disease_state",
			Value: string(in.State),
			Hint:  "mCRPC_pre dla ECOG 0-1, mCRPC_post dla ECOG 0-2 (po docetakselu)",
			Message: "Stan 'mCRPC' jest niejednoznaczny. Podaj 'mCRPC_pre' (przed chemioterapią) " +
				"lub 'mCRPC_post' (po docetakselu) dla prawidłowej kwalifikacji.",
		}
	default:
		return nil, domain.NewValidationError("disease_state", string(in.State),
			[]string{"mHSPC", "nmCRPC", "mCRPC_pre", "mCRPC_post"})
	}

	summary := &B56Summary{
		DiseaseState:    in.State,
		EligibleDrugs:   []string{},
		IneligibleDrugs: []string{},
		DrugResults:     make(map[domain.Drug]*DrugVerdict, len(drugs)),
		DrugOrder:       drugs,
	}

	for _, drug := range drugs {
		var verdict *DrugVerdict
		switch drug {
		case domain.Apalutamide:
			verdict = e.CheckApalutamide(in)
		case domain.Darolutamide:
			verdict = e.CheckDarolutamide(in)
		case domain.Enzalutamide:
			verdict = e.CheckEnzalutamide(in)
		case domain.Olaparib:
			verdict = e.CheckOlaparib(in)
		case domain.NiraparibAbiraterone:
			verdict = e.CheckNiraparibAbiraterone(in)
		case domain.TalazoparibEnzalutamide:
			verdict = e.CheckTalazoparibEnzalutamide(in)
		}

		summary.DrugResults[drug] = verdict
		if verdict.Eligible {
			summary.EligibleDrugs = append(summary.EligibleDrugs, verdict.DrugPL)
		} else {
			summary.IneligibleDrugs = append(summary.IneligibleDrugs, verdict.DrugPL)
		}
	}

	e.logger.WithFields(logrus.Fields{
		"disease_state":  in.State,
		"eligible_count": len(summary.EligibleDrugs),
		"checked_count":  len(drugs),
	}).Info("B.56 eligibility evaluated")
	return summary, nil
}
