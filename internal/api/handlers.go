package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prostate-cdss-server/internal/domain"
	"github.com/prostate-cdss-server/internal/eligibility"
	"github.com/prostate-cdss-server/internal/report"
	"github.com/prostate-cdss-server/internal/service"
	"github.com/prostate-cdss-server/pkg/nomogram"
	"github.com/prostate-cdss-server/pkg/psadt"
)

// respondError maps domain errors onto HTTP status codes. Validation and
// ambiguity problems are client errors; anything else is a 500.
func (s *Server) respondError(c *gin.Context, err error) {
	var validation *domain.ValidationError
	var ambiguous *domain.AmbiguousInputError
	var insufficient *domain.InsufficientDataError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error(), "detail": validation})
	case errors.As(err, &ambiguous):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ambiguous.Error(), "detail": ambiguous})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": insufficient.Error(), "detail": insufficient})
	default:
		s.logger.WithError(err).Error("Unhandled evaluation error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// bindJSON decodes the request body, replying 400 on malformed input.
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// snapshotFromRequest validates the decoded snapshot's categorical fields.
func (s *Server) snapshotFromRequest(c *gin.Context, snap *domain.ClinicalSnapshot) bool {
	if err := snap.Validate(); err != nil {
		s.respondError(c, err)
		return false
	}
	return true
}

// handleNCCNRisk classifies a snapshot into an NCCN risk group.
func (s *Server) handleNCCNRisk(c *gin.Context) {
	var snap domain.ClinicalSnapshot
	if !bindJSON(c, &snap) || !s.snapshotFromRequest(c, &snap) {
		return
	}

	group, verdict := s.classifier.NCCNRisk(&snap)
	c.JSON(http.StatusOK, gin.H{
		"risk_group": group,
		"verdict":    verdict,
	})
}

// handleEAURisk classifies a snapshot into an EAU risk group.
func (s *Server) handleEAURisk(c *gin.Context) {
	var snap domain.ClinicalSnapshot
	if !bindJSON(c, &snap) || !s.snapshotFromRequest(c, &snap) {
		return
	}

	group, verdict := s.classifier.EAURisk(&snap)
	c.JSON(http.StatusOK, gin.H{
		"risk_group": group,
		"verdict":    verdict,
	})
}

type tnmRequest struct {
	T          string   `json:"t_category" binding:"required"`
	N          string   `json:"n_category" binding:"required"`
	M          string   `json:"m_category" binding:"required"`
	PSA        *float64 `json:"psa,omitempty"`
	GradeGroup *int     `json:"grade_group,omitempty"`
}

// handleTNMStaging assigns TNM categories and, when PSA and grade group
// are present, the AJCC prognostic stage group.
func (s *Server) handleTNMStaging(c *gin.Context) {
	var req tnmRequest
	if !bindJSON(c, &req) {
		return
	}

	result := s.classifier.TNMStage(req.T, req.N, req.M, req.PSA, req.GradeGroup)
	c.JSON(http.StatusOK, result)
}

type capraRequest struct {
	PSA              float64 `json:"psa"`
	PrimaryGleason   int     `json:"primary_gleason" binding:"required"`
	SecondaryGleason int     `json:"secondary_gleason" binding:"required"`
	TCategory        string  `json:"t_category" binding:"required"`
	PctPositiveCores float64 `json:"pct_positive_cores"`
	Age              int     `json:"age" binding:"required"`
}

// handleCAPRA computes the preoperative CAPRA score.
func (s *Server) handleCAPRA(c *gin.Context) {
	var req capraRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := service.NormalizeT(req.TCategory)
	if err != nil {
		s.respondError(c, err)
		return
	}

	result := s.classifier.CAPRA(req.PSA, req.PrimaryGleason, req.SecondaryGleason, t, req.PctPositiveCores, req.Age)
	c.JSON(http.StatusOK, result)
}

type capraSRequest struct {
	PreopPSA         float64 `json:"preop_psa"`
	PathologyGleason string  `json:"pathology_gleason" binding:"required"`
	MarginPositive   bool    `json:"margin_positive"`
	ECE              bool    `json:"extracapsular_extension"`
	SVI              bool    `json:"seminal_vesicle_invasion"`
	LNI              bool    `json:"lymph_node_invasion"`
}

// handleCAPRAS computes the postoperative CAPRA-S score.
func (s *Server) handleCAPRAS(c *gin.Context) {
	var req capraSRequest
	if !bindJSON(c, &req) {
		return
	}

	result := s.classifier.CAPRAS(req.PreopPSA, req.PathologyGleason, req.MarginPositive, req.ECE, req.SVI, req.LNI)
	c.JSON(http.StatusOK, result)
}

type bcrRequest struct {
	PSADTMonths     float64  `json:"psadt_months"`
	GradeGroup      int      `json:"grade_group" binding:"required"`
	TimeToBCRMonths *float64 `json:"time_to_bcr_months,omitempty"`
	CurrentPSA      *float64 `json:"current_psa,omitempty"`
}

// handleBCRRisk stratifies biochemical recurrence risk (EAU BCR groups
// with the EMBARK eligibility note).
func (s *Server) handleBCRRisk(c *gin.Context) {
	var req bcrRequest
	if !bindJSON(c, &req) {
		return
	}

	result := s.classifier.BCRRisk(req.PSADTMonths, req.GradeGroup, req.TimeToBCRMonths, req.CurrentPSA)
	c.JSON(http.StatusOK, result)
}

type psadtRequest struct {
	Values             []psadt.Measurement `json:"values" binding:"required"`
	RequireRising      *bool               `json:"require_rising,omitempty"`
	MinPSA             float64             `json:"min_psa,omitempty"`
	MinValues          int                 `json:"min_values,omitempty"`
	MinObservationDays float64             `json:"min_observation_days,omitempty"`
}

// handlePSADT computes PSA doubling time from serial measurements.
func (s *Server) handlePSADT(c *gin.Context) {
	var req psadtRequest
	if !bindJSON(c, &req) {
		return
	}

	opts := psadt.DefaultOptions()
	if req.RequireRising != nil {
		opts.RequireRising = *req.RequireRising
	}
	if req.MinPSA > 0 {
		opts.MinPSA = req.MinPSA
	}
	if req.MinValues > 0 {
		opts.MinValues = req.MinValues
	}
	if req.MinObservationDays > 0 {
		opts.MinObservationDays = req.MinObservationDays
	}

	c.JSON(http.StatusOK, psadt.Compute(req.Values, opts))
}

type briganti2017Request struct {
	PSA             float64 `json:"psa"`
	ClinicalStage   string  `json:"clinical_stage" binding:"required"`
	GradeGroup      int     `json:"grade_group" binding:"required"`
	PctCoresHighest float64 `json:"pct_cores_highest_grade"`
	PctCoresLowest  float64 `json:"pct_cores_lowest_grade"`
}

func (s *Server) handleBriganti2017(c *gin.Context) {
	var req briganti2017Request
	if !bindJSON(c, &req) {
		return
	}

	c.JSON(http.StatusOK, nomogram.Briganti2017(nomogram.Briganti2017Input{
		PSA:             req.PSA,
		ClinicalStage:   req.ClinicalStage,
		GradeGroup:      req.GradeGroup,
		PctCoresHighest: req.PctCoresHighest,
		PctCoresLowest:  req.PctCoresLowest,
	}))
}

type briganti2012Request struct {
	PSA              float64 `json:"psa"`
	ClinicalStage    string  `json:"clinical_stage" binding:"required"`
	GleasonPrimary   int     `json:"gleason_primary" binding:"required"`
	GleasonSecondary int     `json:"gleason_secondary" binding:"required"`
	PctPositiveCores float64 `json:"pct_positive_cores"`
}

func (s *Server) handleBriganti2012(c *gin.Context) {
	var req briganti2012Request
	if !bindJSON(c, &req) {
		return
	}

	c.JSON(http.StatusOK, nomogram.Briganti2012(nomogram.Briganti2012Input{
		PSA:              req.PSA,
		ClinicalStage:    req.ClinicalStage,
		GleasonPrimary:   req.GleasonPrimary,
		GleasonSecondary: req.GleasonSecondary,
		PctPositiveCores: req.PctPositiveCores,
	}))
}

type roachRequest struct {
	PSA     float64 `json:"psa"`
	Gleason int     `json:"gleason" binding:"required"`
	Stage   string  `json:"clinical_stage,omitempty"`
}

func (s *Server) handleRoach(c *gin.Context) {
	var req roachRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, nomogram.Roach(req.PSA, req.Gleason))
}

func (s *Server) handleYale(c *gin.Context) {
	var req roachRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, nomogram.Yale(req.PSA, req.Gleason, req.Stage))
}

type mskccRequest struct {
	PSA           float64 `json:"psa"`
	GradeGroup    int     `json:"grade_group" binding:"required"`
	ClinicalStage string  `json:"clinical_stage" binding:"required"`
}

func (s *Server) handleMSKCC(c *gin.Context) {
	var req mskccRequest
	if !bindJSON(c, &req) {
		return
	}

	c.JSON(http.StatusOK, nomogram.MSKCC(nomogram.MSKCCInput{
		PSA:           req.PSA,
		GradeGroup:    req.GradeGroup,
		ClinicalStage: req.ClinicalStage,
	}))
}

type pelvicNodesRequest struct {
	PreSRTPSA   float64  `json:"pre_srt_psa"`
	LNIBriganti *float64 `json:"lni_briganti,omitempty"`
	LNIRoach    *float64 `json:"lni_roach,omitempty"`
	UsingADT    bool     `json:"using_adt"`
}

// handlePelvicNodes advises on pelvic nodal irradiation with salvage RT.
func (s *Server) handlePelvicNodes(c *gin.Context) {
	var req pelvicNodesRequest
	if !bindJSON(c, &req) {
		return
	}

	c.JSON(http.StatusOK, s.classifier.PelvicNodes(req.PreSRTPSA, req.LNIBriganti, req.LNIRoach, req.UsingADT))
}

type adtDurationRequest struct {
	PreSRTPSA   float64  `json:"pre_srt_psa"`
	GradeGroup  int      `json:"grade_group" binding:"required"`
	PSADTMonths float64  `json:"psadt_months"`
	Decipher    *float64 `json:"decipher_score,omitempty"`
	SVI         bool     `json:"seminal_vesicle_invasion"`
	LNI         bool     `json:"lymph_node_invasion"`
}

// handleADTDuration advises on ADT duration alongside salvage RT.
func (s *Server) handleADTDuration(c *gin.Context) {
	var req adtDurationRequest
	if !bindJSON(c, &req) {
		return
	}

	c.JSON(http.StatusOK, s.classifier.ADTDuration(
		req.PreSRTPSA, req.GradeGroup, req.PSADTMonths, req.Decipher, req.SVI, req.LNI))
}

type spportRequest struct {
	TCategory string  `json:"t_category" binding:"required"`
	Gleason   int     `json:"gleason" binding:"required"`
	PreSRTPSA float64 `json:"pre_srt_psa"`
	NCategory string  `json:"n_category"`
}

// handleSPPORT checks SPPORT trial eligibility for salvage RT intensification.
func (s *Server) handleSPPORT(c *gin.Context) {
	var req spportRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := service.NormalizeT(req.TCategory)
	if err != nil {
		s.respondError(c, err)
		return
	}
	n := domain.NX
	if req.NCategory != "" {
		n, err = service.NormalizeN(req.NCategory)
		if err != nil {
			s.respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, s.classifier.SPPORTEligibility(t, req.Gleason, req.PreSRTPSA, n))
}

// handleAbiraterone evaluates abiraterone reimbursement (C.87.a/C.87.b).
// The response carries the structured verdict plus the Polish report.
func (s *Server) handleAbiraterone(c *gin.Context) {
	var in eligibility.AbirateroneInput
	if !bindJSON(c, &in) {
		return
	}

	verdict := s.eligibility.CheckAbiraterone(in)
	c.JSON(http.StatusOK, gin.H{
		"verdict":   verdict,
		"report_pl": report.FormatAbiraterone(verdict),
	})
}

// handleB56 evaluates all B.56 programme drugs for the disease state.
func (s *Server) handleB56(c *gin.Context) {
	var in eligibility.B56Input
	if !bindJSON(c, &in) {
		return
	}

	summary, err := s.eligibility.CheckB56(in)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":   summary,
		"report_pl": report.FormatB56(summary),
	})
}
