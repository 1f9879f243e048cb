package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prostate-cdss-server/internal/domain"
	"github.com/prostate-cdss-server/internal/service"
)

var nccnCmd = &cobra.Command{
	Use:   "nccn",
	Short: "NCCN risk group classification",
	Long: `Assigns the eight-tier NCCN risk group from PSA, Grade Group, clinical
stage, and optional biopsy core data.

Examples:
  # Localized low-risk patient
  prostate-calc nccn --psa 4.5 --gg 1 --stage T1c

  # With core data for Very Low refinement
  prostate-calc nccn --psa 4.5 --gg 1 --stage T1c --cores 2/12 --max-involvement 30 --psa-density 0.1`,
	RunE: runNCCN,
}

var eauCmd = &cobra.Command{
	Use:   "eau",
	Short: "EAU risk group classification",
	Long: `Assigns the EAU three-tier risk group (plus locally advanced) for
localized disease from PSA, Gleason/Grade Group, and clinical stage.

Example:
  prostate-calc eau --psa 12 --gg 2 --stage T2b`,
	RunE: runEAU,
}

var tnmCmd = &cobra.Command{
	Use:   "tnm",
	Short: "TNM staging with AJCC prognostic stage groups",
	Long: `Validates and describes TNM categories and, when PSA and Grade Group
are supplied, assigns the AJCC 8th edition prognostic stage group.

Example:
  prostate-calc tnm --t cT2a --n N0 --m M0 --psa 8 --gg 2`,
	RunE: runTNM,
}

func init() {
	f := nccnCmd.Flags()
	f.Float64("psa", 0, "PSA in ng/mL (required)")
	f.Int("gg", 0, "ISUP Grade Group 1-5 (required)")
	f.String("stage", "", "clinical T category (e.g., T1c, cT2a)")
	f.String("cores", "", "positive/total biopsy cores (e.g., 4/12)")
	f.Float64("max-involvement", 0, "maximum single-core involvement in percent")
	f.Float64("psa-density", 0, "PSA density in ng/mL/g")
	_ = nccnCmd.MarkFlagRequired("psa")
	_ = nccnCmd.MarkFlagRequired("gg")

	f = eauCmd.Flags()
	f.Float64("psa", 0, "PSA in ng/mL (required)")
	f.Int("gg", 0, "ISUP Grade Group 1-5 (required)")
	f.String("stage", "", "clinical T category")
	_ = eauCmd.MarkFlagRequired("psa")
	_ = eauCmd.MarkFlagRequired("gg")

	f = tnmCmd.Flags()
	f.String("t", "", "T category (required)")
	f.String("n", "", "N category (required)")
	f.String("m", "", "M category (required)")
	f.Float64("psa", -1, "PSA in ng/mL (enables prognostic staging)")
	f.Int("gg", 0, "ISUP Grade Group 1-5 (enables prognostic staging)")
	_ = tnmCmd.MarkFlagRequired("t")
	_ = tnmCmd.MarkFlagRequired("n")
	_ = tnmCmd.MarkFlagRequired("m")

	rootCmd.AddCommand(nccnCmd, eauCmd, tnmCmd)
}

func runNCCN(cmd *cobra.Command, _ []string) error {
	snap, err := snapshotFromFlags(cmd)
	if err != nil {
		return err
	}

	group, verdict := service.NewClassifier(logger).NCCNRisk(snap)
	return printJSON(map[string]interface{}{
		"risk_group": group,
		"verdict":    verdict,
	})
}

func runEAU(cmd *cobra.Command, _ []string) error {
	snap, err := snapshotFromFlags(cmd)
	if err != nil {
		return err
	}

	group, verdict := service.NewClassifier(logger).EAURisk(snap)
	return printJSON(map[string]interface{}{
		"risk_group": group,
		"verdict":    verdict,
	})
}

func runTNM(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	rawT, _ := f.GetString("t")
	rawN, _ := f.GetString("n")
	rawM, _ := f.GetString("m")

	var psa *float64
	if v, _ := f.GetFloat64("psa"); v >= 0 {
		psa = &v
	}
	var gg *int
	if v, _ := f.GetInt("gg"); v > 0 {
		gg = &v
	}

	result := service.NewClassifier(logger).TNMStage(rawT, rawN, rawM, psa, gg)
	return printJSON(result)
}

// snapshotFromFlags builds a ClinicalSnapshot from the flag set shared by the
// risk classification commands.
func snapshotFromFlags(cmd *cobra.Command) (*domain.ClinicalSnapshot, error) {
	f := cmd.Flags()
	snap := &domain.ClinicalSnapshot{}

	psa, _ := f.GetFloat64("psa")
	snap.PSA = &psa
	gg, _ := f.GetInt("gg")
	snap.GradeGroup = &gg

	if raw, _ := f.GetString("stage"); raw != "" {
		t, err := service.NormalizeT(raw)
		if err != nil {
			return nil, err
		}
		snap.T = t
	}

	if raw, _ := f.GetString("cores"); raw != "" {
		positive, total, err := parseCores(raw)
		if err != nil {
			return nil, err
		}
		snap.PositiveCores = &positive
		snap.TotalCores = &total
	}

	if f.Changed("max-involvement") {
		v, _ := f.GetFloat64("max-involvement")
		snap.MaxCoreInvolvement = &v
	}
	if f.Changed("psa-density") {
		v, _ := f.GetFloat64("psa-density")
		snap.PSADensity = &v
	}

	return snap, snap.Validate()
}

// parseCores parses "positive/total" biopsy core counts, e.g. "4/12".
func parseCores(raw string) (int, int, error) {
	parts := strings.SplitN(raw, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid cores %q: expected positive/total (e.g., 4/12)", raw)
	}
	positive, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid positive core count %q", parts[0])
	}
	total, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid total core count %q", parts[1])
	}
	if total <= 0 || positive < 0 || positive > total {
		return 0, 0, fmt.Errorf("invalid cores %q: need 0 <= positive <= total, total > 0", raw)
	}
	return positive, total, nil
}
