package main

import (
	"github.com/spf13/cobra"

	"github.com/prostate-cdss-server/internal/service"
)

var capraCmd = &cobra.Command{
	Use:   "capra",
	Short: "Pre-treatment CAPRA score (0-10)",
	Long: `Computes the UCSF CAPRA score from PSA, biopsy Gleason patterns,
clinical T stage, percent positive cores, and age.

Example:
  prostate-calc capra --psa 8 --primary 3 --secondary 4 --stage T2a --pct-cores 20 --age 66`,
	RunE: runCAPRA,
}

var capraSCmd = &cobra.Command{
	Use:   "capra-s",
	Short: "Post-prostatectomy CAPRA-S score (0-12)",
	Long: `Computes the CAPRA-S score from preoperative PSA, pathologic Gleason,
and the surgical pathology findings.

Example:
  prostate-calc capra-s --psa 12 --gleason 3+4 --margin --ece`,
	RunE: runCAPRAS,
}

func init() {
	f := capraCmd.Flags()
	f.Float64("psa", 0, "PSA in ng/mL (required)")
	f.Int("primary", 0, "primary Gleason pattern (required)")
	f.Int("secondary", 0, "secondary Gleason pattern (required)")
	f.String("stage", "", "clinical T category (required)")
	f.Float64("pct-cores", 0, "percent positive biopsy cores")
	f.Int("age", 0, "patient age in years (required)")
	_ = capraCmd.MarkFlagRequired("psa")
	_ = capraCmd.MarkFlagRequired("primary")
	_ = capraCmd.MarkFlagRequired("secondary")
	_ = capraCmd.MarkFlagRequired("stage")
	_ = capraCmd.MarkFlagRequired("age")

	f = capraSCmd.Flags()
	f.Float64("psa", 0, "preoperative PSA in ng/mL (required)")
	f.String("gleason", "", "pathologic Gleason, e.g. 3+4 (required)")
	f.Bool("margin", false, "positive surgical margin")
	f.Bool("ece", false, "extracapsular extension")
	f.Bool("svi", false, "seminal vesicle invasion")
	f.Bool("lni", false, "lymph node invasion")
	_ = capraSCmd.MarkFlagRequired("psa")
	_ = capraSCmd.MarkFlagRequired("gleason")

	rootCmd.AddCommand(capraCmd, capraSCmd)
}

func runCAPRA(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	psa, _ := f.GetFloat64("psa")
	primary, _ := f.GetInt("primary")
	secondary, _ := f.GetInt("secondary")
	rawStage, _ := f.GetString("stage")
	pctCores, _ := f.GetFloat64("pct-cores")
	age, _ := f.GetInt("age")

	t, err := service.NormalizeT(rawStage)
	if err != nil {
		return err
	}

	result := service.NewClassifier(logger).CAPRA(psa, primary, secondary, t, pctCores, age)
	return printJSON(result)
}

func runCAPRAS(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	psa, _ := f.GetFloat64("psa")
	gleason, _ := f.GetString("gleason")
	margin, _ := f.GetBool("margin")
	ece, _ := f.GetBool("ece")
	svi, _ := f.GetBool("svi")
	lni, _ := f.GetBool("lni")

	result := service.NewClassifier(logger).CAPRAS(psa, gleason, margin, ece, svi, lni)
	return printJSON(result)
}
