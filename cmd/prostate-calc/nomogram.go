package main

import (
	"github.com/spf13/cobra"

	"github.com/prostate-cdss-server/pkg/nomogram"
)

var roachCmd = &cobra.Command{
	Use:   "roach",
	Short: "Roach formula for lymph node invasion risk",
	Long: `Estimates lymph node invasion risk with the Roach formula
(2/3 x PSA + 10 x (Gleason - 6)) and flags whether whole-pelvis
radiotherapy should be considered.

Example:
  prostate-calc roach --psa 10 --gleason 8`,
	RunE: runRoach,
}

var yaleCmd = &cobra.Command{
	Use:   "yale",
	Short: "Yale formula for lymph node invasion risk",
	Long: `Estimates lymph node invasion risk with the Yale refinement of the
Roach formula, which also weighs clinical T stage.

Example:
  prostate-calc yale --psa 9 --gleason 8 --stage T2a`,
	RunE: runYale,
}

var brigantiCmd = &cobra.Command{
	Use:   "briganti",
	Short: "Briganti 2017 nomogram for lymph node invasion risk",
	Long: `Estimates lymph node invasion risk with the Briganti 2017 nomogram and
recommends for or against extended pelvic lymph node dissection at the
7% threshold.

Example:
  prostate-calc briganti --psa 10 --stage T2a --gg 3 --pct-high 40 --pct-low 20`,
	RunE: runBriganti,
}

var briganti2012Cmd = &cobra.Command{
	Use:   "briganti-2012",
	Short: "Briganti 2012 nomogram approximation",
	Long: `Estimates lymph node invasion risk with a multiplicative approximation
of the Briganti 2012 nomogram (biopsy Gleason patterns and percent
positive cores).

Example:
  prostate-calc briganti-2012 --psa 15 --stage T2b --primary 4 --secondary 3 --pct-cores 50`,
	RunE: runBriganti2012,
}

var mskccCmd = &cobra.Command{
	Use:   "mskcc",
	Short: "MSKCC-style nomogram approximation",
	Long: `Estimates lymph node invasion risk with an MSKCC-style approximation
from PSA, Grade Group, and clinical stage.

Example:
  prostate-calc mskcc --psa 15 --gg 3 --stage T2b`,
	RunE: runMSKCC,
}

func init() {
	f := roachCmd.Flags()
	f.Float64("psa", 0, "PSA in ng/mL (required)")
	f.Int("gleason", 0, "Gleason sum 6-10 (required)")
	_ = roachCmd.MarkFlagRequired("psa")
	_ = roachCmd.MarkFlagRequired("gleason")

	f = yaleCmd.Flags()
	f.Float64("psa", 0, "PSA in ng/mL (required)")
	f.Int("gleason", 0, "Gleason sum 6-10 (required)")
	f.String("stage", "", "clinical T category (required)")
	_ = yaleCmd.MarkFlagRequired("psa")
	_ = yaleCmd.MarkFlagRequired("gleason")
	_ = yaleCmd.MarkFlagRequired("stage")

	f = brigantiCmd.Flags()
	f.Float64("psa", 0, "PSA in ng/mL (required)")
	f.String("stage", "", "clinical T category (required)")
	f.Int("gg", 0, "ISUP Grade Group 1-5 (required)")
	f.Float64("pct-high", 0, "percent cores positive for highest-grade disease (required)")
	f.Float64("pct-low", 0, "percent cores positive for lower-grade disease")
	_ = brigantiCmd.MarkFlagRequired("psa")
	_ = brigantiCmd.MarkFlagRequired("stage")
	_ = brigantiCmd.MarkFlagRequired("gg")
	_ = brigantiCmd.MarkFlagRequired("pct-high")

	f = briganti2012Cmd.Flags()
	f.Float64("psa", 0, "PSA in ng/mL (required)")
	f.String("stage", "", "clinical T category (required)")
	f.Int("primary", 0, "primary Gleason pattern (required)")
	f.Int("secondary", 0, "secondary Gleason pattern (required)")
	f.Float64("pct-cores", 0, "percent positive biopsy cores (required)")
	_ = briganti2012Cmd.MarkFlagRequired("psa")
	_ = briganti2012Cmd.MarkFlagRequired("stage")
	_ = briganti2012Cmd.MarkFlagRequired("primary")
	_ = briganti2012Cmd.MarkFlagRequired("secondary")
	_ = briganti2012Cmd.MarkFlagRequired("pct-cores")

	f = mskccCmd.Flags()
	f.Float64("psa", 0, "PSA in ng/mL (required)")
	f.Int("gg", 0, "ISUP Grade Group 1-5 (required)")
	f.String("stage", "", "clinical T category (required)")
	_ = mskccCmd.MarkFlagRequired("psa")
	_ = mskccCmd.MarkFlagRequired("gg")
	_ = mskccCmd.MarkFlagRequired("stage")

	rootCmd.AddCommand(roachCmd, yaleCmd, brigantiCmd, briganti2012Cmd, mskccCmd)
}

func runRoach(cmd *cobra.Command, _ []string) error {
	psa, _ := cmd.Flags().GetFloat64("psa")
	gleason, _ := cmd.Flags().GetInt("gleason")
	return printJSON(nomogram.Roach(psa, gleason))
}

func runYale(cmd *cobra.Command, _ []string) error {
	psa, _ := cmd.Flags().GetFloat64("psa")
	gleason, _ := cmd.Flags().GetInt("gleason")
	stage, _ := cmd.Flags().GetString("stage")
	return printJSON(nomogram.Yale(psa, gleason, stage))
}

func runBriganti(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	in := nomogram.Briganti2017Input{}
	in.PSA, _ = f.GetFloat64("psa")
	in.ClinicalStage, _ = f.GetString("stage")
	in.GradeGroup, _ = f.GetInt("gg")
	in.PctCoresHighest, _ = f.GetFloat64("pct-high")
	in.PctCoresLowest, _ = f.GetFloat64("pct-low")
	return printJSON(nomogram.Briganti2017(in))
}

func runBriganti2012(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	in := nomogram.Briganti2012Input{}
	in.PSA, _ = f.GetFloat64("psa")
	in.ClinicalStage, _ = f.GetString("stage")
	in.GleasonPrimary, _ = f.GetInt("primary")
	in.GleasonSecondary, _ = f.GetInt("secondary")
	in.PctPositiveCores, _ = f.GetFloat64("pct-cores")
	return printJSON(nomogram.Briganti2012(in))
}

func runMSKCC(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	in := nomogram.MSKCCInput{}
	in.PSA, _ = f.GetFloat64("psa")
	in.GradeGroup, _ = f.GetInt("gg")
	in.ClinicalStage, _ = f.GetString("stage")
	return printJSON(nomogram.MSKCC(in))
}
