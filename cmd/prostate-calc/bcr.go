package main

import (
	"github.com/spf13/cobra"

	"github.com/prostate-cdss-server/internal/domain"
	"github.com/prostate-cdss-server/internal/service"
)

var bcrCmd = &cobra.Command{
	Use:   "bcr",
	Short: "Biochemical recurrence risk stratification (EAU)",
	Long: `Stratifies biochemical recurrence after primary treatment into EAU
low-risk and high-risk groups from PSA doubling time, Grade Group, and
optional time to recurrence and current PSA.

Example:
  prostate-calc bcr --psadt 8 --gg 3 --months-to-bcr 24 --psa 1.5`,
	RunE: runBCR,
}

var adtDurationCmd = &cobra.Command{
	Use:   "adt-duration",
	Short: "ADT duration guidance for salvage radiotherapy",
	Long: `Recommends androgen deprivation therapy duration alongside salvage
radiotherapy from pre-SRT PSA, Grade Group, PSA doubling time, and the
surgical pathology findings.

Example:
  prostate-calc adt-duration --psa 0.8 --gg 4 --psadt 5 --svi`,
	RunE: runADTDuration,
}

var pelvicNodesCmd = &cobra.Command{
	Use:   "pelvic-nodes",
	Short: "Pelvic nodal irradiation guidance for salvage radiotherapy",
	Long: `Advises on elective pelvic nodal coverage during salvage radiotherapy
from pre-SRT PSA, nomogram-estimated nodal risk, and ADT use.

Example:
  prostate-calc pelvic-nodes --psa 0.8 --briganti 12 --adt`,
	RunE: runPelvicNodes,
}

var spportCmd = &cobra.Command{
	Use:   "spport",
	Short: "SPPORT trial eligibility check",
	Long: `Checks eligibility against the SPPORT (NRG Oncology/RTOG 0534) trial
criteria for salvage radiotherapy with short-term ADT and pelvic nodes.

Example:
  prostate-calc spport --t pT3a --gleason 8 --psa 0.7 --n N0`,
	RunE: runSPPORT,
}

func init() {
	f := bcrCmd.Flags()
	f.Float64("psadt", 0, "PSA doubling time in months (required)")
	f.Int("gg", 0, "ISUP Grade Group 1-5 (required)")
	f.Float64("months-to-bcr", -1, "months from treatment to recurrence")
	f.Float64("psa", -1, "current PSA in ng/mL")
	_ = bcrCmd.MarkFlagRequired("psadt")
	_ = bcrCmd.MarkFlagRequired("gg")

	f = adtDurationCmd.Flags()
	f.Float64("psa", 0, "pre-SRT PSA in ng/mL (required)")
	f.Int("gg", 0, "ISUP Grade Group 1-5 (required)")
	f.Float64("psadt", 0, "PSA doubling time in months (required)")
	f.Float64("decipher", -1, "Decipher genomic classifier score")
	f.Bool("svi", false, "seminal vesicle invasion")
	f.Bool("lni", false, "lymph node invasion")
	_ = adtDurationCmd.MarkFlagRequired("psa")
	_ = adtDurationCmd.MarkFlagRequired("gg")
	_ = adtDurationCmd.MarkFlagRequired("psadt")

	f = pelvicNodesCmd.Flags()
	f.Float64("psa", 0, "pre-SRT PSA in ng/mL (required)")
	f.Float64("briganti", -1, "Briganti-estimated nodal risk in percent")
	f.Float64("roach", -1, "Roach-estimated nodal risk in percent")
	f.Bool("adt", false, "concurrent ADT planned")
	_ = pelvicNodesCmd.MarkFlagRequired("psa")

	f = spportCmd.Flags()
	f.String("t", "", "pathologic T category (required)")
	f.Int("gleason", 0, "Gleason sum (required)")
	f.Float64("psa", 0, "pre-SRT PSA in ng/mL (required)")
	f.String("n", "", "N category (default NX)")
	_ = spportCmd.MarkFlagRequired("t")
	_ = spportCmd.MarkFlagRequired("gleason")
	_ = spportCmd.MarkFlagRequired("psa")

	rootCmd.AddCommand(bcrCmd, adtDurationCmd, pelvicNodesCmd, spportCmd)
}

func runBCR(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	psadtMonths, _ := f.GetFloat64("psadt")
	gg, _ := f.GetInt("gg")

	var timeToBCR, currentPSA *float64
	if v, _ := f.GetFloat64("months-to-bcr"); v >= 0 {
		timeToBCR = &v
	}
	if v, _ := f.GetFloat64("psa"); v >= 0 {
		currentPSA = &v
	}

	return printJSON(service.NewClassifier(logger).BCRRisk(psadtMonths, gg, timeToBCR, currentPSA))
}

func runADTDuration(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	psa, _ := f.GetFloat64("psa")
	gg, _ := f.GetInt("gg")
	psadtMonths, _ := f.GetFloat64("psadt")
	svi, _ := f.GetBool("svi")
	lni, _ := f.GetBool("lni")

	var decipher *float64
	if v, _ := f.GetFloat64("decipher"); v >= 0 {
		decipher = &v
	}

	return printJSON(service.NewClassifier(logger).ADTDuration(psa, gg, psadtMonths, decipher, svi, lni))
}

func runPelvicNodes(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	psa, _ := f.GetFloat64("psa")
	adt, _ := f.GetBool("adt")

	var briganti, roach *float64
	if v, _ := f.GetFloat64("briganti"); v >= 0 {
		briganti = &v
	}
	if v, _ := f.GetFloat64("roach"); v >= 0 {
		roach = &v
	}

	return printJSON(service.NewClassifier(logger).PelvicNodes(psa, briganti, roach, adt))
}

func runSPPORT(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	rawT, _ := f.GetString("t")
	gleason, _ := f.GetInt("gleason")
	psa, _ := f.GetFloat64("psa")
	rawN, _ := f.GetString("n")

	t, err := service.NormalizeT(rawT)
	if err != nil {
		return err
	}
	n := domain.NX
	if rawN != "" {
		if n, err = service.NormalizeN(rawN); err != nil {
			return err
		}
	}

	return printJSON(service.NewClassifier(logger).SPPORTEligibility(t, gleason, psa, n))
}
