package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/prostate-cdss-server/internal/eligibility"
	"github.com/prostate-cdss-server/internal/report"
)

var abirateroneCmd = &cobra.Command{
	Use:   "abiraterone",
	Short: "NFZ C.87 abiraterone eligibility check",
	Long: `Checks eligibility for publicly funded abiraterone under the Polish NFZ
programme C.87 (attachments C.87.a and C.87.b) across the mHSPC, mCRPC,
mCSPC, nmCRPC, and post-RT adjuvant settings.

The patient record is JSON, read from --input or stdin:

  prostate-calc abiraterone --input patient.json --report
  echo '{"disease_state":"mHSPC","has_metastases":true,...}' | prostate-calc abiraterone`,
	RunE: runAbiraterone,
}

var b56Cmd = &cobra.Command{
	Use:   "b56",
	Short: "NFZ B.56 drug programme eligibility check",
	Long: `Checks eligibility for every B.56 drug applicable to the patient's
disease state (apalutamide, darolutamide, enzalutamide, olaparib,
niraparib+abiraterone, talazoparib+enzalutamide) and summarizes which
the patient qualifies for.

The patient record is JSON, read from --input or stdin:

  prostate-calc b56 --input patient.json --report`,
	RunE: runB56,
}

func init() {
	for _, cmd := range []*cobra.Command{abirateroneCmd, b56Cmd} {
		f := cmd.Flags()
		f.String("input", "", "patient record JSON file (default: stdin)")
		f.Bool("report", false, "print the Polish programme report instead of JSON")
	}

	rootCmd.AddCommand(abirateroneCmd, b56Cmd)
}

func runAbiraterone(cmd *cobra.Command, _ []string) error {
	var in eligibility.AbirateroneInput
	if err := readPatientRecord(cmd, &in); err != nil {
		return err
	}

	verdict := eligibility.NewEngine(logger).CheckAbiraterone(in)

	if asReport, _ := cmd.Flags().GetBool("report"); asReport {
		fmt.Println(report.FormatAbiraterone(verdict))
		return nil
	}
	return printJSON(verdict)
}

func runB56(cmd *cobra.Command, _ []string) error {
	var in eligibility.B56Input
	if err := readPatientRecord(cmd, &in); err != nil {
		return err
	}

	summary, err := eligibility.NewEngine(logger).CheckB56(in)
	if err != nil {
		return err
	}

	if asReport, _ := cmd.Flags().GetBool("report"); asReport {
		fmt.Println(report.FormatB56(summary))
		return nil
	}
	return printJSON(summary)
}

// readPatientRecord decodes the JSON patient record from --input or stdin.
func readPatientRecord(cmd *cobra.Command, v interface{}) error {
	var r io.Reader = os.Stdin
	if path, _ := cmd.Flags().GetString("input"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open patient record: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode patient record: %w", err)
	}
	return nil
}
