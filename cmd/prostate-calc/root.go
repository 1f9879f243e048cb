package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logger = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "prostate-calc",
	Short: "Prostate cancer risk, staging, and drug-programme calculators",
	Long: `Command-line calculators for prostate cancer clinical decision support.

Covers NCCN and EAU risk grouping, TNM/AJCC staging, CAPRA and CAPRA-S
scoring, PSA doubling time, lymph node invasion nomograms, biochemical
recurrence risk, salvage therapy guidance, and eligibility checks for the
Polish NFZ drug programmes C.87 (abiraterone) and B.56.`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		levelName, _ := cmd.Flags().GetString("log-level")
		level, err := logrus.ParseLevel(levelName)
		if err != nil {
			level = logrus.WarnLevel
		}
		logger.SetLevel(level)
		logger.SetOutput(os.Stderr)
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
