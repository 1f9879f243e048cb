package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prostate-cdss-server/pkg/psadt"
)

var psadtCmd = &cobra.Command{
	Use:   "psadt",
	Short: "PSA doubling time from serial measurements",
	Long: `Computes PSA doubling time by log-linear regression over serial PSA
measurements, with a clinical interpretation band.

Measurements are day:psa pairs; day 0 is the first draw.

Examples:
  prostate-calc psadt --values 0:1.0,90:2.0,180:4.0
  prostate-calc psadt --values 0:0.5,120:0.8,240:1.1 --min-days 60`,
	RunE: runPSADT,
}

func init() {
	f := psadtCmd.Flags()
	f.String("values", "", "comma-separated day:psa pairs (required)")
	f.Bool("allow-non-rising", false, "accept series with PSA declines between draws")
	f.Float64("min-psa", 0, "minimum PSA per measurement (overrides default)")
	f.Int("min-values", 0, "minimum number of measurements (overrides default)")
	f.Float64("min-days", 0, "minimum observation span in days (overrides default)")
	_ = psadtCmd.MarkFlagRequired("values")

	rootCmd.AddCommand(psadtCmd)
}

func runPSADT(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	raw, _ := f.GetString("values")

	values, err := parseMeasurements(raw)
	if err != nil {
		return err
	}

	opts := psadt.DefaultOptions()
	if allow, _ := f.GetBool("allow-non-rising"); allow {
		opts.RequireRising = false
	}
	if f.Changed("min-psa") {
		opts.MinPSA, _ = f.GetFloat64("min-psa")
	}
	if f.Changed("min-values") {
		opts.MinValues, _ = f.GetInt("min-values")
	}
	if f.Changed("min-days") {
		opts.MinObservationDays, _ = f.GetFloat64("min-days")
	}

	return printJSON(psadt.Compute(values, opts))
}

// parseMeasurements parses "0:1.0,90:2.0,180:4.0" into measurements.
func parseMeasurements(raw string) ([]psadt.Measurement, error) {
	var values []psadt.Measurement
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid measurement %q: expected day:psa (e.g., 90:2.0)", pair)
		}
		day, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid day %q", parts[0])
		}
		value, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid PSA %q", parts[1])
		}
		values = append(values, psadt.Measurement{Day: day, PSA: value})
	}
	return values, nil
}
