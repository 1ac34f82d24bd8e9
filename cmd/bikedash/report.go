package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iafilius/BikeSharingDashboard/src/analysis"
	"github.com/iafilius/BikeSharingDashboard/src/dataset"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard aggregates",
		Long: `Print every aggregate behind the dashboard charts: range totals, day-type means,
busiest and quietest dates, season, weather and temperature groups, trend fits,
the humidity distribution, peak hours and the strongest correlations with cnt.`,
		RunE: runReport,
	}
	addRangeFlags(cmd)
	cmd.Flags().Bool("json", false, "Emit the summary as JSON")
	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	r, err := selectedRange(cmd, e.data)
	if err != nil {
		return err
	}
	sum, err := analysis.Summarize(e.data, r)
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(reportJSON{Bounds: e.data.Bounds().String(), Summary: sum})
	}
	return writeReport(cmd.OutOrStdout(), e.data, sum)
}

type reportJSON struct {
	Bounds string `json:"bounds"`
	analysis.Summary
}

func writeReport(out io.Writer, ds *dataset.Dataset, s analysis.Summary) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	section := func(title string) { fmt.Fprintf(w, "\n%s\n", title) }

	fmt.Fprintf(w, "Dataset\t%s\t(%d days, %d hourly rows)\n", ds.Bounds(), len(ds.Days), len(ds.Hours))
	fmt.Fprintf(w, "Range\t%s\t%d days\n", s.Range, s.Days)
	fmt.Fprintf(w, "Rentals\t%d\tmean %.1f/day, %+.1f%% vs. overall %.1f\n", s.TotalRentals, s.MeanDaily, s.DeltaPct, s.OverallMean)

	section("Day type (mean cnt)")
	fmt.Fprintf(w, "  holiday\t%.1f\t%d days\n", s.DayTypes.Holiday, s.DayTypes.HolidayDays)
	fmt.Fprintf(w, "  weekend\t%.1f\t%d days\n", s.DayTypes.Weekend, s.DayTypes.WeekendDays)
	fmt.Fprintf(w, "  workday\t%.1f\t%d days\n", s.DayTypes.Workday, s.DayTypes.WorkdayDays)

	section("Busiest dates")
	for _, d := range s.Busiest {
		fmt.Fprintf(w, "  %s\t%d\n", d.Date, d.Count)
	}
	section("Quietest dates")
	for _, d := range s.Quietest {
		fmt.Fprintf(w, "  %s\t%d\n", d.Date, d.Count)
	}

	section("Season\tmean\tsum\tdays")
	for _, g := range s.Seasons {
		fmt.Fprintf(w, "  %s\t%.1f\t%.0f\t%d\n", g.Label, g.Mean, g.Sum, g.Days)
	}
	section("Weather\tmean\tsum\tdays")
	for _, g := range s.Weather {
		fmt.Fprintf(w, "  %s\t%.1f\t%.0f\t%d\n", g.Label, g.Mean, g.Sum, g.Days)
	}
	section("Temperature\tmean\tdays")
	for _, b := range s.Temperature {
		fmt.Fprintf(w, "  %s (%.2f-%.2f]\t%.1f\t%d\n", b.Label, b.Lower, b.Upper, b.Mean, b.Days)
	}

	section("Trend fits (degree 2)")
	fmt.Fprintf(w, "  temperature\t%s\n", fitString(s.TempTrend))
	fmt.Fprintf(w, "  humidity\t%s\n", fitString(s.HumTrend))

	if b := s.HumidityBox; b != nil {
		section("Humidity distribution")
		fmt.Fprintf(w, "  min/q1/median/q3/max\t%.3f / %.3f / %.3f / %.3f / %.3f\n", b.Min, b.Q1, b.Median, b.Q3, b.Max)
		fmt.Fprintf(w, "  IQR\t%.3f\twhiskers %.3f..%.3f, %d outliers\n", b.IQR, b.WhiskerLow, b.WhiskerHigh, len(b.Outliers))
	}

	section("Hourly")
	peaks := make([]string, len(s.PeakHours))
	for i, h := range s.PeakHours {
		peaks[i] = fmt.Sprintf("%02d:00 (%.1f)", h, s.Hourly[h].Mean)
	}
	fmt.Fprintf(w, "  peak hours\t%s\n", strings.Join(peaks, ", "))

	section("Strongest correlations with cnt")
	for _, c := range topCorrelations(s.Correlation, "cnt", 5) {
		fmt.Fprintf(w, "  %s\t%+.2f\n", c.name, c.r)
	}
	return w.Flush()
}

func fitString(p *analysis.PolyFitResult) string {
	if p == nil {
		return "n/a"
	}
	terms := make([]string, len(p.Coeffs))
	for i, c := range p.Coeffs {
		terms[i] = fmt.Sprintf("%.1f", c)
	}
	return fmt.Sprintf("coeffs [%s]\tR²=%.3f", strings.Join(terms, ", "), p.R2)
}

type namedR struct {
	name string
	r    float64
}

// topCorrelations ranks the other variables by |r| against target, skipping undefined values
// and the rental components casual and registered.
func topCorrelations(m analysis.CorrelationMatrix, target string, n int) []namedR {
	var out []namedR
	for _, name := range m.Names {
		if name == target || name == "casual" || name == "registered" {
			continue
		}
		r, ok := m.At(name, target)
		if !ok || math.IsNaN(r) {
			continue
		}
		out = append(out, namedR{name, r})
	}
	sort.SliceStable(out, func(i, j int) bool { return math.Abs(out[i].r) > math.Abs(out[j].r) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
