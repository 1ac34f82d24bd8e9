package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iafilius/BikeSharingDashboard/src/analysis"
	"github.com/iafilius/BikeSharingDashboard/src/charts"
)

func newScreenshotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screenshots",
		Short: "Render every chart to PNG files",
		Long:  `Render the whole chart catalog headlessly for the selected range into --screenshots-dir, one <chart-id>.png per chart.`,
		RunE:  runScreenshots,
	}
	addRangeFlags(cmd)
	return cmd
}

func runScreenshots(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	r, err := selectedRange(cmd, e.data)
	if err != nil {
		return err
	}
	st := &charts.State{
		Data:       e.data,
		Range:      r,
		Width:      e.cfg.Chart.Width,
		Height:     e.cfg.Chart.Height,
		ShowHints:  e.cfg.Chart.Hints,
		WeatherAgg: analysis.ParseAggregation(e.cfg.Chart.WeatherAgg),
	}
	paths, err := charts.WriteScreenshots(st, e.cfg.Screenshots.Dir)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
