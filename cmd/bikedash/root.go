package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iafilius/BikeSharingDashboard/src/config"
	"github.com/iafilius/BikeSharingDashboard/src/dataset"
	"github.com/iafilius/BikeSharingDashboard/src/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bikedash",
		Short: "Bike Sharing Dashboard - explore daily and hourly rental data",
		Long: `bikedash loads the Bike Sharing Dataset (day.csv and hour.csv) and serves an
interactive dashboard, prints the aggregate report or writes every chart as PNG.

Settings come from defaults, bikedash.yaml, .env, BIKEDASH_* variables and flags,
in increasing precedence.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newServeCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newScreenshotsCmd())
	return root
}

// env is what every subcommand needs before doing its own work.
type env struct {
	cfg  *config.Config
	data *dataset.Dataset
}

func setup(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(config.Options{Flags: cmd.Flags()})
	if err != nil {
		return nil, err
	}
	logging.SetLogLevel(cfg.Log.Level)
	ds, err := dataset.Load(cfg.Data.Dir)
	if err != nil {
		return nil, err
	}
	logging.Infof("loaded %d days and %d hourly rows from %s (%s)", len(ds.Days), len(ds.Hours), cfg.Data.Dir, ds.Bounds())
	return &env{cfg: cfg, data: ds}, nil
}

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("start", "", "Range start (YYYY-MM-DD); empty with --end empty selects all dates")
	cmd.Flags().String("end", "", "Range end (YYYY-MM-DD)")
}

// selectedRange resolves --start/--end against the dataset. Both empty selects the bounds;
// one empty leaves the range incomplete.
func selectedRange(cmd *cobra.Command, ds *dataset.Dataset) (dataset.DateRange, error) {
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	if strings.TrimSpace(start) == "" && strings.TrimSpace(end) == "" {
		return ds.Bounds(), nil
	}
	r, err := dataset.ParseDateRange(start, end)
	if err != nil {
		return dataset.DateRange{}, fmt.Errorf("--start/--end: %w", err)
	}
	clamped := ds.Clamp(r)
	if !clamped.Start.Equal(r.Start) || !clamped.End.Equal(r.End) {
		logging.Infof("range %s adjusted to %s", r, clamped)
	}
	return clamped, nil
}
