package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iafilius/BikeSharingDashboard/src/analysis"
	"github.com/iafilius/BikeSharingDashboard/src/logging"
	"github.com/iafilius/BikeSharingDashboard/src/web"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the web dashboard",
		Long:  `Serve the dashboard page, chart PNGs, the JSON summary and Prometheus metrics until interrupted.`,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := web.New(e.data, web.Options{
		Addr:         e.cfg.Server.Addr,
		ReadTimeout:  e.cfg.Server.ReadTimeout,
		WriteTimeout: e.cfg.Server.WriteTimeout,
		Width:        e.cfg.Chart.Width,
		Height:       e.cfg.Chart.Height,
		WeatherAgg:   analysis.ParseAggregation(e.cfg.Chart.WeatherAgg),
		ShowHints:    e.cfg.Chart.Hints,
	}, logging.L())
	return srv.Run(ctx)
}
