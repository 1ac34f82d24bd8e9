package main

import (
	"github.com/iafilius/BikeSharingDashboard/cmd/bikeviewer/uihelpers"
	"github.com/iafilius/BikeSharingDashboard/src/analysis"
	"github.com/iafilius/BikeSharingDashboard/src/charts"
	"github.com/iafilius/BikeSharingDashboard/src/config"
	"github.com/iafilius/BikeSharingDashboard/src/dataset"
	"github.com/iafilius/BikeSharingDashboard/src/logging"
)

// RunScreenshotsMode renders every chart for the given range and writes them as PNGs under
// the configured screenshots dir. It runs headlessly without creating a UI window.
func RunScreenshotsMode(cfg *config.Config, start, end string) error {
	ds, err := dataset.Load(cfg.Data.Dir)
	if err != nil {
		return err
	}
	in, err := uihelpers.ResolveRangeInput(start, end, ds)
	if err != nil {
		return err
	}
	if in.Note != "" {
		logging.Infof("[viewer] %s", in.Note)
	}
	st := &charts.State{
		Data:       ds,
		Range:      in.Range,
		Width:      cfg.Chart.Width,
		Height:     cfg.Chart.Height,
		ShowHints:  cfg.Chart.Hints,
		WeatherAgg: analysis.ParseAggregation(cfg.Chart.WeatherAgg),
	}
	_, err = charts.WriteScreenshots(st, cfg.Screenshots.Dir)
	return err
}
