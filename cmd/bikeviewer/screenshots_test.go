package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iafilius/BikeSharingDashboard/src/charts"
	"github.com/iafilius/BikeSharingDashboard/src/config"
	"github.com/iafilius/BikeSharingDashboard/src/dataset/datasettest"
)

func TestRunScreenshotsMode(t *testing.T) {
	out := filepath.Join(t.TempDir(), "shots")
	cfg := &config.Config{
		Data:        config.DataConfig{Dir: datasettest.WriteDir(t, 25)},
		Chart:       config.ChartConfig{Width: 900, WeatherAgg: "sum"},
		Screenshots: config.ScreenshotsConfig{Dir: out},
	}
	if err := RunScreenshotsMode(cfg, "2011-01-03", "2011-01-20"); err != nil {
		t.Fatalf("screenshots mode: %v", err)
	}
	for _, c := range charts.Catalog() {
		if _, err := os.Stat(filepath.Join(out, c.ID+".png")); err != nil {
			t.Fatalf("missing %s.png: %v", c.ID, err)
		}
	}
}

func TestRunScreenshotsMode_BadDate(t *testing.T) {
	cfg := &config.Config{
		Data:        config.DataConfig{Dir: datasettest.WriteDir(t, 5)},
		Chart:       config.ChartConfig{Width: 900},
		Screenshots: config.ScreenshotsConfig{Dir: t.TempDir()},
	}
	if err := RunScreenshotsMode(cfg, "2011-01-03", "soon"); err == nil {
		t.Fatalf("expected a date error")
	}
}
