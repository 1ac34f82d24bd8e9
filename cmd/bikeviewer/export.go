package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/dialog"

	"github.com/iafilius/BikeSharingDashboard/src/charts"
	"github.com/iafilius/BikeSharingDashboard/src/logging"
)

// export PNG
func exportChartPNG(state *uiState, img *canvas.Image, defaultName string) {
	if state == nil || state.window == nil {
		return
	}
	if img == nil || img.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := charts.EncodePNG(wc, img.Image); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName(defaultName)
	fs.Show()
}

// exportAllCharts writes the whole catalog for the current range into a chosen folder.
func exportAllCharts(state *uiState) {
	if state == nil || state.window == nil || state.data == nil {
		return
	}
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		paths, err := charts.WriteScreenshots(chartState(state), uri.Path())
		if err != nil {
			logging.Errorf("export charts: %v", err)
			dialog.ShowError(err, state.window)
			return
		}
		dialog.ShowInformation("Export", fmt.Sprintf("Wrote %d charts to %s", len(paths), uri.Path()), state.window)
	}, state.window)
	d.Show()
}

// exportTabCharts writes the charts of the selected tab into a chosen folder.
func exportTabCharts(state *uiState) {
	if state == nil || state.window == nil || state.data == nil || state.tabs == nil || state.tabs.Selected() == nil {
		return
	}
	list := charts.ForTab(state.tabs.Selected().Text)
	if len(list) == 0 {
		dialog.ShowInformation("Export", "This tab has no charts.", state.window)
		return
	}
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		st := chartState(state)
		for _, c := range list {
			var buf bytes.Buffer
			if err := charts.EncodePNG(&buf, c.Render(st)); err == nil {
				err = os.WriteFile(filepath.Join(uri.Path(), c.ID+".png"), buf.Bytes(), 0o644)
			}
			if err != nil {
				dialog.ShowError(fmt.Errorf("export %s: %w", c.ID, err), state.window)
				return
			}
		}
		dialog.ShowInformation("Export", fmt.Sprintf("Wrote %d charts to %s", len(list), uri.Path()), state.window)
	}, state.window)
	d.Show()
}
