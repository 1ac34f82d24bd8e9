package main

import (
	"github.com/iafilius/BikeSharingDashboard/cmd/bikeviewer/uihelpers"
	"github.com/iafilius/BikeSharingDashboard/src/analysis"
	"github.com/iafilius/BikeSharingDashboard/src/dataset"
)

// prefs
func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("dataDir", state.dataDir)
	prefs.SetString("rangeStart", uihelpers.FormatDate(state.rng, false))
	prefs.SetString("rangeEnd", uihelpers.FormatDate(state.rng, true))
	prefs.SetBool("showHints", state.showHints)
	prefs.SetString("weatherAgg", string(state.weatherAgg))
}

// loadPrefs restores the last session. Settings whose flag was given on the command line keep
// the flag value.
func loadPrefs(state *uiState, flagChanged func(name string) bool) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	if !flagChanged("data-dir") {
		if d := prefs.StringWithFallback("dataDir", ""); d != "" {
			state.dataDir = d
		}
	}
	if !flagChanged("hints") {
		state.showHints = prefs.BoolWithFallback("showHints", state.showHints)
	}
	if !flagChanged("weather-agg") {
		state.weatherAgg = analysis.ParseAggregation(prefs.StringWithFallback("weatherAgg", string(state.weatherAgg)))
	}
	if r, err := dataset.ParseDateRange(prefs.String("rangeStart"), prefs.String("rangeEnd")); err == nil {
		state.rng = r
	}
}
