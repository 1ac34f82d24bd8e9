// Package charts renders the dashboard's fixed chart catalog to images.
//
// Every chart is an independent function of a State: the loaded dataset, the selected date
// range and presentation options. Renderers never fail; problems degrade to a blank or
// prompt image and a logged warning.
package charts

import (
	"github.com/iafilius/BikeSharingDashboard/src/analysis"
	"github.com/iafilius/BikeSharingDashboard/src/dataset"
)

// State is the render input shared by all charts.
type State struct {
	Data  *dataset.Dataset
	Range dataset.DateRange

	// Width and Height in pixels. Zero Width uses DefaultWidth; zero Height is derived from Width.
	Width  int
	Height int

	ShowHints  bool
	WeatherAgg analysis.Aggregation
}

// Size returns the effective chart size.
func (s *State) Size() (int, int) {
	w := DefaultWidth
	if s != nil && s.Width > 0 {
		w = s.Width
	}
	cw, ch := ComputeChartDimensions(w)
	if s != nil && s.Height > 0 {
		ch = s.Height
	}
	return cw, ch
}

func (s *State) days() []dataset.DailyRecord {
	if s == nil || s.Data == nil {
		return nil
	}
	return s.Data.Days
}

func (s *State) hours() []dataset.HourlyRecord {
	if s == nil || s.Data == nil {
		return nil
	}
	return s.Data.Hours
}
