// Package uihelpers holds the viewer's layout and input rules that do not need a window.
package uihelpers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iafilius/BikeSharingDashboard/src/dataset"
)

// SidebarFraction is the share of the window the date-range sidebar takes.
const SidebarFraction = 0.22

// ComputeChartWidth derives the chart width from the window width: the space right of the
// sidebar, minus a small margin for scrollbars and padding.
func ComputeChartWidth(winW float32) int {
	w := int((winW-ComputeSidebarWidth(winW))*0.95) - 12
	if w < 0 {
		return 0
	}
	return w
}

// ComputeSidebarWidth returns the sidebar width with a floor so the date entries stay usable.
func ComputeSidebarWidth(winW float32) float32 {
	w := winW * SidebarFraction
	if w < 200 {
		w = 200
	}
	return w
}

// SidebarOffset is the split offset that gives the sidebar ComputeSidebarWidth, capped at half
// the window.
func SidebarOffset(winW float32) float64 {
	if winW <= 0 {
		return SidebarFraction
	}
	off := float64(ComputeSidebarWidth(winW) / winW)
	if off > 0.5 {
		off = 0.5
	}
	return off
}

// RangeInput is the outcome of applying the two date entries.
type RangeInput struct {
	Range dataset.DateRange
	// Note explains an adjustment or an incomplete selection; empty when the input was used as is.
	Note string
}

// ResolveRangeInput parses the sidebar entries the way the date picker behaves: both blank
// selects the whole dataset, one blank leaves the range incomplete, and dates outside the data
// are clamped to it. Reversed endpoints are swapped.
func ResolveRangeInput(start, end string, ds *dataset.Dataset) (RangeInput, error) {
	if strings.TrimSpace(start) == "" && strings.TrimSpace(end) == "" {
		return RangeInput{Range: ds.Bounds()}, nil
	}
	r, err := dataset.ParseDateRange(start, end)
	if err != nil {
		return RangeInput{}, err
	}
	if !r.Complete() {
		return RangeInput{Range: ds.Clamp(r), Note: dataset.ErrIncompleteRange.Error()}, nil
	}
	c := ds.Clamp(r)
	out := RangeInput{Range: c}
	switch {
	case !c.Start.Equal(r.Start) && !c.End.Equal(r.End) && c.Start.Equal(r.End) && c.End.Equal(r.Start):
		out.Note = "Start and end were swapped."
	case !c.Start.Equal(r.Start) || !c.End.Equal(r.End):
		out.Note = fmt.Sprintf("Adjusted to the available data: %s", c)
	}
	return out, nil
}

// FormatDate renders a range endpoint for an entry; the zero time is blank.
func FormatDate(r dataset.DateRange, end bool) string {
	t := r.Start
	if end {
		t = r.End
	}
	if t.IsZero() {
		return ""
	}
	return t.Format(dataset.DateLayout)
}

// TruncatePath shortens p to about n characters, keeping the base name.
func TruncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
