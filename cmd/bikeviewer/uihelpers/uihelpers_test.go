package uihelpers

import (
	"math"
	"strings"
	"testing"

	"github.com/iafilius/BikeSharingDashboard/src/dataset"
	"github.com/iafilius/BikeSharingDashboard/src/dataset/datasettest"
)

func testData(n int) *dataset.Dataset {
	return &dataset.Dataset{Days: datasettest.Days(n)}
}

func TestComputeChartWidth(t *testing.T) {
	if w := ComputeChartWidth(1400); w <= 0 || w >= 1400 {
		t.Fatalf("chart width %d should fit inside the window", w)
	}
	if ComputeChartWidth(1400) <= ComputeChartWidth(1000) {
		t.Fatalf("chart width should grow with the window")
	}
	if ComputeChartWidth(0) != 0 {
		t.Fatalf("zero window should give zero width")
	}
	if ComputeSidebarWidth(300) != 200 {
		t.Fatalf("sidebar floor not applied")
	}
}

func TestSidebarOffset(t *testing.T) {
	if off := SidebarOffset(1400); math.Abs(off-SidebarFraction) > 1e-6 {
		t.Fatalf("wide window offset %v want %v", off, SidebarFraction)
	}
	if off := SidebarOffset(600); math.Abs(off-200.0/600) > 1e-6 {
		t.Fatalf("narrow window should keep the 200px floor, got %v", off)
	}
	if off := SidebarOffset(300); off != 0.5 {
		t.Fatalf("offset should cap at half the window, got %v", off)
	}
	if SidebarOffset(0) != SidebarFraction {
		t.Fatalf("unknown window width should use the default fraction")
	}
}

func TestResolveRangeInput_BlankSelectsAll(t *testing.T) {
	ds := testData(10)
	in, err := ResolveRangeInput(" ", "", ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Range != ds.Bounds() || in.Note != "" {
		t.Fatalf("blank input should select bounds, got %+v", in)
	}
}

func TestResolveRangeInput_Incomplete(t *testing.T) {
	in, err := ResolveRangeInput("2011-01-03", "", testData(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Range.Complete() || in.Note == "" {
		t.Fatalf("half-filled input should stay incomplete with a note: %+v", in)
	}
}

func TestResolveRangeInput_ClampAndSwap(t *testing.T) {
	ds := testData(10)
	in, err := ResolveRangeInput("2010-01-01", "2011-01-05", ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := in.Range.String(); got != "2011-01-01 .. 2011-01-05" {
		t.Fatalf("clamped range %s", got)
	}
	if !strings.HasPrefix(in.Note, "Adjusted") {
		t.Fatalf("expected adjustment note, got %q", in.Note)
	}

	in, err = ResolveRangeInput("2011-01-06", "2011-01-02", ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := in.Range.String(); got != "2011-01-02 .. 2011-01-06" || in.Note != "Start and end were swapped." {
		t.Fatalf("swap: %s %q", got, in.Note)
	}

	in, _ = ResolveRangeInput("2011-01-02", "2011-01-06", ds)
	if in.Note != "" {
		t.Fatalf("in-bounds range should not carry a note: %q", in.Note)
	}
}

func TestResolveRangeInput_Invalid(t *testing.T) {
	if _, err := ResolveRangeInput("2011-02-30", "2011-03-01", testData(10)); err == nil {
		t.Fatalf("expected error for an impossible date")
	}
}

func TestFormatDate(t *testing.T) {
	r := dataset.DateRange{Start: datasettest.Start}
	if FormatDate(r, false) != "2011-01-01" || FormatDate(r, true) != "" {
		t.Fatalf("format: %q %q", FormatDate(r, false), FormatDate(r, true))
	}
}

func TestTruncatePath(t *testing.T) {
	if got := TruncatePath("data", 60); got != "data" {
		t.Fatalf("short path changed: %q", got)
	}
	long := "/very/long/path/to/some/deeply/nested/bike/sharing/dataset/folder/day.csv"
	got := TruncatePath(long, 30)
	if !strings.HasSuffix(got, "day.csv") || len(got) > 30 {
		t.Fatalf("truncate: %q (%d)", got, len(got))
	}
}
