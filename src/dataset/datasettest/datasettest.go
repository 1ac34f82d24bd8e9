// Package datasettest builds small synthetic bike sharing tables for tests.
package datasettest

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iafilius/BikeSharingDashboard/src/dataset"
)

// Start is the first synthetic date, matching the real dataset.
var Start = time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)

const dailyHeader = "instant,dteday,season,yr,mnth,holiday,weekday,workingday,weathersit,temp,atemp,hum,windspeed,casual,registered,cnt"

// Days returns n consecutive deterministic daily records starting at Start.
// Counts vary with temperature so fits and correlations are non-degenerate.
func Days(n int) []dataset.DailyRecord {
	out := make([]dataset.DailyRecord, n)
	for i := 0; i < n; i++ {
		d := Start.AddDate(0, 0, i)
		wd := int(d.Weekday())
		temp := 0.2 + 0.6*float64(i%30)/29
		hum := 0.4 + 0.4*float64((i*7)%11)/10
		casual := 100 + 10*(i%13)
		registered := 1000 + int(math.Round(4000*temp)) - 50*(i%5)
		holiday := i%17 == 3
		working := wd != 0 && wd != 6 && !holiday
		out[i] = dataset.DailyRecord{
			Instant:    i + 1,
			Date:       d,
			Season:     dataset.Season(int(d.Month()-1)/3 + 1),
			Year:       d.Year() - 2011,
			Month:      int(d.Month()),
			Holiday:    holiday,
			Weekday:    wd,
			WorkingDay: working,
			Weather:    dataset.Weather(i%3 + 1),
			Temp:       round6(temp),
			ATemp:      round6(temp * 0.95),
			Humidity:   round6(hum),
			WindSpeed:  round6(0.1 + 0.02*float64(i%9)),
			Casual:     casual,
			Registered: registered,
			Count:      casual + registered,
		}
	}
	return out
}

// Hours expands each day into len(hours) hourly rows whose counts sum to roughly the day count.
func Hours(days []dataset.DailyRecord, hours []int) []dataset.HourlyRecord {
	var out []dataset.HourlyRecord
	for _, d := range days {
		for _, h := range hours {
			hr := dataset.HourlyRecord{DailyRecord: d, Hour: h}
			hr.Casual = d.Casual / len(hours)
			hr.Registered = d.Registered/len(hours) + 10*h
			hr.Count = hr.Casual + hr.Registered
			out = append(out, hr)
		}
	}
	return out
}

func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func dailyFields(d dataset.DailyRecord) []string {
	return []string{
		fmt.Sprint(d.Instant), d.DateString(), fmt.Sprint(int(d.Season)), fmt.Sprint(d.Year), fmt.Sprint(d.Month),
		fmt.Sprint(b2i(d.Holiday)), fmt.Sprint(d.Weekday), fmt.Sprint(b2i(d.WorkingDay)), fmt.Sprint(int(d.Weather)),
		fmt.Sprint(d.Temp), fmt.Sprint(d.ATemp), fmt.Sprint(d.Humidity), fmt.Sprint(d.WindSpeed),
		fmt.Sprint(d.Casual), fmt.Sprint(d.Registered), fmt.Sprint(d.Count),
	}
}

// DayCSV renders records in day.csv layout.
func DayCSV(days []dataset.DailyRecord) string {
	var b strings.Builder
	b.WriteString(dailyHeader + "\n")
	for _, d := range days {
		b.WriteString(strings.Join(dailyFields(d), ",") + "\n")
	}
	return b.String()
}

// HourCSV renders records in hour.csv layout (hr after mnth).
func HourCSV(hours []dataset.HourlyRecord) string {
	var b strings.Builder
	b.WriteString("instant,dteday,season,yr,mnth,hr,holiday,weekday,workingday,weathersit,temp,atemp,hum,windspeed,casual,registered,cnt\n")
	for i, h := range hours {
		f := dailyFields(h.DailyRecord)
		f[0] = fmt.Sprint(i + 1)
		row := append(append(append([]string{}, f[:5]...), fmt.Sprint(h.Hour)), f[5:]...)
		b.WriteString(strings.Join(row, ",") + "\n")
	}
	return b.String()
}

// WriteDir writes day.csv and hour.csv for n synthetic days into a fresh temp dir and returns it.
func WriteDir(t testing.TB, n int) string {
	t.Helper()
	dir := t.TempDir()
	days := Days(n)
	hours := Hours(days, []int{0, 8, 12, 17, 23})
	if err := os.WriteFile(filepath.Join(dir, dataset.DayFile), []byte(DayCSV(days)), 0o644); err != nil {
		t.Fatalf("write day.csv: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, dataset.HourFile), []byte(HourCSV(hours)), 0o644); err != nil {
		t.Fatalf("write hour.csv: %v", err)
	}
	return dir
}

// Load writes a synthetic dataset and loads it through dataset.Load.
func Load(t testing.TB, n int) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Load(WriteDir(t, n))
	if err != nil {
		t.Fatalf("load synthetic dataset: %v", err)
	}
	return ds
}
