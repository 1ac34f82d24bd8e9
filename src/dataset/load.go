package dataset

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/hashicorp/go-multierror"

	"github.com/iafilius/BikeSharingDashboard/src/logging"
)

const (
	DayFile  = "day.csv"
	HourFile = "hour.csv"
)

// ErrMissingColumn is returned when a table lacks a column the dashboard reads.
var ErrMissingColumn = errors.New("missing column")

var dailyColumnTypes = map[string]series.Type{
	"instant":    series.Int,
	"dteday":     series.String,
	"season":     series.Int,
	"yr":         series.Int,
	"mnth":       series.Int,
	"holiday":    series.Int,
	"weekday":    series.Int,
	"workingday": series.Int,
	"weathersit": series.Int,
	"temp":       series.Float,
	"atemp":      series.Float,
	"hum":        series.Float,
	"windspeed":  series.Float,
	"casual":     series.Int,
	"registered": series.Int,
	"cnt":        series.Int,
}

// Dataset holds both tables, loaded once and never mutated.
type Dataset struct {
	Dir   string
	Days  []DailyRecord
	Hours []HourlyRecord
}

// Load reads day.csv and hour.csv from dir. Both files are attempted so a caller sees every
// problem at once; any failure is fatal for the session.
func Load(dir string) (*Dataset, error) {
	defer logging.TimeTrack(time.Now(), "dataset load")
	ds := &Dataset{Dir: dir}
	var result *multierror.Error

	days, err := loadDays(filepath.Join(dir, DayFile))
	if err != nil {
		result = multierror.Append(result, err)
	}
	hours, err := loadHours(filepath.Join(dir, HourFile))
	if err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	ds.Days = days
	ds.Hours = hours
	logging.Infof("[dataset] loaded %d days and %d hourly rows from %s", len(days), len(hours), dir)
	return ds, nil
}

func readFrame(path string, types map[string]series.Type) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	df := dataframe.ReadCSV(f, dataframe.HasHeader(true), dataframe.WithTypes(types))
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse %s: %w", path, df.Err)
	}
	have := map[string]bool{}
	for _, n := range df.Names() {
		have[n] = true
	}
	for name := range types {
		if !have[name] {
			return dataframe.DataFrame{}, fmt.Errorf("%s: %w %q", path, ErrMissingColumn, name)
		}
	}
	return df, nil
}

// frameColumns gives typed access to the columns of one frame, remembering the first error.
type frameColumns struct {
	df   dataframe.DataFrame
	path string
	err  error
}

func (c *frameColumns) ints(name string) []int {
	if c.err != nil {
		return nil
	}
	v, err := c.df.Col(name).Int()
	if err != nil {
		c.err = fmt.Errorf("%s: column %q: %w", c.path, name, err)
		return nil
	}
	return v
}

func (c *frameColumns) floats(name string) []float64 {
	if c.err != nil {
		return nil
	}
	v := c.df.Col(name).Float()
	for i, x := range v {
		if math.IsNaN(x) {
			c.err = fmt.Errorf("%s: column %q row %d: not a number", c.path, name, i+1)
			return nil
		}
	}
	return v
}

func (c *frameColumns) dates(name string) []time.Time {
	if c.err != nil {
		return nil
	}
	raw := c.df.Col(name).Records()
	out := make([]time.Time, len(raw))
	for i, s := range raw {
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			c.err = fmt.Errorf("%s: column %q row %d: %w", c.path, name, i+1, err)
			return nil
		}
		out[i] = t
	}
	return out
}

func buildDays(c *frameColumns) []DailyRecord {
	instant := c.ints("instant")
	dates := c.dates("dteday")
	season := c.ints("season")
	yr := c.ints("yr")
	mnth := c.ints("mnth")
	holiday := c.ints("holiday")
	weekday := c.ints("weekday")
	working := c.ints("workingday")
	weather := c.ints("weathersit")
	temp := c.floats("temp")
	atemp := c.floats("atemp")
	hum := c.floats("hum")
	wind := c.floats("windspeed")
	casual := c.ints("casual")
	registered := c.ints("registered")
	cnt := c.ints("cnt")
	if c.err != nil {
		return nil
	}
	out := make([]DailyRecord, c.df.Nrow())
	for i := range out {
		out[i] = DailyRecord{
			Instant:    instant[i],
			Date:       dates[i],
			Season:     Season(season[i]),
			Year:       yr[i],
			Month:      mnth[i],
			Holiday:    holiday[i] == 1,
			Weekday:    weekday[i],
			WorkingDay: working[i] == 1,
			Weather:    Weather(weather[i]),
			Temp:       temp[i],
			ATemp:      atemp[i],
			Humidity:   hum[i],
			WindSpeed:  wind[i],
			Casual:     casual[i],
			Registered: registered[i],
			Count:      cnt[i],
		}
	}
	return out
}

func loadDays(path string) ([]DailyRecord, error) {
	df, err := readFrame(path, dailyColumnTypes)
	if err != nil {
		return nil, err
	}
	c := &frameColumns{df: df, path: path}
	days := buildDays(c)
	if c.err != nil {
		return nil, c.err
	}
	return days, nil
}

func loadHours(path string) ([]HourlyRecord, error) {
	types := make(map[string]series.Type, len(dailyColumnTypes)+1)
	for k, v := range dailyColumnTypes {
		types[k] = v
	}
	types["hr"] = series.Int
	df, err := readFrame(path, types)
	if err != nil {
		return nil, err
	}
	c := &frameColumns{df: df, path: path}
	days := buildDays(c)
	hr := c.ints("hr")
	if c.err != nil {
		return nil, c.err
	}
	out := make([]HourlyRecord, len(days))
	for i := range days {
		out[i] = HourlyRecord{DailyRecord: days[i], Hour: hr[i]}
	}
	return out, nil
}
