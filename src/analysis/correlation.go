package analysis

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/iafilius/BikeSharingDashboard/src/dataset"
)

// CorrelationColumns are the daily fields in heatmap order. dteday enters as a day ordinal.
var CorrelationColumns = []string{
	"instant", "dteday", "season", "yr", "mnth", "holiday", "weekday", "workingday",
	"weathersit", "temp", "atemp", "hum", "windspeed", "casual", "registered", "cnt",
}

// CorrelationMatrix is a symmetric Pearson matrix. Columns with zero variance yield NaN.
type CorrelationMatrix struct {
	Names  []string    `json:"names"`
	Values [][]float64 `json:"values"`
}

// At returns the coefficient for a named pair, and false if either name is unknown.
func (m CorrelationMatrix) At(a, b string) (float64, bool) {
	i, j := -1, -1
	for k, n := range m.Names {
		if n == a {
			i = k
		}
		if n == b {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Values[i][j], true
}

// MarshalJSON writes NaN coefficients as null.
func (m CorrelationMatrix) MarshalJSON() ([]byte, error) {
	vals := make([][]*float64, len(m.Values))
	for i, row := range m.Values {
		vals[i] = make([]*float64, len(row))
		for j := range row {
			if !math.IsNaN(row[j]) {
				vals[i][j] = &row[j]
			}
		}
	}
	return json.Marshal(struct {
		Names  []string     `json:"names"`
		Values [][]*float64 `json:"values"`
	}{m.Names, vals})
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// dailyColumn extracts one numeric column in record order.
func dailyColumn(days []dataset.DailyRecord, name string) []float64 {
	out := make([]float64, len(days))
	for i, d := range days {
		var v float64
		switch name {
		case "instant":
			v = float64(d.Instant)
		case "dteday":
			v = float64(d.Date.Unix() / 86400)
		case "season":
			v = float64(d.Season)
		case "yr":
			v = float64(d.Year)
		case "mnth":
			v = float64(d.Month)
		case "holiday":
			v = b2f(d.Holiday)
		case "weekday":
			v = float64(d.Weekday)
		case "workingday":
			v = b2f(d.WorkingDay)
		case "weathersit":
			v = float64(d.Weather)
		case "temp":
			v = d.Temp
		case "atemp":
			v = d.ATemp
		case "hum":
			v = d.Humidity
		case "windspeed":
			v = d.WindSpeed
		case "casual":
			v = float64(d.Casual)
		case "registered":
			v = float64(d.Registered)
		case "cnt":
			v = float64(d.Count)
		}
		out[i] = v
	}
	return out
}

// DailyCorrelation builds the Pearson matrix over CorrelationColumns.
func DailyCorrelation(days []dataset.DailyRecord) CorrelationMatrix {
	cols := make([][]float64, len(CorrelationColumns))
	for i, n := range CorrelationColumns {
		cols[i] = dailyColumn(days, n)
	}
	return Correlate(CorrelationColumns, cols)
}

// Correlate computes pairwise Pearson coefficients with gonum. The diagonal is 1 unless the
// column has zero variance.
func Correlate(names []string, cols [][]float64) CorrelationMatrix {
	m := CorrelationMatrix{Names: append([]string(nil), names...), Values: make([][]float64, len(cols))}
	for i := range cols {
		m.Values[i] = make([]float64, len(cols))
	}
	for i := range cols {
		for j := i; j < len(cols); j++ {
			r := stat.Correlation(cols[i], cols[j], nil)
			m.Values[i][j], m.Values[j][i] = r, r
		}
	}
	return m
}
