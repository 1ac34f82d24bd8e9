// Package dataset loads the bike sharing day/hour tables and provides the date-range view
// the dashboards filter on.
package dataset

import "time"

// DateLayout is the dteday column format.
const DateLayout = "2006-01-02"

// Season is the categorical season code (1..4).
type Season int

const (
	SeasonSpring Season = iota + 1
	SeasonSummer
	SeasonFall
	SeasonWinter
)

var seasonNames = map[Season]string{
	SeasonSpring: "Spring",
	SeasonSummer: "Summer",
	SeasonFall:   "Fall",
	SeasonWinter: "Winter",
}

func (s Season) String() string {
	if n, ok := seasonNames[s]; ok {
		return n
	}
	return "Unknown"
}

// Weather is the weathersit ordinal (1 clear .. 4 severe).
type Weather int

const (
	WeatherClear Weather = iota + 1
	WeatherMist
	WeatherLightSnowRain
	WeatherSevereStorm
)

var weatherNames = map[Weather]string{
	WeatherClear:         "Clear",
	WeatherMist:          "Mist",
	WeatherLightSnowRain: "Light Snow/Rain",
	WeatherSevereStorm:   "Severe Storm",
}

func (w Weather) String() string {
	if n, ok := weatherNames[w]; ok {
		return n
	}
	return "Unknown"
}

// DailyRecord is one row of day.csv.
type DailyRecord struct {
	Instant    int       `json:"instant"`
	Date       time.Time `json:"dteday"`
	Season     Season    `json:"season"`
	Year       int       `json:"yr"`
	Month      int       `json:"mnth"`
	Holiday    bool      `json:"holiday"`
	Weekday    int       `json:"weekday"`
	WorkingDay bool      `json:"workingday"`
	Weather    Weather   `json:"weathersit"`
	// Normalized values: temp/41, atemp/50, hum/100, windspeed/67.
	Temp       float64 `json:"temp"`
	ATemp      float64 `json:"atemp"`
	Humidity   float64 `json:"hum"`
	WindSpeed  float64 `json:"windspeed"`
	Casual     int     `json:"casual"`
	Registered int     `json:"registered"`
	Count      int     `json:"cnt"`
}

// HourlyRecord is one row of hour.csv: the daily attributes plus the hour of day.
type HourlyRecord struct {
	DailyRecord
	Hour int `json:"hr"`
}

// IsWeekend reports whether weekday is Sunday (0) or Saturday (6).
func (r DailyRecord) IsWeekend() bool { return r.Weekday == 0 || r.Weekday == 6 }

// DateString formats the record date like the source file.
func (r DailyRecord) DateString() string { return r.Date.Format(DateLayout) }
