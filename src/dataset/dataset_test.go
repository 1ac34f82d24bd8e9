package dataset_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/BikeSharingDashboard/src/dataset"
	"github.com/iafilius/BikeSharingDashboard/src/dataset/datasettest"
)

func date(s string) time.Time {
	t, err := time.Parse(dataset.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestLoad_RoundTripsSyntheticTables(t *testing.T) {
	dir := datasettest.WriteDir(t, 40)
	ds, err := dataset.Load(dir)
	require.NoError(t, err)

	want := datasettest.Days(40)
	require.Len(t, ds.Days, 40)
	assert.Equal(t, want[0], ds.Days[0])
	assert.Equal(t, want[39], ds.Days[39])
	for _, d := range ds.Days {
		assert.Equal(t, d.Casual+d.Registered, d.Count, "cnt must equal casual+registered on %s", d.DateString())
	}

	require.Len(t, ds.Hours, 40*5)
	assert.Equal(t, 8, ds.Hours[1].Hour)
	assert.Equal(t, want[0].Date, ds.Hours[4].Date)
	assert.Equal(t, want[1].Date, ds.Hours[5].Date)
}

func TestLoad_MissingFileIsFatal(t *testing.T) {
	dir := datasettest.WriteDir(t, 5)
	require.NoError(t, os.Remove(filepath.Join(dir, dataset.HourFile)))

	_, err := dataset.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), dataset.HourFile)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_ReportsBothFailures(t *testing.T) {
	_, err := dataset.Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), dataset.DayFile)
	assert.Contains(t, err.Error(), dataset.HourFile)
}

func TestLoad_MissingColumn(t *testing.T) {
	dir := datasettest.WriteDir(t, 3)
	csv := "instant,dteday,cnt\n1,2011-01-01,10\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, dataset.DayFile), []byte(csv), 0o644))

	_, err := dataset.Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dataset.ErrMissingColumn))
}

func TestLoad_MalformedValues(t *testing.T) {
	cases := map[string]string{
		"bad date":  "1,2011-13-45,1,0,1,0,6,0,2,0.3,0.3,0.8,0.16,331,654,985",
		"bad count": "1,2011-01-01,1,0,1,0,6,0,2,0.3,0.3,0.8,0.16,331,654,lots",
		"bad temp":  "1,2011-01-01,1,0,1,0,6,0,2,warm,0.3,0.8,0.16,331,654,985",
	}
	for name, row := range cases {
		t.Run(name, func(t *testing.T) {
			dir := datasettest.WriteDir(t, 3)
			csv := "instant,dteday,season,yr,mnth,holiday,weekday,workingday,weathersit,temp,atemp,hum,windspeed,casual,registered,cnt\n" + row + "\n"
			require.NoError(t, os.WriteFile(filepath.Join(dir, dataset.DayFile), []byte(csv), 0o644))
			_, err := dataset.Load(dir)
			assert.Error(t, err)
		})
	}
}

func TestFilterRange_InclusiveAndOrdered(t *testing.T) {
	days := datasettest.Days(60)
	r := dataset.DateRange{Start: date("2011-01-10"), End: date("2011-02-05")}

	got, err := dataset.FilterRange(days, r)
	require.NoError(t, err)
	require.Len(t, got, 27)
	assert.Equal(t, r.Start, got[0].Date)
	assert.Equal(t, r.End, got[len(got)-1].Date)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i].Date.After(got[i-1].Date), "rows must keep date order")
	}
	for _, d := range days {
		inside := !d.Date.Before(r.Start) && !d.Date.After(r.End)
		found := false
		for _, g := range got {
			if g.Date.Equal(d.Date) {
				found = true
				break
			}
		}
		assert.Equal(t, inside, found, "membership mismatch for %s", d.DateString())
	}
}

func TestFilterRange_SingleDay(t *testing.T) {
	days := datasettest.Days(10)
	got, err := dataset.FilterRange(days, dataset.DateRange{Start: date("2011-01-04"), End: date("2011-01-04")})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2011-01-04", got[0].DateString())
}

func TestFilterRange_IncompleteIsPrompt(t *testing.T) {
	days := datasettest.Days(10)
	_, err := dataset.FilterRange(days, dataset.DateRange{Start: date("2011-01-04")})
	assert.ErrorIs(t, err, dataset.ErrIncompleteRange)
	_, err = dataset.FilterRange(days, dataset.DateRange{})
	assert.ErrorIs(t, err, dataset.ErrIncompleteRange)
}

func TestBoundsAndClamp(t *testing.T) {
	ds := &dataset.Dataset{Days: datasettest.Days(30)}
	b := ds.Bounds()
	assert.Equal(t, "2011-01-01", b.Start.Format(dataset.DateLayout))
	assert.Equal(t, "2011-01-30", b.End.Format(dataset.DateLayout))

	c := ds.Clamp(dataset.DateRange{Start: date("2010-06-01"), End: date("2013-01-01")})
	assert.Equal(t, b, c)

	swapped := ds.Clamp(dataset.DateRange{Start: date("2011-01-20"), End: date("2011-01-05")})
	assert.Equal(t, "2011-01-05", swapped.Start.Format(dataset.DateLayout))
	assert.Equal(t, "2011-01-20", swapped.End.Format(dataset.DateLayout))

	half := ds.Clamp(dataset.DateRange{Start: date("2011-01-20")})
	assert.False(t, half.Complete())
}

func TestParseDateRange(t *testing.T) {
	r, err := dataset.ParseDateRange("2011-01-01", " ")
	require.NoError(t, err)
	assert.False(t, r.Complete())
	assert.Equal(t, "2011-01-01 .. ?", r.String())

	_, err = dataset.ParseDateRange("01/02/2011", "2011-02-01")
	assert.Error(t, err)
}
