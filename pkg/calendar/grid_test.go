package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthGrid_Shape(t *testing.T) {
	// Every month of a span of years: cell count is leading blanks plus
	// days, and the first non-blank cell is day 1.
	for year := 2020; year <= 2028; year++ {
		for month := time.January; month <= time.December; month++ {
			cells := MonthGrid(year, month, time.Sunday)

			first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
			leading := int(first.Weekday())
			daysInMonth := first.AddDate(0, 1, -1).Day()

			require.Len(t, cells, leading+daysInMonth, "%d-%d", year, month)

			for i := 0; i < leading; i++ {
				assert.True(t, cells[i].Blank())
			}
			require.False(t, cells[leading].Blank())
			assert.Equal(t, 1, cells[leading].Day)
			assert.Equal(t, first, cells[leading].Date)

			last := cells[len(cells)-1]
			assert.Equal(t, daysInMonth, last.Day)
		}
	}
}

func TestMonthGrid_DaysInFebruary(t *testing.T) {
	testCases := []struct {
		year int
		days int
	}{
		{2023, 28}, // plain year
		{2024, 29}, // divisible by 4
		{1900, 28}, // century, not divisible by 400
		{2000, 29}, // divisible by 400
		{2100, 28},
	}
	for _, tc := range testCases {
		cells := MonthGrid(tc.year, time.February, time.Sunday)
		dayCount := 0
		for _, c := range cells {
			if !c.Blank() {
				dayCount++
			}
		}
		assert.Equal(t, tc.days, dayCount, "February %d", tc.year)
	}
}

func TestMonthGrid_WeekStart(t *testing.T) {
	// June 2024 starts on a Saturday: 6 blanks Sunday-first, 5 Monday-first.
	sunFirst := MonthGrid(2024, time.June, time.Sunday)
	monFirst := MonthGrid(2024, time.June, time.Monday)

	assert.Equal(t, 6+30, len(sunFirst))
	assert.Equal(t, 5+30, len(monFirst))

	// A month starting exactly on the week start has no blanks.
	sept := MonthGrid(2024, time.September, time.Sunday) // Sept 1 2024 is a Sunday
	assert.Equal(t, 30, len(sept))
	assert.Equal(t, 1, sept[0].Day)
}

func TestYearGrid(t *testing.T) {
	months := YearGrid(2024, time.Sunday)
	require.Len(t, months, 12)

	total := 0
	for _, cells := range months {
		for _, c := range cells {
			if !c.Blank() {
				total++
			}
		}
	}
	assert.Equal(t, 366, total, "2024 is a leap year")
}

func TestEventsOnDate(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	day := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.Local)
	events := []*Event{
		{ID: "1", Title: "Standup", Date: day},
		{ID: "2", Title: "Other day", Date: day.AddDate(0, 0, 1)},
		// Same calendar date, different wall clock and zone: still matches.
		{ID: "3", Title: "Late call", Date: time.Date(2024, time.June, 3, 23, 30, 0, 0, newYork)},
	}

	matched := EventsOnDate(events, day)
	require.Len(t, matched, 2)
	// Stable filter: insertion order preserved.
	assert.Equal(t, "1", matched[0].ID)
	assert.Equal(t, "3", matched[1].ID)

	// Repeated calls with unchanged input are idempotent.
	again := EventsOnDate(events, day)
	assert.Equal(t, matched, again)

	assert.Empty(t, EventsOnDate(events, day.AddDate(0, 0, 2)))
}
