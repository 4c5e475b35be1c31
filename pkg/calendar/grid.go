package calendar

import (
	"time"
)

// Cell is one slot of a month grid: either a leading blank before the
// month's first day, or a concrete date.
type Cell struct {
	Date time.Time
	Day  int // 1..31, 0 for blanks
}

// Blank reports whether the cell is leading padding.
func (c Cell) Blank() bool {
	return c.Day == 0
}

// MonthGrid lays out a month as an ordered cell sequence: one blank per
// weekday between weekStart and the month's first day, then one cell per
// day 1..daysInMonth. The caller wraps the sequence into 7 columns; no
// trailing padding is added, so the last row may be short.
func MonthGrid(year int, month time.Month, weekStart time.Weekday) []Cell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	leading := (int(first.Weekday()) - int(weekStart) + 7) % 7

	// AddDate normalizes through the Gregorian rules, so leap Februaries
	// come out right without a day-count table.
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cells := make([]Cell, 0, leading+daysInMonth)
	for i := 0; i < leading; i++ {
		cells = append(cells, Cell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		cells = append(cells, Cell{
			Date: time.Date(year, month, day, 0, 0, 0, 0, time.Local),
			Day:  day,
		})
	}
	return cells
}

// YearGrid produces the twelve mini month grids for a year view, January
// through December.
func YearGrid(year int, weekStart time.Weekday) [][]Cell {
	months := make([][]Cell, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, MonthGrid(year, m, weekStart))
	}
	return months
}

// EventsOnDate filters events down to those occurring on the given calendar
// date. The filter is stable: same-day events keep their insertion order.
func EventsOnDate(events []*Event, date time.Time) []*Event {
	var matched []*Event
	for _, e := range events {
		if e.IsOnDate(date) {
			matched = append(matched, e)
		}
	}
	return matched
}
