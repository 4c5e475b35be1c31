package view

import (
	"time"
)

// Mode is the top-level presentation mode.
type Mode int

const (
	ModeMonth Mode = iota
	ModeYear
)

// Selector tracks which grid is shown and where it points. The month
// pointer and the year-view pointer are independent; they only meet when a
// month is picked from the year view.
type Selector struct {
	mode     Mode
	current  time.Time // first of the displayed month
	yearView int
	years    []int
	now      func() time.Time
}

// NewSelector creates a selector pointing at the current month. The year
// dropdown window is computed once here and never slides afterwards.
func NewSelector(now func() time.Time) *Selector {
	if now == nil {
		now = time.Now
	}
	t := now()
	years := make([]int, 0, 10)
	for y := t.Year() - 5; y < t.Year()+5; y++ {
		years = append(years, y)
	}
	return &Selector{
		current:  firstOfMonth(t),
		yearView: t.Year(),
		years:    years,
		now:      now,
	}
}

// Mode returns the current presentation mode.
func (s *Selector) Mode() Mode {
	return s.mode
}

// Current returns the first day of the month the month view points at.
func (s *Selector) Current() time.Time {
	return s.current
}

// YearViewYear returns the year the year view points at.
func (s *Selector) YearViewYear() int {
	return s.yearView
}

// Years returns the fixed dropdown window of selectable years.
func (s *Selector) Years() []int {
	return s.years
}

// NextMonth advances the month pointer, wrapping across year boundaries.
func (s *Selector) NextMonth() {
	s.current = s.current.AddDate(0, 1, 0)
}

// PrevMonth retreats the month pointer.
func (s *Selector) PrevMonth() {
	s.current = s.current.AddDate(0, -1, 0)
}

// Today points the month view back at the current month.
func (s *Selector) Today() {
	s.current = firstOfMonth(s.now())
}

// ToggleMode flips between the month and year presentations.
func (s *Selector) ToggleMode() {
	if s.mode == ModeMonth {
		s.mode = ModeYear
	} else {
		s.mode = ModeMonth
	}
}

// SelectMonth picks a month out of the year view: the month pointer moves
// to that month of the year being viewed and the presentation returns to
// month mode.
func (s *Selector) SelectMonth(month time.Month) {
	s.current = time.Date(s.yearView, month, 1, 0, 0, 0, 0, time.Local)
	s.mode = ModeMonth
}

// SetYear jumps whichever pointer the current mode owns to the given year.
func (s *Selector) SetYear(year int) {
	if s.mode == ModeYear {
		s.yearView = year
		return
	}
	s.current = time.Date(year, s.current.Month(), 1, 0, 0, 0, 0, time.Local)
}

// SelectedYear returns the year shown in the dropdown for the current mode.
func (s *Selector) SelectedYear() int {
	if s.mode == ModeYear {
		return s.yearView
	}
	return s.current.Year()
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
