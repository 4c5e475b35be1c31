package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Event represents a single calendar entry
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"start_time"` // "HH:MM" wall clock
	EndTime     string    `json:"end_time"`   // "HH:MM" wall clock
	Color       string    `json:"color"`
}

// Draft holds the editable fields of an event before it is created or an
// update is applied. It carries no identity.
type Draft struct {
	Title       string
	Description string
	Date        time.Time
	StartTime   string
	EndTime     string
	Color       string
}

// Color palette identifiers
const (
	ColorBlue   = "blue"
	ColorRed    = "red"
	ColorYellow = "yellow"
	ColorGreen  = "green"
	ColorPurple = "purple"

	DefaultColor = ColorBlue
)

// paletteHex maps palette identifiers to display colors.
var paletteHex = map[string]string{
	ColorBlue:   "#4285F4",
	ColorRed:    "#EA4335",
	ColorYellow: "#FBBC05",
	ColorGreen:  "#34A853",
	ColorPurple: "#8E24AA",
}

// Palette returns the palette identifiers in display order.
func Palette() []string {
	return []string{ColorBlue, ColorRed, ColorYellow, ColorGreen, ColorPurple}
}

// ColorHex returns the hex value for a palette identifier. Unknown
// identifiers fall back to the default color rather than failing.
func ColorHex(id string) string {
	if hex, ok := paletteHex[id]; ok {
		return hex
	}
	return paletteHex[DefaultColor]
}

// ValidationError reports which required draft fields are missing.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Validate checks the draft's required fields. Title, start time and end
// time must be non-empty; end > start is deliberately not enforced.
func (d Draft) Validate() error {
	var missing []string
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, "title")
	}
	if d.StartTime == "" {
		missing = append(missing, "start time")
	}
	if d.EndTime == "" {
		missing = append(missing, "end time")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// SameDay reports whether two instants share the same calendar date,
// ignoring time-of-day and zone offset.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DateOnly returns t truncated to its calendar date at midnight.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsOnDate returns true if the event occurs on the given date
func (e *Event) IsOnDate(date time.Time) bool {
	return SameDay(e.Date, date)
}

// StartOfDayTime resolves the event's "HH:MM" start string against its date.
// Malformed times resolve to midnight.
func (e *Event) StartOfDayTime() time.Time {
	t, err := time.Parse("15:04", e.StartTime)
	if err != nil {
		return DateOnly(e.Date)
	}
	return time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(),
		t.Hour(), t.Minute(), 0, 0, e.Date.Location())
}
