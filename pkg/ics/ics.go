// Package ics serializes the event list to and from iCalendar files.
package ics

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"

	"github.com/halwes/gridcal/pkg/calendar"
)

// Export writes the events as a single VCALENDAR stream.
func Export(w io.Writer, events []*calendar.Event) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//gridcal//EN")

	for _, e := range events {
		cal.Children = append(cal.Children, toComponent(e))
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

func toComponent(e *calendar.Event) *ical.Component {
	vevent := ical.NewComponent(ical.CompEvent)
	vevent.Props.SetText(ical.PropUID, e.ID)
	vevent.Props.SetText(ical.PropSummary, e.Title)

	if e.Description != "" {
		vevent.Props.SetText(ical.PropDescription, e.Description)
	}
	if e.Color != "" {
		vevent.Props.SetText(ical.PropColor, e.Color)
	}

	vevent.Props.SetDateTime(ical.PropDateTimeStart, timeOfDay(e.Date, e.StartTime))
	vevent.Props.SetDateTime(ical.PropDateTimeEnd, timeOfDay(e.Date, e.EndTime))
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, time.Now())

	return vevent
}

// Import reads VEVENTs back as drafts; the store assigns fresh ids when
// appending them. Components without a summary are skipped.
func Import(r io.Reader) ([]calendar.Draft, error) {
	dec := ical.NewDecoder(r)

	var drafts []calendar.Draft
	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, component := range cal.Children {
			if component.Name != ical.CompEvent {
				continue
			}
			draft, ok := toDraft(component)
			if !ok {
				continue
			}
			drafts = append(drafts, draft)
		}
	}
	return drafts, nil
}

func toDraft(component *ical.Component) (calendar.Draft, bool) {
	draft := calendar.Draft{
		StartTime: "00:00",
		EndTime:   "00:00",
		Color:     calendar.DefaultColor,
	}

	prop := component.Props.Get(ical.PropSummary)
	if prop == nil || prop.Value == "" {
		return calendar.Draft{}, false
	}
	draft.Title = prop.Value

	if prop := component.Props.Get(ical.PropDescription); prop != nil {
		draft.Description = prop.Value
	}
	if prop := component.Props.Get(ical.PropColor); prop != nil && prop.Value != "" {
		draft.Color = prop.Value
	}

	if prop := component.Props.Get(ical.PropDateTimeStart); prop != nil {
		if t, err := prop.DateTime(time.Local); err == nil {
			draft.Date = calendar.DateOnly(t)
			draft.StartTime = t.Format("15:04")
		}
	}
	if prop := component.Props.Get(ical.PropDateTimeEnd); prop != nil {
		if t, err := prop.DateTime(time.Local); err == nil {
			draft.EndTime = t.Format("15:04")
		}
	}

	if draft.Date.IsZero() {
		return calendar.Draft{}, false
	}
	return draft, true
}

func timeOfDay(date time.Time, hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return calendar.DateOnly(date)
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0, date.Location())
}
