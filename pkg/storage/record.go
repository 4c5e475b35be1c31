// Package storage provides the durable backends for the event list: a JSON
// file (the default) and a SQLite database. Both persist the same flat,
// versionless record schema and implement calendar.Backend.
package storage

import (
	"time"

	"github.com/halwes/gridcal/pkg/calendar"
)

// record is the persisted shape of an event. Dates are stored as ISO-8601
// calendar dates; times stay as the "HH:MM" strings the model carries.
// This schema is stable: fields are only ever added, never renamed.
type record struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Color       string `json:"color"`
}

const dateLayout = "2006-01-02"

func toRecord(e *calendar.Event) record {
	return record{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date.Format(dateLayout),
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Color:       e.Color,
	}
}

func (r record) toEvent() (*calendar.Event, error) {
	date, err := time.ParseInLocation(dateLayout, r.Date, time.Local)
	if err != nil {
		return nil, err
	}
	return &calendar.Event{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Date:        date,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Color:       r.Color,
	}, nil
}
