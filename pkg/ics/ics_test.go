package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halwes/gridcal/pkg/calendar"
)

func TestExportImportRoundTrip(t *testing.T) {
	events := []*calendar.Event{
		{
			ID:          "evt-1",
			Title:       "Standup",
			Description: "daily sync",
			Date:        time.Date(2024, time.June, 3, 0, 0, 0, 0, time.Local),
			StartTime:   "09:00",
			EndTime:     "09:15",
			Color:       calendar.ColorBlue,
		},
		{
			ID:        "evt-2",
			Title:     "Retro",
			Date:      time.Date(2024, time.June, 28, 0, 0, 0, 0, time.Local),
			StartTime: "16:00",
			EndTime:   "17:00",
			Color:     calendar.ColorPurple,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, events))

	out := buf.String()
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "SUMMARY:Standup")

	drafts, err := Import(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	assert.Equal(t, "Standup", drafts[0].Title)
	assert.Equal(t, "daily sync", drafts[0].Description)
	assert.True(t, calendar.SameDay(events[0].Date, drafts[0].Date))
	assert.Equal(t, "09:00", drafts[0].StartTime)
	assert.Equal(t, "09:15", drafts[0].EndTime)
	assert.Equal(t, calendar.ColorBlue, drafts[0].Color)

	assert.Equal(t, "Retro", drafts[1].Title)
	assert.Equal(t, calendar.ColorPurple, drafts[1].Color)
}

func TestImportSkipsEventsWithoutSummary(t *testing.T) {
	ics := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:no-summary",
		"DTSTAMP:20240601T000000Z",
		"DTSTART:20240603T090000Z",
		"DTEND:20240603T100000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:with-summary",
		"DTSTAMP:20240601T000000Z",
		"SUMMARY:Kept",
		"DTSTART:20240603T090000Z",
		"DTEND:20240603T100000Z",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	drafts, err := Import(strings.NewReader(ics))
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Kept", drafts[0].Title)
}

func TestImportDefaultsUnknownColor(t *testing.T) {
	ics := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:x",
		"DTSTAMP:20240601T000000Z",
		"SUMMARY:Plain",
		"DTSTART:20240603T090000Z",
		"DTEND:20240603T100000Z",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	drafts, err := Import(strings.NewReader(ics))
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, calendar.DefaultColor, drafts[0].Color)
}
