package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halwes/gridcal/pkg/calendar"
)

func testEvents() []*calendar.Event {
	return []*calendar.Event{
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
			Color:     calendar.ColorGreen,
		},
	}
}

func TestJSONFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	backend := NewJSONFile(path)

	require.NoError(t, backend.Save(testEvents()))

	loaded, err := backend.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, testEvents(), loaded, "all fields and order survive the round trip")
}

func TestJSONFile_MissingFile(t *testing.T) {
	backend := NewJSONFile(filepath.Join(t.TempDir(), "nope.json"))

	loaded, err := backend.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestJSONFile_CorruptFileFallsBackToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json at all"), 0644))

	backend := NewJSONFile(path)
	loaded, err := backend.Load()
	require.NoError(t, err, "corrupt data must not fail the session")
	assert.Empty(t, loaded)

	// The next save simply replaces the corrupt blob.
	require.NoError(t, backend.Save(testEvents()))
	loaded, err = backend.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}

func TestJSONFile_SkipsBadDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	blob := `[
		{"id":"ok","title":"Fine","date":"2024-06-03","start_time":"09:00","end_time":"10:00","color":"blue"},
		{"id":"bad","title":"Broken","date":"yesterday-ish","start_time":"09:00","end_time":"10:00","color":"blue"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(blob), 0644))

	loaded, err := NewJSONFile(path).Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "ok", loaded[0].ID)
}
