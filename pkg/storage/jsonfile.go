package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/halwes/gridcal/pkg/calendar"
)

// JSONFile persists the event list as a single JSON array on disk.
type JSONFile struct {
	path string
}

// NewJSONFile creates a JSON file backend at the given path. The file is
// created lazily on first save.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Load reads the persisted event list. A missing file means a fresh
// install and yields an empty list. Corrupt data must not take the session
// down: it is logged and treated as empty, and the next save replaces it.
func (f *JSONFile) Load() ([]*calendar.Event, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read event file: %w", err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		log.WithError(err).WithField("path", f.path).Warn("event file is corrupt, starting empty")
		return nil, nil
	}

	events := make([]*calendar.Event, 0, len(records))
	for _, r := range records {
		e, err := r.toEvent()
		if err != nil {
			log.WithError(err).WithField("id", r.ID).Warn("skipping event with bad date")
			continue
		}
		events = append(events, e)
	}
	return events, nil
}

// Save writes the full event list, replacing whatever was on disk.
func (f *JSONFile) Save(events []*calendar.Event) error {
	records := make([]record, 0, len(events))
	for _, e := range events {
		records = append(records, toRecord(e))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return os.WriteFile(f.path, data, 0644)
}
