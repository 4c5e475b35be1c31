package calendar

import (
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ErrNotFound is returned when an operation names an event id the store
// does not hold.
var ErrNotFound = errors.New("event not found")

// Backend mirrors the event list to durable storage. Load runs once at
// startup; Save runs after every mutation with the full current list.
type Backend interface {
	Load() ([]*Event, error)
	Save([]*Event) error
}

// Store owns the ordered event collection. All mutations go through it and
// each one is mirrored to the backend before the call returns.
type Store struct {
	backend Backend
	events  []*Event
}

// NewStore creates a store over the given backend and loads the persisted
// events. A load failure degrades to an empty collection; the session
// continues and the next save overwrites whatever was there.
func NewStore(backend Backend) *Store {
	events, err := backend.Load()
	if err != nil {
		log.WithError(err).Warn("failed to load events, starting empty")
		events = nil
	}
	return &Store{backend: backend, events: events}
}

// Events returns a snapshot of the collection in insertion order.
func (s *Store) Events() []*Event {
	out := make([]*Event, len(s.events))
	copy(out, s.events)
	return out
}

// EventsOn returns the events occurring on the given calendar date, in
// insertion order.
func (s *Store) EventsOn(date time.Time) []*Event {
	return EventsOnDate(s.events, date)
}

// Get returns the event with the given id, or nil.
func (s *Store) Get(id string) *Event {
	for _, e := range s.events {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Create validates the draft, assigns a fresh id and appends the event.
// Invalid drafts are rejected before anything is stored or persisted.
func (s *Store) Create(draft Draft) (*Event, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	event := &Event{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		Date:        draft.Date,
		StartTime:   draft.StartTime,
		EndTime:     draft.EndTime,
		Color:       draft.Color,
	}
	if event.Color == "" {
		event.Color = DefaultColor
	}

	s.events = append(s.events, event)
	s.persist()
	return event, nil
}

// Update replaces every field of the named event except its id.
func (s *Store) Update(id string, draft Draft) (*Event, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	event := s.Get(id)
	if event == nil {
		return nil, ErrNotFound
	}

	event.Title = draft.Title
	event.Description = draft.Description
	event.Date = draft.Date
	event.StartTime = draft.StartTime
	event.EndTime = draft.EndTime
	event.Color = draft.Color
	if event.Color == "" {
		event.Color = DefaultColor
	}

	s.persist()
	return event, nil
}

// Reschedule moves the named event to a new date, leaving every other
// field alone. An unknown id is silently ignored; the drag path hands us
// ids it read from the store, so a miss means the event was deleted
// mid-drag.
func (s *Store) Reschedule(id string, date time.Time) {
	event := s.Get(id)
	if event == nil {
		return
	}
	event.Date = date
	s.persist()
}

// Delete removes the named event. Deleting an absent id is a no-op.
func (s *Store) Delete(id string) {
	for i, e := range s.events {
		if e.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			s.persist()
			return
		}
	}
}

// persist mirrors the full collection to the backend. The in-memory state
// stays authoritative for this session; a failed save is logged and the
// next mutation retries with the then-current list.
func (s *Store) persist() {
	if err := s.backend.Save(s.events); err != nil {
		log.WithError(err).Error("failed to persist events")
	}
}
