package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/halwes/gridcal/pkg/calendar"
)

type stubRescheduler struct {
	calls []struct {
		id   string
		date time.Time
	}
}

func (s *stubRescheduler) Reschedule(id string, date time.Time) {
	s.calls = append(s.calls, struct {
		id   string
		date time.Time
	}{id, date})
}

func TestDrag_DropCommitsReschedule(t *testing.T) {
	drag := &DragCoordinator{}
	store := &stubRescheduler{}
	event := &calendar.Event{ID: "evt-1", Date: day(3)}

	drag.Start(event)
	assert.Same(t, event, drag.InFlight())

	committed := drag.Drop(day(10), store)
	assert.True(t, committed)
	assert.Nil(t, drag.InFlight(), "slot clears on drop")

	assert.Len(t, store.calls, 1)
	assert.Equal(t, "evt-1", store.calls[0].id)
	assert.Equal(t, day(10), store.calls[0].date)
}

func TestDrag_DropWithNothingInFlight(t *testing.T) {
	drag := &DragCoordinator{}
	store := &stubRescheduler{}

	assert.False(t, drag.Drop(day(10), store))
	assert.Empty(t, store.calls)
}

func TestDrag_SecondStartReplacesFirst(t *testing.T) {
	drag := &DragCoordinator{}
	store := &stubRescheduler{}

	drag.Start(&calendar.Event{ID: "evt-1"})
	drag.Start(&calendar.Event{ID: "evt-2"})

	drag.Drop(day(10), store)
	assert.Len(t, store.calls, 1)
	assert.Equal(t, "evt-2", store.calls[0].id)
}

func TestDrag_SameDateDropStillReschedules(t *testing.T) {
	drag := &DragCoordinator{}
	store := &stubRescheduler{}
	event := &calendar.Event{ID: "evt-1", Date: day(3)}

	drag.Start(event)
	assert.True(t, drag.Drop(day(3), store), "same-cell drop is a legal no-op reschedule")
	assert.Len(t, store.calls, 1)
}

func TestDrag_Cancel(t *testing.T) {
	drag := &DragCoordinator{}
	store := &stubRescheduler{}

	drag.Start(&calendar.Event{ID: "evt-1"})
	drag.Cancel()

	assert.Nil(t, drag.InFlight())
	assert.False(t, drag.Drop(day(10), store))
	assert.Empty(t, store.calls)
}
