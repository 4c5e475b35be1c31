package view

import (
	"time"

	"github.com/halwes/gridcal/pkg/calendar"
)

// Rescheduler is the slice of the store the drag path needs.
type Rescheduler interface {
	Reschedule(id string, date time.Time)
}

// DragCoordinator tracks the single event currently being dragged. One
// slot matches single-pointer drag input: starting a second drag simply
// replaces the first.
type DragCoordinator struct {
	inFlight *calendar.Event
}

// Start records the event as in flight.
func (d *DragCoordinator) Start(e *calendar.Event) {
	d.inFlight = e
}

// InFlight returns the event currently being dragged, or nil.
func (d *DragCoordinator) InFlight() *calendar.Event {
	return d.inFlight
}

// Cancel clears the slot without touching the store (drag aborted).
func (d *DragCoordinator) Cancel() {
	d.inFlight = nil
}

// Drop commits the in-flight event to the given date and clears the slot.
// A drop with nothing in flight is a no-op; dropping on the event's own
// date is a legal no-op reschedule through the same path. Returns whether
// a reschedule was issued.
func (d *DragCoordinator) Drop(date time.Time, store Rescheduler) bool {
	if d.inFlight == nil {
		return false
	}
	store.Reschedule(d.inFlight.ID, calendar.DateOnly(date))
	d.inFlight = nil
	return true
}
