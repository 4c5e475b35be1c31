// Package notify raises desktop notifications for upcoming events through
// the org.freedesktop.Notifications session-bus service.
package notify

import (
	"fmt"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/halwes/gridcal/pkg/calendar"
)

// Notifier sends reminder popups and remembers which events it has
// already announced this session.
type Notifier struct {
	conn *dbus.Conn
	seen map[string]bool
}

// New connects to the session bus.
func New() (*Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Notifier{conn: conn, seen: make(map[string]bool)}, nil
}

// Close releases the bus connection.
func (n *Notifier) Close() error {
	return n.conn.Close()
}

// Send raises one notification.
func (n *Notifier) Send(summary, body string) error {
	obj := n.conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		"gridcal", uint32(0), "x-office-calendar",
		summary, body,
		[]string{}, map[string]dbus.Variant{}, int32(-1))
	return call.Err
}

// RemindUpcoming notifies once per event whose start falls inside the
// reminder window. Errors are returned for logging; the caller keeps
// ticking regardless.
func (n *Notifier) RemindUpcoming(events []*calendar.Event, now time.Time, window time.Duration) error {
	for _, e := range Due(events, now, window) {
		if n.seen[e.ID] {
			continue
		}
		body := fmt.Sprintf("Starts at %s", e.StartTime)
		if err := n.Send(e.Title, body); err != nil {
			return err
		}
		n.seen[e.ID] = true
	}
	return nil
}

// Due returns today's events starting within [now, now+window], in store
// order.
func Due(events []*calendar.Event, now time.Time, window time.Duration) []*calendar.Event {
	var due []*calendar.Event
	for _, e := range events {
		if !e.IsOnDate(now) {
			continue
		}
		start := e.StartOfDayTime()
		if !start.Before(now) && start.Sub(now) <= window {
			due = append(due, e)
		}
	}
	return due
}
