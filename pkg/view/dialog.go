// Package view holds the widget's interaction state: the add/edit dialog
// state machine, the month/year view selector and the drag-reschedule
// coordinator. The GTK layer renders this state and feeds user actions
// back into it; nothing here touches the toolkit.
package view

import (
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/halwes/gridcal/pkg/calendar"
)

// DialogMode is the single tagged dialog state. Exactly one mode is active
// at a time; two independently toggled "open" flags is the bug this type
// exists to rule out.
type DialogMode int

const (
	DialogClosed DialogMode = iota
	DialogAdding
	DialogEditing
)

// EventWriter is the slice of the store the dialog needs.
type EventWriter interface {
	Create(draft calendar.Draft) (*calendar.Event, error)
	Update(id string, draft calendar.Draft) (*calendar.Event, error)
}

// DraftDefaults are the values a fresh add-draft starts from.
type DraftDefaults struct {
	StartTime string
	EndTime   string
	Color     string
}

// DialogController manages the add/edit dialog and its draft form.
type DialogController struct {
	store    EventWriter
	defaults DraftDefaults

	mode         DialogMode
	editingID    string
	draft        calendar.Draft
	selectedDate time.Time
}

// NewDialogController creates a closed controller whose draft tracks the
// given initially selected date.
func NewDialogController(store EventWriter, defaults DraftDefaults, selected time.Time) *DialogController {
	c := &DialogController{
		store:        store,
		defaults:     defaults,
		selectedDate: calendar.DateOnly(selected),
	}
	c.resetDraft()
	return c
}

// Mode returns the current dialog mode.
func (c *DialogController) Mode() DialogMode {
	return c.mode
}

// EditingID returns the id of the event being edited, or "" outside
// DialogEditing.
func (c *DialogController) EditingID() string {
	return c.editingID
}

// Draft returns the current form draft.
func (c *DialogController) Draft() calendar.Draft {
	return c.draft
}

// SetDraft replaces the form draft; the UI calls this as the user types.
func (c *DialogController) SetDraft(d calendar.Draft) {
	c.draft = d
}

// SelectDate records the calendar date the user last clicked. While the
// dialog is closed the draft's date follows it, so the next add opens
// pre-filled with the right day.
func (c *DialogController) SelectDate(date time.Time) {
	c.selectedDate = calendar.DateOnly(date)
	if c.mode == DialogClosed {
		c.draft.Date = c.selectedDate
	}
}

// SelectedDate returns the currently selected calendar date.
func (c *DialogController) SelectedDate() time.Time {
	return c.selectedDate
}

// OpenAdd switches to add mode with a fresh draft. Any dialog already open
// is implicitly closed by the mode change.
func (c *DialogController) OpenAdd() {
	c.mode = DialogAdding
	c.editingID = ""
	c.resetDraft()
}

// OpenEdit switches to edit mode for the given event, populating the draft
// from its current field values.
func (c *DialogController) OpenEdit(e *calendar.Event) {
	c.mode = DialogEditing
	c.editingID = e.ID
	c.draft = calendar.Draft{
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Color:       e.Color,
	}
}

// Submit applies the draft. On validation failure the dialog stays open
// with the draft intact and the error is returned for the UI to show
// inline. On success the store is mutated and the dialog closes.
func (c *DialogController) Submit() error {
	switch c.mode {
	case DialogAdding:
		if _, err := c.store.Create(c.draft); err != nil {
			return err
		}
	case DialogEditing:
		if _, err := c.store.Update(c.editingID, c.draft); err != nil {
			if errors.Is(err, calendar.ErrNotFound) {
				// The edited event vanished under us; nothing to save.
				log.WithField("id", c.editingID).Warn("edited event no longer exists")
				break
			}
			return err
		}
	default:
		return nil
	}

	c.mode = DialogClosed
	c.editingID = ""
	c.resetDraft()
	return nil
}

// Cancel closes the dialog discarding the draft. The store is untouched.
func (c *DialogController) Cancel() {
	c.mode = DialogClosed
	c.editingID = ""
	c.resetDraft()
}

func (c *DialogController) resetDraft() {
	c.draft = calendar.Draft{
		Date:      c.selectedDate,
		StartTime: c.defaults.StartTime,
		EndTime:   c.defaults.EndTime,
		Color:     c.defaults.Color,
	}
}
