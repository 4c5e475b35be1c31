package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	coreglib "github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	log "github.com/sirupsen/logrus"

	"github.com/halwes/gridcal/internal/config"
	"github.com/halwes/gridcal/pkg/calendar"
	"github.com/halwes/gridcal/pkg/ics"
	"github.com/halwes/gridcal/pkg/notify"
	"github.com/halwes/gridcal/pkg/storage"
	"github.com/halwes/gridcal/pkg/view"
)

// App holds the application state
type App struct {
	config   *config.Config
	store    *calendar.Store
	selector *view.Selector
	dialogs  *view.DialogController
	drag     *view.DragCoordinator
	notifier *notify.Notifier

	// UI components
	window      *gtk.ApplicationWindow
	titleBtn    *gtk.Button
	yearCombo   *gtk.ComboBoxText
	contentBox  *gtk.Box
	eventDialog *gtk.Dialog

	// Guard against feedback loops while the year combo is repopulated
	syncingYear bool
}

// WaybarOutput is the JSON structure for waybar custom modules
type WaybarOutput struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
	Class   string `json:"class"`
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--waybar", "waybar":
			runWaybarMode()
			return
		case "--export":
			runExport(os.Args[2:])
			return
		case "--import":
			runImport(os.Args[2:])
			return
		}
	}

	app := gtk.NewApplication("com.halwes.gridcal", 0)
	app.ConnectActivate(func() { activate(app) })

	if code := app.Run(os.Args); code > 0 {
		os.Exit(code)
	}
}

// openBackend opens the configured persistence backend. The returned
// closer is a no-op for the JSON file.
func openBackend(cfg *config.Config) (calendar.Backend, func(), error) {
	if cfg.Storage == config.StorageSQLite {
		db, err := storage.NewSQLite(cfg.DatabasePath())
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	}
	return storage.NewJSONFile(cfg.EventsPath()), func() {}, nil
}

// runWaybarMode outputs calendar info as JSON for waybar
func runWaybarMode() {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	now := time.Now()
	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		output := WaybarOutput{
			Text:    now.Format("02/01"),
			Tooltip: "Calendar unavailable",
			Class:   "error",
		}
		json.NewEncoder(os.Stdout).Encode(output)
		return
	}
	defer closeBackend()

	store := calendar.NewStore(backend)
	events := store.EventsOn(now)

	var tooltip strings.Builder
	tooltip.WriteString(now.Format("Monday, 2 January 2006"))

	if len(events) > 0 {
		tooltip.WriteString("\n\n")
		for i, event := range events {
			if i > 0 {
				tooltip.WriteString("\n")
			}
			tooltip.WriteString(fmt.Sprintf("%s - %s", event.StartTime, event.Title))
		}
	} else {
		tooltip.WriteString("\n\nNo events today")
	}

	class := "no-events"
	if len(events) > 0 {
		class = "has-events"
	}

	text := now.Format("02/01")
	if len(events) > 0 {
		text = fmt.Sprintf("%s (%d)", text, len(events))
	}

	output := WaybarOutput{
		Text:    text,
		Tooltip: tooltip.String(),
		Class:   class,
	}
	json.NewEncoder(os.Stdout).Encode(output)
}

// runExport writes the stored events to an ics file and exits.
func runExport(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: gridcal --export FILE")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeBackend()
	store := calendar.NewStore(backend)

	f, err := os.Create(args[0])
	if err != nil {
		log.Fatalf("Failed to create %s: %v", args[0], err)
	}
	defer f.Close()

	if err := ics.Export(f, store.Events()); err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	log.Infof("Exported %d events to %s", len(store.Events()), args[0])
}

// runImport appends events from an ics file to the store and exits.
func runImport(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: gridcal --import FILE")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeBackend()
	store := calendar.NewStore(backend)

	f, err := os.Open(args[0])
	if err != nil {
		log.Fatalf("Failed to open %s: %v", args[0], err)
	}
	defer f.Close()

	drafts, err := ics.Import(f)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	imported := 0
	for _, draft := range drafts {
		if _, err := store.Create(draft); err != nil {
			log.WithError(err).Warnf("Skipping event %q", draft.Title)
			continue
		}
		imported++
	}
	log.Infof("Imported %d events from %s", imported, args[0])
}

func activate(gtkApp *gtk.Application) {
	cfg, err := config.Load()
	if err != nil {
		log.Warnf("Failed to load config: %v", err)
		cfg = config.DefaultConfig()
	}

	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	store := calendar.NewStore(backend)
	now := time.Now()

	selector := view.NewSelector(time.Now)
	if cfg.DefaultView == "year" {
		selector.ToggleMode()
	}

	app := &App{
		config:   cfg,
		store:    store,
		selector: selector,
		dialogs: view.NewDialogController(store, view.DraftDefaults{
			StartTime: cfg.DefaultStartTime,
			EndTime:   cfg.DefaultEndTime,
			Color:     cfg.DefaultColor,
		}, now),
		drag: &view.DragCoordinator{},
	}

	gtkApp.ConnectShutdown(func() {
		log.Info("Shutting down, closing store")
		closeBackend()
		if app.notifier != nil {
			app.notifier.Close()
		}
	})

	app.buildUI(gtkApp)
	app.refresh()
	app.startReminders()
}

// startReminders wires the minute tick that raises desktop notifications
// for events about to start. Everything runs on the UI loop; there is no
// background goroutine to race with the store.
func (app *App) startReminders() {
	if !app.config.NotificationsEnabled {
		return
	}

	notifier, err := notify.New()
	if err != nil {
		log.Warnf("Notifications disabled: %v", err)
		return
	}
	app.notifier = notifier
	window := time.Duration(app.config.ReminderMins) * time.Minute

	check := func() bool {
		if err := notifier.RemindUpcoming(app.store.Events(), time.Now(), window); err != nil {
			log.Warnf("Failed to send reminder: %v", err)
		}
		return true
	}
	check()
	glib.TimeoutSecondsAdd(60, check)
}

func (app *App) buildUI(gtkApp *gtk.Application) {
	app.window = gtk.NewApplicationWindow(gtkApp)
	app.window.SetTitle("Gridcal")
	app.window.SetDefaultSize(app.config.WindowWidth, app.config.WindowHeight)

	mainBox := gtk.NewBox(gtk.OrientationVertical, 0)
	mainBox.SetHExpand(true)
	mainBox.SetVExpand(true)

	mainBox.Append(app.buildHeader())

	app.contentBox = gtk.NewBox(gtk.OrientationVertical, 0)
	app.contentBox.SetHExpand(true)
	app.contentBox.SetVExpand(true)
	app.contentBox.SetMarginTop(8)
	app.contentBox.SetMarginBottom(8)
	app.contentBox.SetMarginStart(8)
	app.contentBox.SetMarginEnd(8)
	mainBox.Append(app.contentBox)

	app.window.SetChild(mainBox)
	app.window.Show()
}

func (app *App) buildHeader() *gtk.Box {
	headerBox := gtk.NewBox(gtk.OrientationHorizontal, 8)
	headerBox.SetMarginTop(8)
	headerBox.SetMarginStart(8)
	headerBox.SetMarginEnd(8)

	createBtn := gtk.NewButtonWithLabel("+ Create")
	createBtn.AddCSSClass("suggested-action")
	createBtn.ConnectClicked(func() {
		app.dialogs.OpenAdd()
		app.showEventDialog()
	})
	headerBox.Append(createBtn)

	todayBtn := gtk.NewButtonWithLabel("Today")
	todayBtn.ConnectClicked(func() {
		app.selector.Today()
		app.dialogs.SelectDate(time.Now())
		app.refresh()
	})
	headerBox.Append(todayBtn)

	prevBtn := gtk.NewButtonFromIconName("go-previous-symbolic")
	prevBtn.ConnectClicked(func() {
		app.selector.PrevMonth()
		app.refresh()
	})
	headerBox.Append(prevBtn)

	nextBtn := gtk.NewButtonFromIconName("go-next-symbolic")
	nextBtn.ConnectClicked(func() {
		app.selector.NextMonth()
		app.refresh()
	})
	headerBox.Append(nextBtn)

	// Clicking the title flips between month and year presentation
	app.titleBtn = gtk.NewButtonWithLabel("")
	app.titleBtn.AddCSSClass("flat")
	app.titleBtn.AddCSSClass("title-1")
	app.titleBtn.SetHExpand(true)
	app.titleBtn.ConnectClicked(func() {
		app.selector.ToggleMode()
		app.refresh()
	})
	headerBox.Append(app.titleBtn)

	app.yearCombo = gtk.NewComboBoxText()
	for _, year := range app.selector.Years() {
		app.yearCombo.AppendText(strconv.Itoa(year))
	}
	app.yearCombo.ConnectChanged(func() {
		if app.syncingYear {
			return
		}
		idx := app.yearCombo.Active()
		years := app.selector.Years()
		if idx < 0 || int(idx) >= len(years) {
			return
		}
		app.selector.SetYear(years[idx])
		app.refresh()
	})
	headerBox.Append(app.yearCombo)

	return headerBox
}

// refresh rebuilds the content area for the current selector state.
func (app *App) refresh() {
	// Clear existing content
	for {
		child := app.contentBox.FirstChild()
		if child == nil {
			break
		}
		app.contentBox.Remove(child)
	}

	if app.selector.Mode() == view.ModeMonth {
		app.titleBtn.SetLabel(app.selector.Current().Format("January 2006"))
		app.contentBox.Append(app.buildMonthView())
	} else {
		app.titleBtn.SetLabel(strconv.Itoa(app.selector.YearViewYear()))
		app.contentBox.Append(app.buildYearView())
	}

	// Sync the year combo without re-triggering navigation
	app.syncingYear = true
	for i, year := range app.selector.Years() {
		if year == app.selector.SelectedYear() {
			app.yearCombo.SetActive(i)
			break
		}
	}
	app.syncingYear = false
}

// dayNames returns the weekday header labels starting from the configured
// week start.
func dayNames(weekStart time.Weekday, short bool) []string {
	full := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	names := make([]string, 7)
	for i := 0; i < 7; i++ {
		name := full[(int(weekStart)+i)%7]
		if short {
			name = name[:1]
		}
		names[i] = name
	}
	return names
}

func (app *App) buildMonthView() *gtk.Grid {
	grid := gtk.NewGrid()
	grid.SetRowHomogeneous(true)
	grid.SetColumnHomogeneous(true)
	grid.SetVExpand(true)
	grid.SetHExpand(true)
	grid.SetRowSpacing(2)
	grid.SetColumnSpacing(2)

	weekStart := app.config.WeekStart()
	for i, name := range dayNames(weekStart, false) {
		label := gtk.NewLabel(name)
		label.AddCSSClass("heading")
		grid.Attach(label, i, 0, 1, 1)
	}

	current := app.selector.Current()
	cells := calendar.MonthGrid(current.Year(), current.Month(), weekStart)

	row := 1
	col := 0
	for _, cell := range cells {
		if cell.Blank() {
			pad := gtk.NewBox(gtk.OrientationVertical, 0)
			pad.AddCSSClass("dim-label")
			grid.Attach(pad, col, row, 1, 1)
		} else {
			grid.Attach(app.createDayCell(cell.Date), col, row, 1, 1)
		}
		col++
		if col > 6 {
			col = 0
			row++
		}
	}

	return grid
}

func (app *App) createDayCell(date time.Time) *gtk.Box {
	cell := gtk.NewBox(gtk.OrientationVertical, 2)
	cell.SetHExpand(true)
	cell.SetVExpand(true)
	cell.AddCSSClass("frame")
	cell.SetMarginTop(1)
	cell.SetMarginBottom(1)

	today := time.Now()
	isToday := calendar.SameDay(date, today)
	isSelected := calendar.SameDay(date, app.dialogs.SelectedDate())

	dayLabel := gtk.NewLabel(strconv.Itoa(date.Day()))
	dayLabel.SetXAlign(0)
	dayLabel.SetMarginStart(4)
	if isToday {
		dayLabel.AddCSSClass("accent")
	}
	cell.Append(dayLabel)

	if isSelected {
		cell.AddCSSClass("suggested-action")
	}

	for _, event := range app.store.EventsOn(date) {
		cell.Append(app.createEventItem(event))
	}

	// Clicking the empty part of a cell selects the day and opens the add
	// dialog pre-filled with it. Clicks on event items claim the gesture
	// first and never get here.
	click := gtk.NewGestureClick()
	click.ConnectPressed(func(nPress int, x, y float64) {
		app.dialogs.SelectDate(date)
		app.dialogs.OpenAdd()
		app.showEventDialog()
	})
	cell.AddController(click)

	// Accept event drops to reschedule onto this date
	drop := gtk.NewDropTarget(coreglib.TypeString, gdk.ActionMove)
	drop.ConnectDrop(func(value *coreglib.Value, x, y float64) bool {
		committed := app.drag.Drop(date, app.store)
		if committed {
			app.refresh()
		}
		return committed
	})
	cell.AddController(drop)

	return cell
}

func (app *App) createEventItem(event *calendar.Event) *gtk.Box {
	item := gtk.NewBox(gtk.OrientationHorizontal, 4)
	item.AddCSSClass("card")
	item.SetMarginStart(2)
	item.SetMarginEnd(2)

	label := gtk.NewLabel(truncate(event.StartTime+" "+event.Title, 22))
	label.SetXAlign(0)
	label.AddCSSClass("caption")
	label.SetTooltipText(fmt.Sprintf("%s – %s  %s", event.StartTime, event.EndTime, event.Title))
	item.Append(label)

	// Drag to reschedule
	src := gtk.NewDragSource()
	src.SetActions(gdk.ActionMove)
	src.ConnectPrepare(func(x, y float64) *gdk.ContentProvider {
		app.drag.Start(event)
		return gdk.NewContentProviderForValue(coreglib.NewValue(event.ID))
	})
	src.ConnectDragEnd(func(drag gdk.Dragger, deleteData bool) {
		// Fires after a successful drop has already cleared the slot, so
		// this only catches aborted drags.
		app.drag.Cancel()
	})
	item.AddController(src)

	// Left click edits, right click offers edit/delete
	click := gtk.NewGestureClick()
	click.ConnectPressed(func(nPress int, x, y float64) {
		click.SetState(gtk.EventSequenceClaimed)
		app.dialogs.OpenEdit(event)
		app.showEventDialog()
	})
	item.AddController(click)

	menu := gtk.NewGestureClick()
	menu.SetButton(3)
	menu.ConnectPressed(func(nPress int, x, y float64) {
		menu.SetState(gtk.EventSequenceClaimed)
		app.showEventMenu(item, event)
	})
	item.AddController(menu)

	return item
}

// showEventMenu pops the edit/delete context menu over an event item.
func (app *App) showEventMenu(parent *gtk.Box, event *calendar.Event) {
	pop := gtk.NewPopover()
	pop.SetParent(parent)

	box := gtk.NewBox(gtk.OrientationVertical, 0)

	editBtn := gtk.NewButtonWithLabel("Edit")
	editBtn.AddCSSClass("flat")
	editBtn.ConnectClicked(func() {
		pop.Popdown()
		app.dialogs.OpenEdit(event)
		app.showEventDialog()
	})
	box.Append(editBtn)

	deleteBtn := gtk.NewButtonWithLabel("Delete")
	deleteBtn.AddCSSClass("flat")
	deleteBtn.ConnectClicked(func() {
		pop.Popdown()
		app.store.Delete(event.ID)
		app.refresh()
	})
	box.Append(deleteBtn)

	pop.SetChild(box)
	pop.Popup()
}

func (app *App) buildYearView() *gtk.Grid {
	grid := gtk.NewGrid()
	grid.SetRowHomogeneous(true)
	grid.SetColumnHomogeneous(true)
	grid.SetVExpand(true)
	grid.SetHExpand(true)
	grid.SetRowSpacing(8)
	grid.SetColumnSpacing(8)

	weekStart := app.config.WeekStart()
	year := app.selector.YearViewYear()

	for i, cells := range calendar.YearGrid(year, weekStart) {
		month := time.Month(i + 1)
		mini := app.createMiniMonth(year, month, cells, weekStart)
		grid.Attach(mini, i%4, i/4, 1, 1)
	}

	return grid
}

// createMiniMonth builds one day-numbers-only month for the year view.
func (app *App) createMiniMonth(year int, month time.Month, cells []calendar.Cell, weekStart time.Weekday) *gtk.Box {
	box := gtk.NewBox(gtk.OrientationVertical, 4)
	box.AddCSSClass("frame")
	box.SetMarginTop(4)
	box.SetMarginBottom(4)

	name := gtk.NewLabel(time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Format("January"))
	name.AddCSSClass("heading")
	box.Append(name)

	grid := gtk.NewGrid()
	grid.SetColumnHomogeneous(true)
	grid.SetHExpand(true)

	for i, letter := range dayNames(weekStart, true) {
		label := gtk.NewLabel(letter)
		label.AddCSSClass("dim-label")
		grid.Attach(label, i, 0, 1, 1)
	}

	today := time.Now()
	row := 1
	col := 0
	for _, cell := range cells {
		if cell.Blank() {
			grid.Attach(gtk.NewLabel(""), col, row, 1, 1)
		} else {
			day := gtk.NewLabel(strconv.Itoa(cell.Day))
			if calendar.SameDay(cell.Date, today) {
				day.AddCSSClass("accent")
			}
			grid.Attach(day, col, row, 1, 1)
		}
		col++
		if col > 6 {
			col = 0
			row++
		}
	}

	box.Append(grid)

	click := gtk.NewGestureClick()
	click.ConnectPressed(func(nPress int, x, y float64) {
		app.selector.SelectMonth(month)
		app.refresh()
	})
	box.AddController(click)

	return box
}

func (app *App) showEventDialog() {
	// Only one dialog instance ever exists; opening a mode tears down any
	// dialog already on screen.
	if app.eventDialog != nil {
		app.eventDialog.Destroy()
		app.eventDialog = nil
	}

	editing := app.dialogs.Mode() == view.DialogEditing
	draft := app.dialogs.Draft()

	dialog := gtk.NewDialog()
	if editing {
		dialog.SetTitle("Edit Event")
	} else {
		dialog.SetTitle("Add New Event")
	}
	dialog.SetTransientFor(&app.window.Window)
	dialog.SetModal(true)
	dialog.SetDefaultSize(420, 380)
	app.eventDialog = dialog

	content := dialog.ContentArea()
	content.SetMarginTop(12)
	content.SetMarginBottom(12)
	content.SetMarginStart(12)
	content.SetMarginEnd(12)
	content.SetSpacing(8)

	titleLabel := gtk.NewLabel("Title:")
	titleLabel.SetXAlign(0)
	content.Append(titleLabel)

	titleEntry := gtk.NewEntry()
	titleEntry.SetText(draft.Title)
	titleEntry.SetPlaceholderText("Add title")
	content.Append(titleEntry)

	descLabel := gtk.NewLabel("Description:")
	descLabel.SetXAlign(0)
	content.Append(descLabel)

	descEntry := gtk.NewEntry()
	descEntry.SetText(draft.Description)
	descEntry.SetPlaceholderText("Add description")
	content.Append(descEntry)

	dateLabel := gtk.NewLabel("Date (DD/MM/YYYY):")
	dateLabel.SetXAlign(0)
	content.Append(dateLabel)

	dateEntry := gtk.NewEntry()
	dateEntry.SetText(draft.Date.Format("02/01/2006"))
	dateEntry.SetPlaceholderText("DD/MM/YYYY")
	content.Append(dateEntry)

	timeBox := gtk.NewBox(gtk.OrientationHorizontal, 8)

	startEntry := gtk.NewEntry()
	startEntry.SetText(draft.StartTime)
	startEntry.SetWidthChars(8)
	timeBox.Append(startEntry)

	timeBox.Append(gtk.NewLabel("to"))

	endEntry := gtk.NewEntry()
	endEntry.SetText(draft.EndTime)
	endEntry.SetWidthChars(8)
	timeBox.Append(endEntry)

	content.Append(timeBox)

	colorLabel := gtk.NewLabel("Color:")
	colorLabel.SetXAlign(0)
	content.Append(colorLabel)

	colorCombo := gtk.NewComboBoxText()
	palette := calendar.Palette()
	for i, id := range palette {
		colorCombo.AppendText(strings.ToUpper(id[:1]) + id[1:])
		if id == draft.Color {
			colorCombo.SetActive(i)
		}
	}
	if colorCombo.Active() < 0 {
		colorCombo.SetActive(0)
	}
	content.Append(colorCombo)

	// Inline validation message; filled on a rejected submit
	errLabel := gtk.NewLabel("")
	errLabel.SetXAlign(0)
	errLabel.AddCSSClass("error")
	content.Append(errLabel)

	btnBox := gtk.NewBox(gtk.OrientationHorizontal, 8)
	btnBox.SetHAlign(gtk.AlignEnd)
	btnBox.SetMarginTop(12)

	if editing {
		deleteBtn := gtk.NewButtonWithLabel("Delete")
		deleteBtn.AddCSSClass("destructive-action")
		deleteBtn.ConnectClicked(func() {
			app.store.Delete(app.dialogs.EditingID())
			app.dialogs.Cancel()
			dialog.Close()
			app.refresh()
		})
		btnBox.Append(deleteBtn)
	}

	cancelBtn := gtk.NewButtonWithLabel("Cancel")
	cancelBtn.ConnectClicked(func() {
		app.dialogs.Cancel()
		dialog.Close()
	})
	btnBox.Append(cancelBtn)

	saveBtn := gtk.NewButtonWithLabel("Save")
	saveBtn.AddCSSClass("suggested-action")
	saveBtn.ConnectClicked(func() {
		updated := app.dialogs.Draft()
		updated.Title = titleEntry.Text()
		updated.Description = descEntry.Text()
		updated.StartTime = startEntry.Text()
		updated.EndTime = endEntry.Text()
		if idx := colorCombo.Active(); idx >= 0 && int(idx) < len(palette) {
			updated.Color = palette[idx]
		}
		// An unparseable date keeps the draft's previous one
		if date, err := time.ParseInLocation("02/01/2006", dateEntry.Text(), time.Local); err == nil {
			updated.Date = calendar.DateOnly(date)
		}
		app.dialogs.SetDraft(updated)

		if err := app.dialogs.Submit(); err != nil {
			errLabel.SetText(err.Error())
			return
		}
		dialog.Close()
		app.refresh()
	})
	btnBox.Append(saveBtn)

	content.Append(btnBox)

	// Closing via the window manager counts as cancel. After a submit the
	// controller is already closed and this is a harmless no-op.
	dialog.ConnectDestroy(func() {
		if app.eventDialog == dialog {
			app.eventDialog = nil
		}
		app.dialogs.Cancel()
	})

	dialog.Show()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}
