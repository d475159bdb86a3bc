package calendar

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/reservedesk/reserve/internal/event_bus"
	"github.com/reservedesk/reserve/pkg/timefmt"
	log "github.com/sirupsen/logrus"
)

// maxDayCells bounds a single DayCells request to a little over a year.
const maxDayCells = 366

type Options struct {
	ThemePrefix    string
	DefaultTheme   string
	IdPrefix       string
	TaskCreatePath string
}

func DefaultOptions() Options {
	return Options{
		ThemePrefix:    "fc-",
		DefaultTheme:   DefaultTheme,
		IdPrefix:       "added-event-id-",
		TaskCreatePath: "/task/create/",
	}
}

// Editor drives the create, preview, update and delete flows of the calendar. It keeps the
// state of its forms; the events themselves live only in the widget.
type Editor struct {
	mu       sync.Mutex
	widget   Widget
	dialogs  Dialogs
	popovers *Popovers
	bus      *event_bus.EventBus
	opts     Options
	newId    func() string

	addForm  FormFields
	editForm EditForm
	preview  Preview

	unsubscribe func()
}

func NewEditor(widget Widget, dialogs Dialogs, popovers *Popovers, bus *event_bus.EventBus, opts Options) *Editor {
	e := &Editor{
		widget:   widget,
		dialogs:  dialogs,
		popovers: popovers,
		bus:      bus,
		opts:     opts,
		addForm:  BlankForm(opts.DefaultTheme),
	}
	e.newId = func() string {
		return opts.IdPrefix + strconv.Itoa(rand.IntN(9999999))
	}
	e.unsubscribe = event_bus.SubscribeTyped[event_bus.DialogHidden](bus, event_bus.DialogHiddenType, e.onDialogHidden)
	return e
}

// Start renders the widget.
func (e *Editor) Start() error {
	return e.widget.Render()
}

// Close detaches the editor from the dialog lifecycle events.
func (e *Editor) Close() {
	e.unsubscribe()
}

func (e *Editor) onDialogHidden(ev event_bus.EventT[event_bus.DialogHidden]) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch ev.Data.Name {
	case e.dialogs.Add.Name():
		log.Trace("add dialog hidden, resetting add form")
		e.addForm = BlankForm(e.opts.DefaultTheme)
	case e.dialogs.Preview.Name():
		e.preview.HeaderClass = ""
	}
	return nil
}

// OpenAdd shows the add dialog and returns the add form as it currently stands.
func (e *Editor) OpenAdd() FormFields {
	e.dialogs.Add.Show()
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addForm
}

// OpenEdit switches from the preview to the edit dialog of the selected event.
func (e *Editor) OpenEdit() EditForm {
	e.dialogs.Preview.Hide()
	e.dialogs.Edit.Show()
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editForm
}

func (e *Editor) Create(ctx context.Context, fields FormFields) (WidgetEvent, error) {
	e.mu.Lock()
	if fields.Theme == "" {
		fields.Theme = e.opts.DefaultTheme
	}
	if !IsTheme(fields.Theme) {
		e.mu.Unlock()
		return WidgetEvent{}, fmt.Errorf("%w: %q", ErrUnknownTheme, fields.Theme)
	}
	e.addForm = fields

	event, err := e.widget.AddEvent(ToWidgetEvent(e.newId(), fields, e.opts.ThemePrefix))
	e.mu.Unlock()
	if err != nil {
		return WidgetEvent{}, fmt.Errorf("failed to add event: %w", err)
	}
	log.Debugf("calendar event %s created", event.ID)

	e.dialogs.Add.Hide()
	e.publish(ctx, event, event_bus.CalendarEventCreated)
	return event, nil
}

// Select opens the preview of an event the user activated and binds the edit form to it.
func (e *Editor) Select(ctx context.Context, id string) (EditForm, Preview, error) {
	e.mu.Lock()
	event, ok := e.widget.GetEventById(id)
	if !ok {
		e.mu.Unlock()
		err := fmt.Errorf("%w: %s", ErrEventNotFound, id)
		log.Error(err)
		return EditForm{}, Preview{}, err
	}

	fields := FromWidgetEvent(event, e.opts.ThemePrefix)
	e.editForm = EditForm{ID: event.ID, FormFields: fields}

	end := event.End
	if end.IsZero() {
		end = event.Start
	}
	e.preview = Preview{
		Title:          fields.Title,
		Description:    fields.Description,
		HasDescription: fields.Description != "",
		Start:          timefmt.PreviewDate(event.Start.UTC(), fields.StartTime),
		End:            timefmt.PreviewDate(end.UTC(), fields.EndTime),
		HeaderClass:    e.opts.ThemePrefix + fields.Theme,
	}
	form, preview := e.editForm, e.preview
	e.mu.Unlock()

	e.popovers.Clear()
	e.dialogs.Preview.Show()
	return form, preview, nil
}

// Update replaces the event bound to form.ID with the edited fields, keeping its id. A stale id
// leaves the calendar untouched.
func (e *Editor) Update(ctx context.Context, form EditForm) (WidgetEvent, error) {
	e.mu.Lock()
	if form.Theme == "" {
		form.Theme = e.opts.DefaultTheme
	}
	if !IsTheme(form.Theme) {
		e.mu.Unlock()
		return WidgetEvent{}, fmt.Errorf("%w: %q", ErrUnknownTheme, form.Theme)
	}
	previous, ok := e.widget.GetEventById(form.ID)
	if !ok {
		e.mu.Unlock()
		return WidgetEvent{}, fmt.Errorf("%w: %s", ErrStaleReference, form.ID)
	}

	e.widget.RemoveEvent(form.ID)
	event, err := e.widget.AddEvent(ToWidgetEvent(form.ID, form.FormFields, e.opts.ThemePrefix))
	if err != nil {
		if _, restoreErr := e.widget.AddEvent(InputOf(previous)); restoreErr != nil {
			log.Errorf("failed to restore event %s: %v", previous.ID, restoreErr)
		}
		e.mu.Unlock()
		return WidgetEvent{}, fmt.Errorf("failed to update event: %w", err)
	}
	e.editForm = form
	e.mu.Unlock()
	log.Debugf("calendar event %s updated", event.ID)

	e.dialogs.Edit.Hide()
	e.publish(ctx, event, event_bus.CalendarEventUpdated)
	return event, nil
}

// Delete removes the event with the given id. Deleting an id that is already gone reports
// ErrStaleReference and changes nothing.
func (e *Editor) Delete(ctx context.Context, id string) error {
	e.mu.Lock()
	event, ok := e.widget.GetEventById(id)
	if !ok {
		e.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrStaleReference, id)
	}
	e.widget.RemoveEvent(id)
	e.mu.Unlock()
	log.Debugf("calendar event %s deleted", id)

	e.publish(ctx, event, event_bus.CalendarEventDeleted)
	return nil
}

func (e *Editor) MouseEnter(id string) {
	event, ok := e.widget.GetEventById(id)
	if !ok {
		e.popovers.Leave()
		return
	}
	e.popovers.Enter(event)
}

func (e *Editor) MouseLeave() {
	e.popovers.Leave()
}

func (e *Editor) DragStart() {
	e.popovers.Clear()
}

func (e *Editor) Popovers() []Popover {
	return e.popovers.Open()
}

func (e *Editor) AddForm() FormFields {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addForm
}

func (e *Editor) EditForm() EditForm {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editForm
}

func (e *Editor) Preview() Preview {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.preview
}

func (e *Editor) Events() []WidgetEvent {
	return e.widget.Events()
}

// DayCells describes the days in [from, to): the Jalali day label, the weekday name and a link
// that opens task creation with that day as deadline.
func (e *Editor) DayCells(from, to time.Time) ([]DayCell, error) {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	if !to.After(from) {
		return nil, fmt.Errorf("%w: %s is not after %s", ErrInvalidRange, to.Format(dateLayout), from.Format(dateLayout))
	}
	if to.Sub(from) > maxDayCells*24*time.Hour {
		return nil, fmt.Errorf("%w: more than %d days", ErrInvalidRange, maxDayCells)
	}

	cells := make([]DayCell, 0, int(to.Sub(from).Hours()/24))
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		cells = append(cells, DayCell{
			Date:     day,
			DayLabel: timefmt.SecondaryDay(day),
			Weekday:  timefmt.SecondaryWeekday(day),
			TaskURL:  timefmt.TaskDeadlineURL(e.opts.TaskCreatePath, day),
		})
	}
	return cells, nil
}

func (e *Editor) publish(ctx context.Context, event WidgetEvent, change event_bus.CalendarChange) {
	err := e.bus.Publish(event_bus.NewEvent(ctx, event_bus.CalendarEventChangedType, event_bus.CalendarEventChanged{
		ID:     event.ID,
		Title:  event.Title,
		Change: change,
	}))
	if err != nil {
		log.Errorf("failed to publish calendar change for %s: %v", event.ID, err)
	}
}
