package app

import (
	"net/http"

	"github.com/reservedesk/reserve/internal/config"
	"github.com/reservedesk/reserve/internal/event_bus"
	"github.com/reservedesk/reserve/internal/utils"
	"github.com/reservedesk/reserve/pkg/calendar"
	"github.com/reservedesk/reserve/pkg/mark"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	CalendarWidget  calendar.Widget
	CalendarDialogs calendar.Dialogs
	CalendarEditor  *calendar.Editor
	CalendarHandler *calendar.Handler

	MarkToggler  mark.Toggler
	MarkRegistry *mark.Registry
	MarkHandler  *mark.Handler

	unsubscribe []func()
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(cfg config.Application, clock utils.Clock, toggler mark.Toggler) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = clock

	deps.CalendarWidget = calendar.NewMemoryWidget()
	deps.CalendarDialogs = calendar.NewModals(deps.EventBus)
	deps.CalendarEditor = calendar.NewEditor(
		deps.CalendarWidget,
		deps.CalendarDialogs,
		calendar.NewPopovers(),
		deps.EventBus,
		calendar.Options{
			ThemePrefix:    cfg.Calendar.ThemePrefix,
			DefaultTheme:   cfg.Calendar.DefaultTheme,
			IdPrefix:       cfg.Calendar.IdPrefix,
			TaskCreatePath: cfg.Calendar.TaskCreatePath,
		},
	)
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarEditor, deps.Clock)

	deps.MarkToggler = toggler
	deps.MarkRegistry = mark.NewRegistry(cfg.Mark.BaseURL, deps.MarkToggler, deps.Clock, deps.EventBus, mark.Options{
		Timeout:         cfg.Mark.Timeout,
		MessageDuration: cfg.Mark.MessageDuration,
	})
	deps.MarkHandler = mark.NewHandler(deps.MarkRegistry)

	deps.unsubscribe = append(deps.unsubscribe,
		event_bus.SubscribeTyped(deps.EventBus, event_bus.CalendarEventChangedType, logCalendarChange),
		event_bus.SubscribeTyped(deps.EventBus, event_bus.MarkToggledType, logMarkToggle),
	)

	return deps
}

// NewMarkToggler is the toggler used outside of tests. Its client carries no timeout of its own,
// each request is bounded by mark.timeout.
func NewMarkToggler() mark.Toggler {
	return mark.NewHTTPToggler(&http.Client{})
}

func (d *Dependencies) Close() {
	for _, unsubscribe := range d.unsubscribe {
		unsubscribe()
	}
	d.unsubscribe = nil
	d.CalendarEditor.Close()
}

func logCalendarChange(e event_bus.EventT[event_bus.CalendarEventChanged]) error {
	log.WithFields(log.Fields{
		"eventId": e.Data.ID,
		"change":  e.Data.Change,
	}).Infof("calendar event %q %s", e.Data.Title, e.Data.Change)
	return nil
}

func logMarkToggle(e event_bus.EventT[event_bus.MarkToggled]) error {
	entry := log.WithFields(log.Fields{
		"buttonId": e.Data.ButtonID,
		"marked":   e.Data.Marked,
		"took":     e.Data.Took,
	})
	if e.Data.Failed {
		entry.Warnf("mark toggle rolled back: %s", e.Data.Message)
		return nil
	}
	entry.Infof("mark toggle %s", e.Data.Action)
	return nil
}
