package calendar

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Widget is the calendar widget the editor drives. Its event collection is the only copy of the
// calendar state.
type Widget interface {
	Render() error
	AddEvent(input WidgetEventInput) (WidgetEvent, error)
	GetEventById(id string) (WidgetEvent, bool)
	RemoveEvent(id string) bool
	Events() []WidgetEvent
}

var inputLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
}

// MemoryWidget keeps events in process, in the widget's UTC time zone.
type MemoryWidget struct {
	mu      sync.RWMutex
	items   map[string]WidgetEvent
	renders int
}

func NewMemoryWidget() *MemoryWidget {
	return &MemoryWidget{
		items: make(map[string]WidgetEvent),
	}
}

func (w *MemoryWidget) Render() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.renders++
	log.Tracef("calendar widget rendered %d event(s)", len(w.items))
	return nil
}

func (w *MemoryWidget) Renders() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.renders
}

func (w *MemoryWidget) AddEvent(input WidgetEventInput) (WidgetEvent, error) {
	if input.ID == "" {
		return WidgetEvent{}, fmt.Errorf("%w: missing id", ErrInvalidEvent)
	}
	start, allDay, err := parseInstant(input.Start)
	if err != nil {
		return WidgetEvent{}, fmt.Errorf("%w: start: %v", ErrInvalidEvent, err)
	}
	var end time.Time
	if input.End != "" {
		end, _, err = parseInstant(input.End)
		if err != nil {
			return WidgetEvent{}, fmt.Errorf("%w: end: %v", ErrInvalidEvent, err)
		}
	}

	event := WidgetEvent{
		ID:          input.ID,
		Title:       input.Title,
		Description: input.Description,
		Start:       start,
		End:         end,
		AllDay:      allDay,
	}
	if input.ClassName != "" {
		event.ClassNames = []string{input.ClassName}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.items[event.ID] = event
	return event, nil
}

func parseInstant(value string) (time.Time, bool, error) {
	if value == "" {
		return time.Time{}, false, fmt.Errorf("empty date")
	}
	if !strings.Contains(value, "T") {
		t, err := time.ParseInLocation(dateLayout, value, time.UTC)
		return t, true, err
	}
	var lastErr error
	for _, layout := range inputLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), false, nil
		}
		lastErr = err
	}
	return time.Time{}, false, lastErr
}

func (w *MemoryWidget) GetEventById(id string) (WidgetEvent, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	event, ok := w.items[id]
	return event, ok
}

func (w *MemoryWidget) RemoveEvent(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.items[id]; !ok {
		return false
	}
	delete(w.items, id)
	return true
}

// Events returns all events ordered by start.
func (w *MemoryWidget) Events() []WidgetEvent {
	w.mu.RLock()
	defer w.mu.RUnlock()

	events := make([]WidgetEvent, 0, len(w.items))
	for _, event := range w.items {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Start.Equal(events[j].Start) {
			return events[i].ID < events[j].ID
		}
		return events[i].Start.Before(events[j].Start)
	})
	return events
}
