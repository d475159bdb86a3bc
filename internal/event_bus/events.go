package event_bus

import "time"

const (
	DialogHiddenType         EventType = "dialog.hidden"
	CalendarEventChangedType EventType = "calendar.event.changed"
	MarkToggledType          EventType = "mark.toggled"
)

// DialogHidden is published once a dialog has finished closing.
type DialogHidden struct {
	Name string
}

type CalendarChange string

const (
	CalendarEventCreated CalendarChange = "created"
	CalendarEventUpdated CalendarChange = "updated"
	CalendarEventDeleted CalendarChange = "deleted"
)

type CalendarEventChanged struct {
	ID     string
	Title  string
	Change CalendarChange
}

// MarkToggled reports how a mark request ended. Message is set only when the button was rolled back.
type MarkToggled struct {
	ButtonID string
	Action   string
	Marked   bool
	Failed   bool
	Message  string
	Took     time.Duration
}
