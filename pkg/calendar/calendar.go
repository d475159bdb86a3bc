package calendar

import (
	"errors"
	"slices"
	"time"
)

var (
	// ErrStaleReference is returned when an update or delete targets an id the widget no longer holds.
	ErrStaleReference = errors.New("calendar event no longer exists")
	// ErrEventNotFound is returned when an event the user activated cannot be looked up.
	ErrEventNotFound = errors.New("calendar event not found")
	ErrInvalidEvent  = errors.New("invalid calendar event")
	ErrUnknownTheme  = errors.New("unknown calendar theme")
	ErrInvalidRange  = errors.New("invalid date range")
)

const DefaultTheme = "event-primary"

// Themes is the fixed palette an event can be tagged with.
var Themes = []string{
	"event-primary",
	"event-success",
	"event-info",
	"event-warning",
	"event-danger",
	"event-pink",
	"event-primary-dim",
	"event-success-dim",
	"event-info-dim",
	"event-warning-dim",
	"event-danger-dim",
	"event-pink-dim",
}

func IsTheme(theme string) bool {
	return slices.Contains(Themes, theme)
}

// WidgetEvent is an event as held by the calendar widget.
type WidgetEvent struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	AllDay      bool
	ClassNames  []string
}

// WidgetEventInput is what the widget accepts when adding an event. Start and End are date or
// date-time strings, parsed by the widget.
type WidgetEventInput struct {
	ID          string
	Title       string
	Description string
	Start       string
	End         string
	ClassName   string
}

// FormFields is the flat field set of the add and edit forms.
type FormFields struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	StartTime   string `json:"startTime"`
	EndDate     string `json:"endDate"`
	EndTime     string `json:"endTime"`
	Theme       string `json:"theme"`
}

func BlankForm(theme string) FormFields {
	return FormFields{Theme: theme}
}

// EditForm is the edit form bound to the event it was opened for.
type EditForm struct {
	ID string `json:"id"`
	FormFields
}

// Preview is the read-only surface shown when an event is activated.
type Preview struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	HasDescription bool   `json:"hasDescription"`
	Start          string `json:"start"`
	End            string `json:"end"`
	HeaderClass    string `json:"headerClass"`
}

// DayCell is the extra content rendered into one day of the grid.
type DayCell struct {
	Date     time.Time `json:"date"`
	DayLabel string    `json:"dayLabel"`
	Weekday  string    `json:"weekday"`
	TaskURL  string    `json:"taskUrl"`
}
