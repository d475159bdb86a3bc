package calendar

import (
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
	midnight   = "00:00:00"
)

// ToWidgetEvent builds the widget input for the given form fields. A time, when present, is
// appended to its date as "T<time>Z". The trailing Z is not a conversion to UTC; the widget runs
// in UTC so the marker only keeps the string parseable.
func ToWidgetEvent(id string, fields FormFields, classPrefix string) WidgetEventInput {
	return WidgetEventInput{
		ID:          id,
		Title:       fields.Title,
		Description: fields.Description,
		Start:       joinDateTime(fields.StartDate, fields.StartTime),
		End:         joinDateTime(fields.EndDate, fields.EndTime),
		ClassName:   classPrefix + fields.Theme,
	}
}

func joinDateTime(date, clock string) string {
	if clock == "" {
		return date
	}
	return date + "T" + clock + "Z"
}

// FromWidgetEvent extracts the form fields of a widget event. Times at exactly midnight are left
// empty, an event without an end reuses its start.
func FromWidgetEvent(ev WidgetEvent, classPrefix string) FormFields {
	end := ev.End
	if end.IsZero() {
		end = ev.Start
	}

	theme := ""
	if len(ev.ClassNames) > 0 {
		theme = strings.TrimPrefix(ev.ClassNames[0], classPrefix)
	}

	return FormFields{
		Title:       ev.Title,
		Description: ev.Description,
		StartDate:   ev.Start.UTC().Format(dateLayout),
		StartTime:   timeOfDay(ev.Start),
		EndDate:     end.UTC().Format(dateLayout),
		EndTime:     timeOfDay(end),
		Theme:       theme,
	}
}

func timeOfDay(t time.Time) string {
	clock := t.UTC().Format(timeLayout)
	if clock == midnight {
		return ""
	}
	return clock
}

// InputOf rebuilds the exact widget input of an existing event, keeping a midnight start timed
// and a missing end missing.
func InputOf(ev WidgetEvent) WidgetEventInput {
	input := WidgetEventInput{
		ID:          ev.ID,
		Title:       ev.Title,
		Description: ev.Description,
		Start:       formatInstant(ev.Start, ev.AllDay),
	}
	if !ev.End.IsZero() {
		input.End = formatInstant(ev.End, ev.AllDay)
	}
	if len(ev.ClassNames) > 0 {
		input.ClassName = ev.ClassNames[0]
	}
	return input
}

func formatInstant(t time.Time, allDay bool) string {
	t = t.UTC()
	if allDay && t.Format(timeLayout) == midnight {
		return t.Format(dateLayout)
	}
	return t.Format(time.RFC3339)
}
