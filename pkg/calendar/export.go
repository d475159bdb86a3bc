package calendar

import (
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

const productId = "-//reservedesk//reserve calendar//EN"

// ExportICS serialises the widget's events as an iCalendar document. The theme of an event is
// carried as its category.
func ExportICS(events []WidgetEvent, classPrefix string, now time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productId)

	for _, e := range events {
		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(now.UTC())
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}

		end := e.End
		if end.IsZero() {
			end = e.Start
		}
		if e.AllDay {
			ve.SetAllDayStartAt(e.Start)
			// DTEND of an all-day event is exclusive.
			if !end.After(e.Start) {
				end = e.Start.AddDate(0, 0, 1)
			}
			ve.SetAllDayEndAt(end)
		} else {
			ve.SetStartAt(e.Start)
			ve.SetEndAt(end)
		}

		if len(e.ClassNames) > 0 {
			ve.SetProperty(ical.ComponentPropertyCategories, strings.TrimPrefix(e.ClassNames[0], classPrefix))
		}
	}

	return cal.Serialize()
}

func (e *Editor) ExportICS(now time.Time) string {
	return ExportICS(e.widget.Events(), e.opts.ThemePrefix, now)
}
