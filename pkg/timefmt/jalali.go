package timefmt

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// Weekday names as the dashboard templates spell them.
var weekdayNames = map[time.Weekday]string{
	time.Saturday:  "شنبه",
	time.Sunday:    "یکشنبه",
	time.Monday:    "دوشنبه",
	time.Tuesday:   "سه‌شنبه",
	time.Wednesday: "چهارشنبه",
	time.Thursday:  "پنج‌شنبه",
	time.Friday:    "جمعه",
}

var persianDigits = strings.NewReplacer(
	"0", "۰", "1", "۱", "2", "۲", "3", "۳", "4", "۴",
	"5", "۵", "6", "۶", "7", "۷", "8", "۸", "9", "۹",
)

// JalaliDate is a calendar day in the Jalali calendar.
type JalaliDate struct {
	Year  int
	Month int
	Day   int
}

// ToJalali converts the calendar day of t (in t's own location) to the Jalali calendar.
func ToJalali(t time.Time) JalaliDate {
	day := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
	p := ptime.New(day)
	return JalaliDate{Year: p.Year(), Month: int(p.Month()), Day: p.Day()}
}

// PersianDigits replaces Latin digits with Persian numeral glyphs.
func PersianDigits(s string) string {
	return persianDigits.Replace(s)
}

// SecondaryDay is the two digit Jalali day of month, in Persian glyphs.
func SecondaryDay(t time.Time) string {
	return PersianDigits(fmt.Sprintf("%02d", ToJalali(t).Day))
}

// SecondaryDate is the full Jalali date as yyyy/mm/dd in Persian glyphs.
func SecondaryDate(t time.Time) string {
	j := ToJalali(t)
	return PersianDigits(fmt.Sprintf("%04d/%02d/%02d", j.Year, j.Month, j.Day))
}

// SecondaryWeekday is the Persian name of the weekday of t.
func SecondaryWeekday(t time.Time) string {
	return weekdayNames[t.Weekday()]
}

// MonthName returns the Jalali month name for month 1..12, or "" when out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return ptime.Month(month).String()
}

// PreviewDate renders a day as "dd <month> yyyy" in the Jalali calendar, followed by the
// 12-hour time when time24 is not empty.
func PreviewDate(t time.Time, time24 string) string {
	j := ToJalali(t)
	label := fmt.Sprintf("%02d %s %d", j.Day, ptime.Month(j.Month).String(), j.Year)
	if time24 != "" {
		label += " - " + ToDisplayTime(time24)
	}
	return label
}

// TaskDeadlineURL links the task creation page with the given day preselected as deadline.
func TaskDeadlineURL(path string, t time.Time) string {
	return path + "?deadline=" + url.QueryEscape(SecondaryDate(t))
}
