// Package timefmt converts between the form representations of times and dates and the labels
// shown to the user: 12-hour clock strings and the Jalali (secondary) calendar day numbers.
package timefmt

import (
	"fmt"
	"regexp"
	"strconv"
)

const (
	BeforeNoon = " قبل از ظهر"
	AfterNoon  = " بعد از ظهر"
)

var time24Pattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)(:[0-5]\d)?$`)

// ToDisplayTime renders "HH:MM" or "HH:MM:SS" as a 12-hour label with a before/after noon suffix.
// Anything that is not a strict 24-hour time is returned unchanged.
func ToDisplayTime(time24 string) string {
	m := time24Pattern.FindStringSubmatch(time24)
	if m == nil {
		return time24
	}

	hour, _ := strconv.Atoi(m[1])
	suffix := AfterNoon
	if hour < 12 {
		suffix = BeforeNoon
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}

	return fmt.Sprintf("%d:%s%s", display, m[2], suffix)
}
