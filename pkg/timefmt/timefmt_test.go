package timefmt

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDisplayTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"00:00", "12:00" + BeforeNoon},
		{"00:45:10", "12:45" + BeforeNoon},
		{"09:05", "9:05" + BeforeNoon},
		{"11:59", "11:59" + BeforeNoon},
		{"12:00", "12:00" + AfterNoon},
		{"13:30", "1:30" + AfterNoon},
		{"23:59:00", "11:59" + AfterNoon},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ToDisplayTime(tt.in))
		})
	}
}

// Malformed input is passed through untouched.
func TestToDisplayTime_MalformedPassesThrough(t *testing.T) {
	for _, in := range []string{"", "9am", "25:00", "9:30", "12:60", "12:30:61", " 12:30", "12:30 "} {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, in, ToDisplayTime(in))
		})
	}
}

func TestToJalali(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want JalaliDate
	}{
		{"nowruz 1403", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), JalaliDate{1403, 1, 1}},
		{"esfand 1402", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), JalaliDate{1402, 12, 11}},
		{"mordad 1403", time.Date(2024, 8, 2, 23, 59, 0, 0, time.UTC), JalaliDate{1403, 5, 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToJalali(tt.in))
		})
	}
}

func TestSecondaryDay_KeepsPersianGlyphs(t *testing.T) {
	assert.Equal(t, "۱۲", SecondaryDay(time.Date(2024, 8, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "۰۱", SecondaryDay(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)))
}

func TestSecondaryDate(t *testing.T) {
	assert.Equal(t, "۱۴۰۳/۰۱/۰۱", SecondaryDate(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)))
}

func TestSecondaryWeekday(t *testing.T) {
	assert.Equal(t, "چهارشنبه", SecondaryWeekday(time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "جمعه", SecondaryWeekday(time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC)))
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "فروردین", MonthName(1))
	assert.Equal(t, "اسفند", MonthName(12))
	assert.Equal(t, "", MonthName(0))
	assert.Equal(t, "", MonthName(13))
}

func TestPreviewDate(t *testing.T) {
	day := time.Date(2024, 8, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "12 مرداد 1403", PreviewDate(day, ""))
	assert.Equal(t, "12 مرداد 1403 - 1:30"+AfterNoon, PreviewDate(day, "13:30:00"))
}

func TestTaskDeadlineURL(t *testing.T) {
	link := TaskDeadlineURL("/task/create/", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/task/create/", u.Path)
	assert.Equal(t, "۱۴۰۳/۰۱/۰۱", u.Query().Get("deadline"))
	assert.NotContains(t, u.RawQuery, "/")
}
