package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	bhadra14 = DateView{
		Year: 2082, Month: 5, Day: 14,
		Weekday: time.Saturday,
		Hour:    11, Minute: 26, Second: 30,
		Calendar: CalendarBikram,
	}
	august30 = DateView{
		Year: 2025, Month: 8, Day: 30,
		Weekday: time.Saturday,
		Hour:    11, Minute: 26, Second: 30,
		Calendar: CalendarGregorian,
	}
)

func TestFormatSimple(t *testing.T) {
	tests := []struct {
		name     string
		view     DateView
		layout   string
		unicode  bool
		expected string
	}{
		{"default layout", bhadra14, DefaultSimpleLayout, false, "2082-5-14"},
		{"month and english weekday", bhadra14, "y-M-d, W", false, "2082-Bhadra-14, Saturday"},
		{"romanized weekday", bhadra14, "w", false, "Shanivar"},
		{"devanagari", bhadra14, "d M, y, w", true, "१४ भाद्रपद, २०८२, शनिबार"},
		{"gregorian month", august30, "d M y", false, "30 August 2025"},
		{"gregorian month in devanagari", august30, "M", true, "अगस्ट"},
		{"literal runes are kept", bhadra14, "गते d", false, "गते 14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSimple(tt.view, tt.layout, tt.unicode))
		})
	}
}

func TestFormatStrftime(t *testing.T) {
	midnight := august30
	midnight.Hour = 0
	evening := august30
	evening.Hour = 18

	tests := []struct {
		name     string
		view     DateView
		layout   string
		unicode  bool
		expected string
	}{
		{"default layout", august30, DefaultClockLayout, false, "2025-08-30 11:26:30"},
		{"locale date and time", august30, "%c", false, "Sat Aug 30 11:26:30 2025"},
		{"bikram in devanagari", bhadra14, "%A, %d %B %Y, %I:%M:%S %p", true, "शनिबार, १४ भाद्रपद २०८२, ११:२६:३० पूर्वाह्न"},
		{"bikram abbreviations", bhadra14, "%a %b", false, "Shani Bha"},
		{"bikram devanagari abbreviations", bhadra14, "%a %b", true, "शनि भा."},
		{"locale date", bhadra14, "%x", false, "05/14/82"},
		{"locale time", bhadra14, "%X", false, "11:26:30"},
		{"two digit year", august30, "%y", false, "25"},
		{"midnight is 12 AM", midnight, "%I %p", false, "12 AM"},
		{"evening", evening, "%I %p", false, "06 PM"},
		{"evening in devanagari", evening, "%p", true, "अपराह्न"},
		{"literal percent", august30, "100%%", false, "100%"},
		{"unknown directive is kept", august30, "%Q", false, "%Q"},
		{"trailing percent", august30, "%Y%", false, "2025%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatStrftime(tt.view, tt.layout, tt.unicode))
		})
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Baisakh", MonthName(1, CalendarBikram, false))
	assert.Equal(t, "चैत्र", MonthName(12, CalendarBikram, true))
	assert.Equal(t, "December", MonthName(12, CalendarGregorian, false))
	assert.Equal(t, "Dec", MonthNameAbbr(12, CalendarGregorian, true))
	assert.Empty(t, MonthName(13, CalendarBikram, false))
	assert.Empty(t, MonthNameAbbr(0, CalendarBikram, false))

	assert.Equal(t, "Sunday", WeekdayName(time.Sunday, CalendarGregorian, false))
	assert.Equal(t, "Ravivar", WeekdayName(time.Sunday, CalendarBikram, false))
	assert.Equal(t, "आइतबार", WeekdayName(time.Sunday, CalendarGregorian, true))
	assert.Equal(t, "Wed", WeekdayNameAbbr(time.Wednesday, CalendarGregorian, false))
}
