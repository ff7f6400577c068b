package helpers

import (
	"strings"
	"time"
)

// DefaultSimpleLayout and DefaultClockLayout are the layouts used when the
// caller does not provide one.
const (
	DefaultSimpleLayout = "y-m-d"
	DefaultClockLayout  = "%Y-%m-%d %H:%M:%S"
)

// DateView is a date in one calendar plus everything the formatters need to
// render it. Weekday is the weekday of the instant, which is the same in both
// calendars.
type DateView struct {
	Year, Month, Day     int
	Weekday              time.Weekday
	Hour, Minute, Second int
	Calendar             Calendar
}

// FormatSimple renders v with the single-letter layout language:
//
//	y year, m month, d day, M month name,
//	w Nepali weekday name, W English weekday name.
//
// Numbers are not padded. Any other rune is copied as is.
func FormatSimple(v DateView, layout string, unicode bool) string {
	var out strings.Builder
	for _, r := range layout {
		switch r {
		case 'y':
			out.WriteString(FormatNumber(v.Year, unicode))
		case 'm':
			out.WriteString(FormatNumber(v.Month, unicode))
		case 'd':
			out.WriteString(FormatNumber(v.Day, unicode))
		case 'M':
			out.WriteString(MonthName(v.Month, v.Calendar, unicode))
		case 'w':
			out.WriteString(WeekdayName(v.Weekday, CalendarBikram, unicode))
		case 'W':
			out.WriteString(WeekdayName(v.Weekday, CalendarGregorian, unicode))
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}

// FormatStrftime renders v with strftime-style directives. Unknown directives
// are copied with their percent sign, as is a trailing lone percent.
func FormatStrftime(v DateView, layout string, unicode bool) string {
	num := func(n int) string { return FormatNumber(n, unicode) }
	pad := func(n int) string { return FormatPadded(n, unicode) }

	var out strings.Builder
	runes := []rune(layout)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' || i+1 >= len(runes) {
			out.WriteRune(runes[i])
			continue
		}

		i++
		switch runes[i] {
		case 'Y':
			out.WriteString(num(v.Year))
		case 'y':
			out.WriteString(pad(v.Year % 100))
		case 'm':
			out.WriteString(pad(v.Month))
		case 'd':
			out.WriteString(pad(v.Day))
		case 'B':
			out.WriteString(MonthName(v.Month, v.Calendar, unicode))
		case 'b':
			out.WriteString(MonthNameAbbr(v.Month, v.Calendar, unicode))
		case 'A':
			out.WriteString(WeekdayName(v.Weekday, v.Calendar, unicode))
		case 'a':
			out.WriteString(WeekdayNameAbbr(v.Weekday, v.Calendar, unicode))
		case 'H':
			out.WriteString(pad(v.Hour))
		case 'I':
			out.WriteString(pad(hour12(v.Hour)))
		case 'M':
			out.WriteString(pad(v.Minute))
		case 'S':
			out.WriteString(pad(v.Second))
		case 'p':
			out.WriteString(meridiem(v.Hour, unicode))
		case 'c':
			out.WriteString(WeekdayNameAbbr(v.Weekday, v.Calendar, unicode) + " ")
			out.WriteString(MonthNameAbbr(v.Month, v.Calendar, unicode) + " ")
			out.WriteString(pad(v.Day) + " ")
			out.WriteString(pad(v.Hour) + ":" + pad(v.Minute) + ":" + pad(v.Second) + " ")
			out.WriteString(num(v.Year))
		case 'x':
			out.WriteString(pad(v.Month) + "/" + pad(v.Day) + "/" + pad(v.Year%100))
		case 'X':
			out.WriteString(pad(v.Hour) + ":" + pad(v.Minute) + ":" + pad(v.Second))
		case '%':
			out.WriteRune('%')
		default:
			out.WriteRune('%')
			out.WriteRune(runes[i])
		}
	}
	return out.String()
}

func hour12(h int) int {
	if h == 0 || h == 12 {
		return 12
	}
	return h % 12
}

func meridiem(h int, unicode bool) string {
	switch {
	case unicode && h < 12:
		return "पूर्वाह्न"
	case unicode:
		return "अपराह्न"
	case h < 12:
		return "AM"
	default:
		return "PM"
	}
}
