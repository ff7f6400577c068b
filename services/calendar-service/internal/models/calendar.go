package models

import (
	"time"

	"nepdate/shared/pkg/bikram"
)

// CalendarYear is one row of bs_calendar_years: the month lengths of a BS year
type CalendarYear struct {
	Year      int
	Months    [12]int // m1..m12
	TotalDays int
}

// Row returns the year in the layout bikram.NewTable expects.
func (y CalendarYear) Row() [13]int {
	var row [13]int
	copy(row[:12], y.Months[:])
	row[12] = y.TotalDays
	return row
}

// Direction names the way a conversion goes
type Direction string

const (
	ToBikram    Direction = "tobs"
	ToGregorian Direction = "toad"
)

// Conversion is the result of converting one date. Method is the strategy
// that served the BS side.
type Conversion struct {
	Direction Direction     `json:"direction"`
	Source    bikram.Date   `json:"source"`
	Result    bikram.Date   `json:"result"`
	Weekday   time.Weekday  `json:"weekday"`
	Method    bikram.Method `json:"method"`
}

// Bikram returns the BS side of the conversion.
func (c Conversion) Bikram() bikram.Date {
	if c.Direction == ToBikram {
		return c.Result
	}
	return c.Source
}

// Gregorian returns the Gregorian side of the conversion.
func (c Conversion) Gregorian() bikram.Date {
	if c.Direction == ToBikram {
		return c.Source
	}
	return c.Result
}

// MonthDay is one day of a BS month
type MonthDay struct {
	Bikram    bikram.Date
	Gregorian bikram.Date
	Weekday   time.Weekday
}

// TodaySummary describes the current day in both calendars
type TodaySummary struct {
	Gregorian   bikram.Date
	Bikram      bikram.Date
	Weekday     time.Weekday
	DaysInMonth int
	Method      bikram.Method
	Jalali      string
	Location    *time.Location
}
