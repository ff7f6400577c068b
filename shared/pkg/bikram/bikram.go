// Package bikram converts dates between the Gregorian calendar and Bikram
// Sambat (BS), the official calendar of Nepal.
//
// Years covered by the published month table are converted by lookup. Any
// other date is computed from a Surya Siddhanta solar model, so conversions
// work for every year, not only the tabulated ones.
package bikram

import (
	"fmt"
	"time"
)

// Date is a year/month/day triple in either calendar.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Compare orders dates lexicographically by year, month and day.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(d.Month - o.Month)
	default:
		return sign(d.Day - o.Day)
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// Method names the strategy that serves a BS year.
type Method string

const (
	MethodTable        Method = "table"
	MethodAstronomical Method = "astronomical"
)

// Converter routes conversions between the month table and the solar model.
// It is immutable and safe for concurrent use.
type Converter struct {
	table *Table
	ctx   *Context
}

// Option configures a Converter.
type Option func(*Converter)

// WithTable replaces the compiled-in month table.
func WithTable(t *Table) Option {
	return func(c *Converter) {
		if t != nil {
			c.table = t
		}
	}
}

// WithMaxSearchSteps sets the cap of the astronomical inverse search.
func WithMaxSearchSteps(n int) Option {
	return func(c *Converter) {
		if n >= 0 {
			c.ctx.MaxSearchSteps = n
		}
	}
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		table: defaultTable,
		ctx:   NewContext(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Table returns the month table used by the converter.
func (c *Converter) Table() *Table {
	return c.table
}

// Method reports which strategy converts dates of the given BS year.
func (c *Converter) Method(bsYear int) Method {
	if c.table.Contains(bsYear) {
		return MethodTable
	}
	return MethodAstronomical
}

// GregorianToBikram converts a Gregorian date to BS.
func (c *Converter) GregorianToBikram(year, month, day int) (Date, error) {
	if !validGregorian(year, month, day) {
		return Date{}, fmt.Errorf("%w: gregorian %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}

	jdn := GregorianToJDN(year, month, day)
	if d, ok := c.table.toBikram(jdn); ok {
		return d, nil
	}

	d := c.ctx.astronomicalToBikram(jdn)
	if jdn < EpochJDN && d.Year >= EpochYear {
		// The solar model starts Baisakh of the epoch year before the table
		// does; those days stay in the preceding Chaitra.
		start, err := c.ctx.astronomicalToJDN(EpochYear-1, 12, 1)
		if err != nil {
			return Date{}, err
		}
		return Date{Year: EpochYear - 1, Month: 12, Day: int(jdn-start) + 1}, nil
	}
	return d, nil
}

// BikramToGregorian converts a BS date to Gregorian.
func (c *Converter) BikramToGregorian(year, month, day int) (Date, error) {
	jdn, err := c.bikramToJDN(year, month, day)
	if err != nil {
		return Date{}, err
	}
	y, m, d := JDNToGregorian(jdn)
	return Date{Year: y, Month: m, Day: d}, nil
}

// DaysInMonth returns the number of days in a BS month.
func (c *Converter) DaysInMonth(year, month int) (int, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	if n, ok := c.table.DaysInMonth(year, month); ok {
		return n, nil
	}

	first, err := c.bikramToJDN(year, month, 1)
	if err != nil {
		return 0, err
	}
	ny, nm := year, month+1
	if month == 12 {
		ny, nm = year+1, 1
	}
	next, err := c.bikramToJDN(ny, nm, 1)
	if err != nil {
		return 0, err
	}
	return int(next - first), nil
}

// FromTime converts the calendar date of t to BS.
func (c *Converter) FromTime(t time.Time) (Date, error) {
	y, m, d := t.Date()
	return c.GregorianToBikram(y, int(m), d)
}

// ToTime returns midnight UTC of the Gregorian day matching a BS date.
func (c *Converter) ToTime(bs Date) (time.Time, error) {
	g, err := c.BikramToGregorian(bs.Year, bs.Month, bs.Day)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(g.Year, time.Month(g.Month), g.Day, 0, 0, 0, 0, time.UTC), nil
}

// Weekday returns the weekday of a BS date. Weekdays do not depend on the
// calendar, so this is the weekday of the matching Gregorian day.
func (c *Converter) Weekday(bs Date) (time.Weekday, error) {
	t, err := c.ToTime(bs)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

func (c *Converter) bikramToJDN(year, month, day int) (float64, error) {
	if month < 1 || month > 12 || day < 1 || day > 32 {
		return 0, fmt.Errorf("%w: bikram %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}

	if n, ok := c.table.DaysInMonth(year, month); ok {
		if day > n {
			return 0, fmt.Errorf("%w: bikram %04d-%02d has %d days", ErrInvalidDate, year, month, n)
		}
		jdn, _ := c.table.toJDN(year, month, day)
		return jdn, nil
	}

	if year == EpochYear-1 && month == 12 {
		start, err := c.ctx.astronomicalToJDN(year, month, 1)
		if err != nil {
			return 0, err
		}
		jdn := start + float64(day-1)
		if jdn >= EpochJDN {
			return 0, fmt.Errorf("%w: bikram %04d-%02d-%02d", ErrInvalidDate, year, month, day)
		}
		return jdn, nil
	}

	return c.ctx.astronomicalToJDN(year, month, day)
}

func validGregorian(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

var std = New()

// GregorianToBikram converts a Gregorian date to BS with the default converter.
func GregorianToBikram(year, month, day int) (Date, error) {
	return std.GregorianToBikram(year, month, day)
}

// BikramToGregorian converts a BS date to Gregorian with the default converter.
func BikramToGregorian(year, month, day int) (Date, error) {
	return std.BikramToGregorian(year, month, day)
}

// DaysInMonth returns the length of a BS month using the default converter.
func DaysInMonth(year, month int) (int, error) {
	return std.DaysInMonth(year, month)
}
