package bikram

import (
	"fmt"
	"math"
)

const (
	// EpochYear is the first BS year covered by the month table.
	EpochYear = 2000

	// EpochJDN is the Julian Day of 1 Baisakh 2000 BS (14 April 1943).
	EpochJDN = 2430828.5
)

// Table holds the published month lengths of a contiguous run of BS years
// starting at EpochYear. It is immutable once built.
type Table struct {
	rows [][13]int
	// starts[i] is the day offset of year EpochYear+i from EpochJDN.
	starts []int
}

var defaultTable = mustTable(defaultRows)

// DefaultTable returns the compiled-in month table.
func DefaultTable() *Table {
	return defaultTable
}

// NewTable validates rows and builds a Table. Row i describes year
// EpochYear+i: twelve month lengths followed by the year total.
func NewTable(rows [][13]int) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("calendar table is empty")
	}

	t := &Table{
		rows:   make([][13]int, len(rows)),
		starts: make([]int, len(rows)),
	}
	offset := 0
	for i, row := range rows {
		sum := 0
		for m := 0; m < 12; m++ {
			if row[m] < 29 || row[m] > 32 {
				return nil, fmt.Errorf("year %d month %d: invalid length %d", EpochYear+i, m+1, row[m])
			}
			sum += row[m]
		}
		if sum != row[12] {
			return nil, fmt.Errorf("year %d: total %d does not match month sum %d", EpochYear+i, row[12], sum)
		}
		t.rows[i] = row
		t.starts[i] = offset
		offset += sum
	}
	return t, nil
}

func mustTable(rows [][13]int) *Table {
	t, err := NewTable(rows)
	if err != nil {
		panic(err)
	}
	return t
}

// Years returns the number of tabulated years.
func (t *Table) Years() int {
	return len(t.rows)
}

// LastYear returns the last tabulated BS year.
func (t *Table) LastYear() int {
	return EpochYear + len(t.rows) - 1
}

// Contains reports whether year is tabulated.
func (t *Table) Contains(year int) bool {
	return year >= EpochYear && year-EpochYear < len(t.rows)
}

// Row returns the twelve month lengths and total of year.
func (t *Table) Row(year int) ([13]int, bool) {
	if !t.Contains(year) {
		return [13]int{}, false
	}
	return t.rows[year-EpochYear], true
}

// DaysInMonth returns the tabulated length of a month.
func (t *Table) DaysInMonth(year, month int) (int, bool) {
	if !t.Contains(year) || month < 1 || month > 12 {
		return 0, false
	}
	return t.rows[year-EpochYear][month-1], true
}

// toBikram resolves a Julian Day inside the table. It returns false when the
// day lies before the epoch or after the last tabulated year.
func (t *Table) toBikram(jdn float64) (Date, bool) {
	diff := int(math.Floor(jdn - EpochJDN))
	if diff < 0 {
		return Date{}, false
	}

	for i, row := range t.rows {
		if diff >= row[12] {
			diff -= row[12]
			continue
		}
		for m := 0; m < 12; m++ {
			if diff < row[m] {
				return Date{Year: EpochYear + i, Month: m + 1, Day: diff + 1}, true
			}
			diff -= row[m]
		}
	}
	return Date{}, false
}

// toJDN returns the Julian Day of a tabulated BS date. Month and day are
// expected to be validated by the caller.
func (t *Table) toJDN(year, month, day int) (float64, bool) {
	if !t.Contains(year) {
		return 0, false
	}

	i := year - EpochYear
	days := t.starts[i]
	for m := 0; m < month-1; m++ {
		days += t.rows[i][m]
	}
	days += day - 1

	return EpochJDN + float64(days), true
}
