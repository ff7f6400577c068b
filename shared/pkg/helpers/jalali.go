package helpers

import (
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// FormatJalaliDate converts Gregorian date to Jalali format Y/m/d
// Example: 2025-08-30 -> 1404/06/08
func FormatJalaliDate(t time.Time) string {
	pt := ptime.New(t)
	return pt.Format("yyyy/MM/dd")
}

// JalaliDate returns the Solar Hijri year, month and day of t.
func JalaliDate(t time.Time) (year, month, day int) {
	pt := ptime.New(t)
	return pt.Year(), int(pt.Month()), pt.Day()
}
