package bikram

import "math"

// GregorianReformJDN is the first day of the Gregorian calendar (15 Oct 1582).
const GregorianReformJDN = 2299161

// GregorianToJDN converts a proleptic Gregorian date to a Julian Day Number.
// The result ends in .5 because Julian days start at noon.
func GregorianToJDN(year, month, day int) float64 {
	y, m := year, month
	if m <= 2 {
		y--
		m += 12
	}

	a := math.Floor(float64(y) / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) + b - 1524.5
}

// JDNToGregorian converts a Julian Day Number back to a proleptic Gregorian
// date. It is the exact inverse of GregorianToJDN.
func JDNToGregorian(jdn float64) (year, month, day int) {
	z := math.Floor(jdn + 0.5)
	alpha := math.Floor((z - 1867216.25) / 36524.25)
	return civilDate(z + 1 + alpha - math.Floor(alpha/4))
}

// JDNToHistorical converts a Julian Day Number to the calendar in force on
// that day: Julian before the 1582 reform, Gregorian from it on.
func JDNToHistorical(jdn float64) (year, month, day int) {
	z := math.Floor(jdn + 0.5)
	if z < GregorianReformJDN {
		return civilDate(z)
	}
	alpha := math.Floor((z - 1867216.25) / 36524.25)
	return civilDate(z + 1 + alpha - math.Floor(alpha/4))
}

func civilDate(a float64) (year, month, day int) {
	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	day = int(b - d - math.Floor(30.6001*e))
	if e < 14 {
		month = int(e) - 1
	} else {
		month = int(e) - 13
	}
	if month > 2 {
		year = int(c) - 4716
	} else {
		year = int(c) - 4715
	}
	return year, month, day
}
