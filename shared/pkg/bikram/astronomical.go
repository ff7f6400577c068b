package bikram

import (
	"fmt"
	"math"
)

const (
	// AharganaEpochJDN is the Julian Day that starts the ahargana day count.
	// It is unrelated to EpochJDN.
	AharganaEpochJDN = 588465.5

	rad = 180 / math.Pi

	kaliToSaka    = 3179
	sakaToBikram  = 135
	signDegrees   = 30.0
	maxMonthScan  = 40
	defaultSearch = 400
)

// Context holds the Surya Siddhanta constants used by the astronomical
// engine. YugaCivilDays is derived in NewContext and never set on its own.
type Context struct {
	YugaRotationStar float64
	YugaRotationSun  float64
	YugaCivilDays    float64
	PlanetApogeeSun  float64
	PlanetCircumSun  float64

	// MaxSearchSteps caps the day-by-day inverse search.
	MaxSearchSteps int
}

// NewContext returns the constants of the solar model.
func NewContext() *Context {
	star := 1582237828.0
	sun := 4320000.0
	return &Context{
		YugaRotationStar: star,
		YugaRotationSun:  sun,
		YugaCivilDays:    star - sun,
		PlanetApogeeSun:  77 + 17.0/60,
		PlanetCircumSun:  13 + 50.0/60,
		MaxSearchSteps:   defaultSearch,
	}
}

// sauraMasa describes the solar month containing a day.
type sauraMasa struct {
	index  int   // 0..11, Baisakh is 0
	day    int   // 1-based day of month
	number int   // floor(true longitude / 30) the day after the month starts, 0..12
	anchor int64 // ahargana of the day after the month starts
}

func ahargana(jdn float64) int64 {
	return int64(math.Floor(jdn - AharganaEpochJDN))
}

// TrueSolarLongitude returns the sun's true longitude in degrees on day ahar.
// The mean longitude is corrected by the equation of centre.
func (c *Context) TrueSolarLongitude(ahar int64) float64 {
	t := c.YugaRotationSun * float64(ahar) / c.YugaCivilDays
	t -= math.Floor(t)
	mslong := 360 * t

	x1 := mslong - c.PlanetApogeeSun
	y3 := c.PlanetCircumSun / 360 * math.Sin(x1/rad)
	return mslong - math.Asin(y3)*rad
}

func (c *Context) signOffset(ahar int64) float64 {
	return math.Mod(math.Mod(c.TrueSolarLongitude(ahar), signDegrees)+signDegrees, signDegrees)
}

// isSauraMasaFirstDay reports whether the sun enters a new sign between ahar
// and the next day.
func (c *Context) isSauraMasaFirstDay(ahar int64) bool {
	return c.signOffset(ahar) > 25 && c.signOffset(ahar+1) < 5
}

func (c *Context) sauraMasaDay(ahar int64) sauraMasa {
	first, day := ahar, 1
	for n := 0; n < maxMonthScan && !c.isSauraMasaFirstDay(first); n++ {
		first--
		day++
	}

	number := int(math.Floor(c.TrueSolarLongitude(first+1) / signDegrees))
	return sauraMasa{
		index:  ((number % 12) + 12) % 12,
		day:    day,
		number: number,
		anchor: first + 1,
	}
}

// bikramAt computes the BS date of day ahar from the solar model. The year is
// taken at the month anchor so every day of a month shares it; number carries
// the year over when the true sun has completed the circle before the mean sun.
func (c *Context) bikramAt(ahar int64) Date {
	sm := c.sauraMasaDay(ahar)
	yearKali := int(math.Floor(float64(sm.anchor) * c.YugaRotationSun / c.YugaCivilDays))
	yearSaka := yearKali - kaliToSaka

	return Date{
		Year:  yearSaka + sakaToBikram + floorDiv(sm.number-sm.index, 12),
		Month: sm.index + 1,
		Day:   sm.day,
	}
}

func (c *Context) astronomicalToBikram(jdn float64) Date {
	return c.bikramAt(ahargana(jdn))
}

// astronomicalToJDN searches day by day for the Julian Day of a BS date,
// starting from the mean-motion estimate of the month.
func (c *Context) astronomicalToJDN(year, month, day int) (float64, error) {
	target := Date{Year: year, Month: month, Day: day}
	yearKali := float64(year - sakaToBikram + kaliToSaka)
	ahar := int64(math.Floor((yearKali+float64(month-1)/12)*c.YugaCivilDays/c.YugaRotationSun)) + int64(day-1)

	dir := 0
	for steps := 0; ; steps++ {
		cmp := c.bikramAt(ahar).Compare(target)
		if cmp == 0 {
			return float64(ahar) + AharganaEpochJDN, nil
		}
		if steps >= c.MaxSearchSteps {
			return 0, fmt.Errorf("%w: %s after %d steps", ErrNonConvergence, target, steps)
		}

		next := 1
		if cmp > 0 {
			next = -1
		}
		if dir != 0 && next != dir {
			return 0, fmt.Errorf("%w: %s does not exist", ErrInvalidDate, target)
		}
		dir = next
		ahar += int64(next)
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
