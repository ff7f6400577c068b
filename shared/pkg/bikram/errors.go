package bikram

import "errors"

var (
	// ErrInvalidDate is returned for a month outside 1..12 or a day that does
	// not exist in the requested month.
	ErrInvalidDate = errors.New("invalid date")

	// ErrNonConvergence is returned when the astronomical inverse search does
	// not reach the requested day within the configured number of steps.
	ErrNonConvergence = errors.New("astronomical search did not converge")
)
