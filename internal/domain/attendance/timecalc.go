package attendance

import (
	"fmt"
	"time"
)

// MinimumSameDayInterval is the shortest accepted manual interval when both
// endpoints fall on the same calendar day.
const MinimumSameDayInterval = time.Minute

// Elapsed is the worked time of a record. Open is set when the session has no
// clock-out yet, in which case Duration is zero.
type Elapsed struct {
	Open     bool
	Duration time.Duration
}

func (e Elapsed) Hours() float64 {
	return e.Duration.Hours()
}

// String renders hours with two decimals, or "open".
func (e Elapsed) String() string {
	if e.Open {
		return "open"
	}
	return fmt.Sprintf("%.2f", e.Hours())
}

// ElapsedHours returns the time between clockIn and clockOut. A nil clockOut
// yields an open marker.
func ElapsedHours(clockIn time.Time, clockOut *time.Time) (Elapsed, error) {
	if clockOut == nil {
		return Elapsed{Open: true}, nil
	}
	if !clockOut.After(clockIn) {
		return Elapsed{}, ErrEndBeforeStart
	}
	return Elapsed{Duration: clockOut.Sub(clockIn)}, nil
}

// ValidateManualInterval checks a retroactively reported interval against now.
// Calendar days are evaluated in loc.
func ValidateManualInterval(clockIn, clockOut, now time.Time, loc *time.Location) error {
	if clockIn.After(now) || clockOut.After(now) {
		return ErrFutureTimestamp
	}
	if !clockOut.After(clockIn) {
		return ErrEndBeforeStart
	}
	if SameCalendarDay(clockIn, clockOut, loc) && clockOut.Sub(clockIn) < MinimumSameDayInterval {
		return ErrIntervalTooShort
	}
	return nil
}

// SameCalendarDay reports whether a and b share a date in loc.
func SameCalendarDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// DayBounds returns [start, end) of the calendar day containing t in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
