package pattern

import "time"

// ExpectedTimes computes the expected check-in timestamp, and check-out
// timestamp when the pattern defines one, for a calendar date in the given
// location. For a night shift whose checkout time-of-day does not fall after
// the check-in time-of-day, the checkout lands on the following calendar day
// as an explicit date-shifted timestamp.
func ExpectedTimes(p WorkPattern, date time.Time, loc *time.Location) (time.Time, *time.Time) {
	checkIn := atTimeOfDay(date, p.ExpectedCheckInTime, loc)

	if p.ExpectedCheckOutTime == nil {
		return checkIn, nil
	}

	checkOut := atTimeOfDay(date, *p.ExpectedCheckOutTime, loc)
	if p.IsNightShift && !checkOut.After(checkIn) {
		checkOut = checkOut.AddDate(0, 0, 1)
	}

	return checkIn, &checkOut
}

// atTimeOfDay anchors a time-of-day value onto a calendar date in loc.
func atTimeOfDay(date, tod time.Time, loc *time.Location) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0,
		loc,
	)
}
