package attendance

import "errors"

// Attendance domain errors
var (
	ErrPunchNotFound = errors.New("attendance punch not found")

	// ErrInvalidPunch marks a punch whose clock-out precedes its clock-in.
	// The day resolver surfaces it per date rather than failing the range.
	ErrInvalidPunch = errors.New("clock-out time precedes clock-in time")
)
