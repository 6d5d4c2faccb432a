package pattern

import "time"

// WorkPattern is a named template of expected check-in/check-out times and
// alert offsets. Staff profiles reference a pattern; a pattern cannot be
// deleted while referenced.
type WorkPattern struct {
	ID             string
	OrganizationID string
	Name           string

	// Time-of-day values; the date component is ignored.
	ExpectedCheckInTime  time.Time
	ExpectedCheckOutTime *time.Time

	// IsNightShift marks a shift that belongs to the calendar day it starts
	// on even though it ends after midnight.
	IsNightShift bool

	CheckInAlertEnabled        bool
	CheckInAlertOffsetMinutes  int
	CheckOutAlertEnabled       bool
	CheckOutAlertOffsetMinutes int

	// At most one default pattern per organization.
	IsDefault bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CheckInAlertOffset returns the check-in alert offset as a duration.
func (p WorkPattern) CheckInAlertOffset() time.Duration {
	return time.Duration(p.CheckInAlertOffsetMinutes) * time.Minute
}

// CheckOutAlertOffset returns the check-out alert offset as a duration.
func (p WorkPattern) CheckOutAlertOffset() time.Duration {
	return time.Duration(p.CheckOutAlertOffsetMinutes) * time.Minute
}
