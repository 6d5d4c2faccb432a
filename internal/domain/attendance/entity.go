package attendance

import "time"

// LocationType classifies where a clock event happened.
type LocationType string

const (
	LocationOffice     LocationType = "office"
	LocationSite       LocationType = "site"
	LocationRemote     LocationType = "remote"
	LocationDirectHome LocationType = "direct_home" // checkout only
)

var ClockInLocationValues = []string{
	string(LocationOffice),
	string(LocationSite),
	string(LocationRemote),
}

var ClockOutLocationValues = []string{
	string(LocationOffice),
	string(LocationSite),
	string(LocationRemote),
	string(LocationDirectHome),
}

// Punch is one recorded clock-in/clock-out pair (or clock-in alone) for one
// staff member on one calendar date.
type Punch struct {
	ID             string
	OrganizationID string
	StaffID        string
	Date           time.Time // calendar date in the organization's zone

	ClockInTime         time.Time
	ClockInLocationType LocationType
	ClockInSiteID       *string

	ClockOutTime         *time.Time
	ClockOutLocationType *LocationType
	ClockOutSiteID       *string

	BreakMinutes int

	Notes            *string
	IsManuallyEdited bool
	EditedReason     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsInProgress reports whether the punch has a clock-in but no clock-out yet.
func (p Punch) IsInProgress() bool {
	return p.ClockOutTime == nil
}

// IsValid reports whether the punch satisfies the clock-out >= clock-in
// invariant. An open punch is valid.
func (p Punch) IsValid() bool {
	return p.ClockOutTime == nil || !p.ClockOutTime.Before(p.ClockInTime)
}

// WorkDuration computes clock-out minus clock-in minus the break deduction,
// floored to the minute. Returns false for open or invalid punches.
func (p Punch) WorkDuration() (time.Duration, bool) {
	if p.ClockOutTime == nil || !p.IsValid() {
		return 0, false
	}
	d := p.ClockOutTime.Sub(p.ClockInTime) - time.Duration(p.BreakMinutes)*time.Minute
	if d < 0 {
		d = 0
	}
	return d.Truncate(time.Minute), true
}

// StatusType is the canonical classification of one staff-day.
type StatusType string

const (
	StatusAttendance StatusType = "attendance"
	StatusLeave      StatusType = "leave"
	StatusRest       StatusType = "rest"
)

// DailyStatus is the derived, never-persisted canonical record for one staff
// member on one date. Precedence is attendance > leave > rest.
type DailyStatus struct {
	StaffID string
	Date    time.Time
	Type    StatusType

	// Attendance fields
	WorkMinutes   *int
	IsInProgress  bool
	IsHolidayWork bool
	Punch         *Punch

	// Set when the underlying punch violates the clock-out >= clock-in
	// invariant; no duration is reported for such a day.
	InvalidPunch  bool
	InvalidReason *string

	// Leave fields
	LeaveType   *string
	LeaveReason *string
}
