package settings

import "time"

// RotationPeriodValues are the allowed kiosk credential rotation cycles.
var RotationPeriodValues = []int{1, 3, 7, 30}

// WorkingDays marks which weekdays count as working days.
type WorkingDays struct {
	Mon bool `json:"mon"`
	Tue bool `json:"tue"`
	Wed bool `json:"wed"`
	Thu bool `json:"thu"`
	Fri bool `json:"fri"`
	Sat bool `json:"sat"`
	Sun bool `json:"sun"`
}

// Includes reports whether the weekday is marked as working.
func (w WorkingDays) Includes(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return w.Mon
	case time.Tuesday:
		return w.Tue
	case time.Wednesday:
		return w.Wed
	case time.Thursday:
		return w.Thu
	case time.Friday:
		return w.Fri
	case time.Saturday:
		return w.Sat
	case time.Sunday:
		return w.Sun
	}
	return false
}

// DefaultWorkingDays is the Mon-Fri week applied until an administrator
// configures otherwise.
var DefaultWorkingDays = WorkingDays{Mon: true, Tue: true, Wed: true, Thu: true, Fri: true}

// OrganizationSettings is the organization-wide attendance configuration.
type OrganizationSettings struct {
	OrganizationID string

	// IANA zone all date-boundary arithmetic for the organization uses.
	Timezone string

	// Master switch: when off, every alert resolves to disabled regardless
	// of per-pattern values.
	AlertsMasterEnabled bool

	OvertimeAlertEnabled bool
	OvertimeAlertHours   int

	CredentialExpiryAlertEnabled bool

	// Daily summary of the previous day's punches, sent to administrators
	// once the organization-local clock passes the report time.
	AdminDailyReportEnabled bool
	AdminDailyReportTime    string // HH:MM, organization-local

	DefaultRotationPeriodDays int

	WorkingDays     WorkingDays
	ExcludeHolidays bool

	AutoBreakDeduction bool
	AutoBreakMinutes   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Defaults returns the settings an organization starts with before an
// administrator configures anything.
func Defaults(organizationID string) OrganizationSettings {
	return OrganizationSettings{
		OrganizationID:               organizationID,
		Timezone:                     "UTC",
		AlertsMasterEnabled:          true,
		OvertimeAlertEnabled:         false,
		OvertimeAlertHours:           12,
		CredentialExpiryAlertEnabled: true,
		AdminDailyReportEnabled:      false,
		AdminDailyReportTime:         "09:00",
		DefaultRotationPeriodDays:    30,
		WorkingDays:                  DefaultWorkingDays,
		ExcludeHolidays:              true,
		AutoBreakDeduction:           false,
		AutoBreakMinutes:             60,
	}
}

// Location resolves the organization's time zone, falling back to UTC when
// the stored name is unloadable.
func (s OrganizationSettings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsWorkingDay decides whether a date is a working day: its weekday must be
// marked AND, when holiday exclusion is enabled, it must not be a public
// holiday.
func (s OrganizationSettings) IsWorkingDay(date time.Time, isHoliday bool) bool {
	if !s.WorkingDays.Includes(date.Weekday()) {
		return false
	}
	if s.ExcludeHolidays && isHoliday {
		return false
	}
	return true
}
