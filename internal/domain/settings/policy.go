package settings

import "time"

// EffectivePolicy is the fully resolved, non-null alert configuration for
// one staff member. Nothing optional survives past the settings resolver:
// every field is a concrete boolean or duration.
type EffectivePolicy struct {
	StaffID        string
	OrganizationID string

	CheckInAlertEnabled bool
	CheckInAlertOffset  time.Duration

	CheckOutAlertEnabled bool
	CheckOutAlertOffset  time.Duration

	OvertimeAlertEnabled bool
	OvertimeThreshold    time.Duration
}

// AnyAlertEnabled reports whether the sweep needs to evaluate this staff
// member at all.
func (p EffectivePolicy) AnyAlertEnabled() bool {
	return p.CheckInAlertEnabled || p.CheckOutAlertEnabled || p.OvertimeAlertEnabled
}
