package policy

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/pattern"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/staff"
)

// Resolve merges organization-wide settings with a staff member's work
// pattern into one fully concrete policy. It is a pure function and must be
// called fresh for every sweep so configuration edits are never served from
// a stale merge.
//
// The organization master switch is a hard override: when off, every alert
// field resolves to disabled regardless of per-pattern values. A staff
// member without a pattern gets no check-in/check-out alerting (nothing to
// compare against); a shift worker can still receive overtime alerts since
// those depend only on the open punch.
func Resolve(s settings.OrganizationSettings, profile staff.AttendanceProfile, p *pattern.WorkPattern) settings.EffectivePolicy {
	pol := settings.EffectivePolicy{
		StaffID:        profile.StaffID,
		OrganizationID: profile.OrganizationID,
	}

	if !s.AlertsMasterEnabled {
		return pol
	}

	if p != nil {
		pol.CheckInAlertEnabled = p.CheckInAlertEnabled
		pol.CheckInAlertOffset = p.CheckInAlertOffset()
		pol.CheckOutAlertEnabled = p.CheckOutAlertEnabled && p.ExpectedCheckOutTime != nil
		pol.CheckOutAlertOffset = p.CheckOutAlertOffset()
	}

	if s.OvertimeAlertEnabled && (p != nil || profile.IsShiftWork) {
		pol.OvertimeAlertEnabled = true
		pol.OvertimeThreshold = time.Duration(s.OvertimeAlertHours) * time.Hour
	}

	return pol
}
