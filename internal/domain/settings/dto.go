package settings

import (
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
)

// ========================================
// SETTINGS DTOs
// ========================================

type UpdateSettingsRequest struct {
	Timezone                     *string      `json:"timezone"`
	AlertsMasterEnabled          *bool        `json:"alerts_master_enabled"`
	OvertimeAlertEnabled         *bool        `json:"overtime_alert_enabled"`
	OvertimeAlertHours           *int         `json:"overtime_alert_hours"`
	CredentialExpiryAlertEnabled *bool        `json:"credential_expiry_alert_enabled"`
	AdminDailyReportEnabled      *bool        `json:"admin_daily_report_enabled"`
	AdminDailyReportTime         *string      `json:"admin_daily_report_time"`
	DefaultRotationPeriodDays    *int         `json:"default_rotation_period_days"`
	WorkingDays                  *WorkingDays `json:"working_days"`
	ExcludeHolidays              *bool        `json:"exclude_holidays"`
	AutoBreakDeduction           *bool        `json:"auto_break_deduction"`
	AutoBreakMinutes             *int         `json:"auto_break_minutes"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Timezone != nil && !validator.IsValidTimezone(*r.Timezone) {
		errs = append(errs, validator.ValidationError{
			Field:   "timezone",
			Message: "timezone must be a valid IANA zone name",
		})
	}
	if r.OvertimeAlertHours != nil && *r.OvertimeAlertHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_alert_hours",
			Message: "overtime_alert_hours must be a positive number",
		})
	}
	if r.AdminDailyReportTime != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.AdminDailyReportTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "admin_daily_report_time",
				Message: "admin_daily_report_time must be a valid HH:MM time",
			})
		}
	}
	if r.DefaultRotationPeriodDays != nil && !validator.IsValidRotationPeriod(*r.DefaultRotationPeriodDays) {
		errs = append(errs, validator.ValidationError{
			Field:   "default_rotation_period_days",
			Message: "default_rotation_period_days must be one of: 1, 3, 7, 30",
		})
	}
	if r.AutoBreakMinutes != nil && *r.AutoBreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "auto_break_minutes",
			Message: "auto_break_minutes must be a non-negative number",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SettingsResponse struct {
	OrganizationID               string      `json:"organization_id"`
	Timezone                     string      `json:"timezone"`
	AlertsMasterEnabled          bool        `json:"alerts_master_enabled"`
	OvertimeAlertEnabled         bool        `json:"overtime_alert_enabled"`
	OvertimeAlertHours           int         `json:"overtime_alert_hours"`
	CredentialExpiryAlertEnabled bool        `json:"credential_expiry_alert_enabled"`
	AdminDailyReportEnabled      bool        `json:"admin_daily_report_enabled"`
	AdminDailyReportTime         string      `json:"admin_daily_report_time"`
	DefaultRotationPeriodDays    int         `json:"default_rotation_period_days"`
	WorkingDays                  WorkingDays `json:"working_days"`
	ExcludeHolidays              bool        `json:"exclude_holidays"`
	AutoBreakDeduction           bool        `json:"auto_break_deduction"`
	AutoBreakMinutes             int         `json:"auto_break_minutes"`
}

func ToResponse(s OrganizationSettings) SettingsResponse {
	return SettingsResponse{
		OrganizationID:               s.OrganizationID,
		Timezone:                     s.Timezone,
		AlertsMasterEnabled:          s.AlertsMasterEnabled,
		OvertimeAlertEnabled:         s.OvertimeAlertEnabled,
		OvertimeAlertHours:           s.OvertimeAlertHours,
		CredentialExpiryAlertEnabled: s.CredentialExpiryAlertEnabled,
		AdminDailyReportEnabled:      s.AdminDailyReportEnabled,
		AdminDailyReportTime:         s.AdminDailyReportTime,
		DefaultRotationPeriodDays:    s.DefaultRotationPeriodDays,
		WorkingDays:                  s.WorkingDays,
		ExcludeHolidays:              s.ExcludeHolidays,
		AutoBreakDeduction:           s.AutoBreakDeduction,
		AutoBreakMinutes:             s.AutoBreakMinutes,
	}
}

// Apply merges the request into existing settings, field by field. Absent
// fields leave the stored value untouched.
func (r *UpdateSettingsRequest) Apply(s OrganizationSettings) OrganizationSettings {
	if r.Timezone != nil {
		s.Timezone = *r.Timezone
	}
	if r.AlertsMasterEnabled != nil {
		s.AlertsMasterEnabled = *r.AlertsMasterEnabled
	}
	if r.OvertimeAlertEnabled != nil {
		s.OvertimeAlertEnabled = *r.OvertimeAlertEnabled
	}
	if r.OvertimeAlertHours != nil {
		s.OvertimeAlertHours = *r.OvertimeAlertHours
	}
	if r.CredentialExpiryAlertEnabled != nil {
		s.CredentialExpiryAlertEnabled = *r.CredentialExpiryAlertEnabled
	}
	if r.AdminDailyReportEnabled != nil {
		s.AdminDailyReportEnabled = *r.AdminDailyReportEnabled
	}
	if r.AdminDailyReportTime != nil {
		s.AdminDailyReportTime = *r.AdminDailyReportTime
	}
	if r.DefaultRotationPeriodDays != nil {
		s.DefaultRotationPeriodDays = *r.DefaultRotationPeriodDays
	}
	if r.WorkingDays != nil {
		s.WorkingDays = *r.WorkingDays
	}
	if r.ExcludeHolidays != nil {
		s.ExcludeHolidays = *r.ExcludeHolidays
	}
	if r.AutoBreakDeduction != nil {
		s.AutoBreakDeduction = *r.AutoBreakDeduction
	}
	if r.AutoBreakMinutes != nil {
		s.AutoBreakMinutes = *r.AutoBreakMinutes
	}
	return s
}
