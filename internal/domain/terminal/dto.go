package terminal

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
)

// ========================================
// TERMINAL DTOs
// ========================================

type RegisterTerminalRequest struct {
	DeviceName         string  `json:"device_name"`
	DeviceType         string  `json:"device_type"`
	SiteID             *string `json:"site_id"`
	RotationPeriodDays *int    `json:"rotation_period_days"`
}

func (r *RegisterTerminalRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DeviceName) {
		errs = append(errs, validator.ValidationError{
			Field:   "device_name",
			Message: "device_name is required",
		})
	}
	if !validator.IsInSlice(r.DeviceType, DeviceTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "device_type",
			Message: "device_type must be one of: " + strings.Join(DeviceTypeValues, ", "),
		})
	}
	if r.DeviceType == string(DeviceSite) && (r.SiteID == nil || validator.IsEmpty(*r.SiteID)) {
		errs = append(errs, validator.ValidationError{
			Field:   "site_id",
			Message: "site_id is required for site terminals",
		})
	}
	if r.RotationPeriodDays != nil && !validator.IsValidRotationPeriod(*r.RotationPeriodDays) {
		errs = append(errs, validator.ValidationError{
			Field:   "rotation_period_days",
			Message: "rotation_period_days must be one of: 1, 3, 7, 30",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TerminalResponse struct {
	ID                 string  `json:"id"`
	DeviceName         string  `json:"device_name"`
	DeviceType         string  `json:"device_type"`
	SiteID             *string `json:"site_id,omitempty"`
	AccessToken        string  `json:"access_token,omitempty"`
	TokenExpiresAt     string  `json:"token_expires_at"`
	RotationPeriodDays int     `json:"rotation_period_days"`
	IsActive           bool    `json:"is_active"`
	LastAccessedAt     *string `json:"last_accessed_at,omitempty"`
}

// ToResponse converts a terminal for API output. The access token is only
// included when includeToken is set (registration and refresh responses).
func ToResponse(t Terminal, includeToken bool) TerminalResponse {
	resp := TerminalResponse{
		ID:                 t.ID,
		DeviceName:         t.DeviceName,
		DeviceType:         string(t.DeviceType),
		SiteID:             t.SiteID,
		TokenExpiresAt:     t.TokenExpiresAt.Format(time.RFC3339),
		RotationPeriodDays: t.RotationPeriodDays,
		IsActive:           t.IsActive,
	}
	if includeToken {
		resp.AccessToken = t.AccessToken
	}
	if t.LastAccessedAt != nil {
		at := t.LastAccessedAt.Format(time.RFC3339)
		resp.LastAccessedAt = &at
	}
	return resp
}
