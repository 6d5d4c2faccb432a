package pattern

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
)

// ========================================
// WORK PATTERN DTOs
// ========================================

type CreateWorkPatternRequest struct {
	Name                       string  `json:"name"`
	ExpectedCheckInTime        string  `json:"expected_checkin_time"`
	ExpectedCheckOutTime       *string `json:"expected_checkout_time"`
	IsNightShift               bool    `json:"is_night_shift"`
	CheckInAlertEnabled        bool    `json:"checkin_alert_enabled"`
	CheckInAlertOffsetMinutes  int     `json:"checkin_alert_offset_minutes"`
	CheckOutAlertEnabled       bool    `json:"checkout_alert_enabled"`
	CheckOutAlertOffsetMinutes int     `json:"checkout_alert_offset_minutes"`
	IsDefault                  bool    `json:"is_default"`
}

func (r *CreateWorkPatternRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if _, ok := validator.IsValidTimeOfDay(r.ExpectedCheckInTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "expected_checkin_time",
			Message: "expected_checkin_time must be a valid HH:MM time",
		})
	}
	if r.ExpectedCheckOutTime != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.ExpectedCheckOutTime); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "expected_checkout_time",
				Message: "expected_checkout_time must be a valid HH:MM time",
			})
		}
	}
	if r.CheckInAlertOffsetMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "checkin_alert_offset_minutes",
			Message: "checkin_alert_offset_minutes must be a non-negative number",
		})
	}
	if r.CheckOutAlertOffsetMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "checkout_alert_offset_minutes",
			Message: "checkout_alert_offset_minutes must be a non-negative number",
		})
	}
	if r.CheckOutAlertEnabled && r.ExpectedCheckOutTime == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "checkout_alert_enabled",
			Message: "checkout alerts require an expected_checkout_time",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToEntity builds a WorkPattern from a validated request. Identity and
// timestamps are left for the caller to assign.
func (r *CreateWorkPatternRequest) ToEntity() (WorkPattern, error) {
	checkIn, ok := validator.IsValidTimeOfDay(r.ExpectedCheckInTime)
	if !ok {
		return WorkPattern{}, validator.ValidationErrors{{
			Field:   "expected_checkin_time",
			Message: "expected_checkin_time must be a valid HH:MM time",
		}}
	}

	p := WorkPattern{
		Name:                       r.Name,
		ExpectedCheckInTime:        checkIn,
		IsNightShift:               r.IsNightShift,
		CheckInAlertEnabled:        r.CheckInAlertEnabled,
		CheckInAlertOffsetMinutes:  r.CheckInAlertOffsetMinutes,
		CheckOutAlertEnabled:       r.CheckOutAlertEnabled,
		CheckOutAlertOffsetMinutes: r.CheckOutAlertOffsetMinutes,
		IsDefault:                  r.IsDefault,
	}
	if r.ExpectedCheckOutTime != nil {
		checkOut, ok := validator.IsValidTimeOfDay(*r.ExpectedCheckOutTime)
		if !ok {
			return WorkPattern{}, validator.ValidationErrors{{
				Field:   "expected_checkout_time",
				Message: "expected_checkout_time must be a valid HH:MM time",
			}}
		}
		p.ExpectedCheckOutTime = &checkOut
	}

	return p, nil
}

// UpdateWorkPatternRequest replaces the pattern wholesale; partial updates
// are not supported for patterns.
type UpdateWorkPatternRequest struct {
	CreateWorkPatternRequest
}

type WorkPatternResponse struct {
	ID                         string  `json:"id"`
	Name                       string  `json:"name"`
	ExpectedCheckInTime        string  `json:"expected_checkin_time"`
	ExpectedCheckOutTime       *string `json:"expected_checkout_time"`
	IsNightShift               bool    `json:"is_night_shift"`
	CheckInAlertEnabled        bool    `json:"checkin_alert_enabled"`
	CheckInAlertOffsetMinutes  int     `json:"checkin_alert_offset_minutes"`
	CheckOutAlertEnabled       bool    `json:"checkout_alert_enabled"`
	CheckOutAlertOffsetMinutes int     `json:"checkout_alert_offset_minutes"`
	IsDefault                  bool    `json:"is_default"`
	CreatedAt                  string  `json:"created_at"`
	UpdatedAt                  string  `json:"updated_at"`
}

func ToResponse(p WorkPattern) WorkPatternResponse {
	resp := WorkPatternResponse{
		ID:                         p.ID,
		Name:                       p.Name,
		ExpectedCheckInTime:        p.ExpectedCheckInTime.Format("15:04"),
		IsNightShift:               p.IsNightShift,
		CheckInAlertEnabled:        p.CheckInAlertEnabled,
		CheckInAlertOffsetMinutes:  p.CheckInAlertOffsetMinutes,
		CheckOutAlertEnabled:       p.CheckOutAlertEnabled,
		CheckOutAlertOffsetMinutes: p.CheckOutAlertOffsetMinutes,
		IsDefault:                  p.IsDefault,
		CreatedAt:                  p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                  p.UpdatedAt.Format(time.RFC3339),
	}
	if p.ExpectedCheckOutTime != nil {
		out := p.ExpectedCheckOutTime.Format("15:04")
		resp.ExpectedCheckOutTime = &out
	}
	return resp
}
