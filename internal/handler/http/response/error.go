package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/alert"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/pattern"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/staff"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/terminal"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Work pattern domain errors
	case errors.Is(err, pattern.ErrPatternNotFound):
		NotFound(w, "Work pattern not found")
	case errors.Is(err, pattern.ErrPatternInUse):
		Conflict(w, "Work pattern is still referenced by staff members")

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Organization settings not found")

	// Staff domain errors
	case errors.Is(err, staff.ErrProfileNotFound):
		NotFound(w, "Staff profile not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrPunchNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidPunch):
		BadRequest(w, "Attendance record violates the clock-out >= clock-in rule", nil)

	// Terminal domain errors
	case errors.Is(err, terminal.ErrTerminalNotFound):
		NotFound(w, "Terminal not found")
	case errors.Is(err, terminal.ErrTokenUnknown):
		Unauthorized(w, "Terminal token is not recognized")
	case errors.Is(err, terminal.ErrTokenExpired):
		Unauthorized(w, "Terminal token has expired")

	// Alert domain errors
	case errors.Is(err, alert.ErrSinkUnavailable):
		InternalServerError(w, "Notification sink unavailable")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
