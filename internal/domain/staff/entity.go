package staff

import "time"

// Role gates the administrative API surface. Identity itself is decided by
// the caller; the engine only reads the claim.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// AttendanceProfile links a staff member to a work pattern. A nil pattern
// reference means shift worker: no automatic alerting applies.
type AttendanceProfile struct {
	StaffID        string
	OrganizationID string
	DisplayName    string
	Email          string
	WorkPatternID  *string
	IsShiftWork    bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
