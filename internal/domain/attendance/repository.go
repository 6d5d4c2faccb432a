package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance punches. All methods take
// the organization qualifier to prevent cross-organization reads.
type Repository interface {
	// GetByStaffAndDate returns the punch for a staff member on a calendar
	// date, or nil when none exists.
	GetByStaffAndDate(ctx context.Context, staffID string, date time.Time, organizationID string) (*Punch, error)

	// ListByStaffAndRange returns all punches for a staff member with
	// from <= date <= to, ordered by date.
	ListByStaffAndRange(ctx context.Context, staffID string, from, to time.Time, organizationID string) ([]Punch, error)

	// ListByOrganizationAndDate returns every punch recorded in the
	// organization on a calendar date.
	ListByOrganizationAndDate(ctx context.Context, organizationID string, date time.Time) ([]Punch, error)
}
