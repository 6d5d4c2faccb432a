package staff

import "context"

// ProfileRepository defines data access for staff attendance profiles.
type ProfileRepository interface {
	GetByStaffID(ctx context.Context, staffID string, organizationID string) (AttendanceProfile, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]AttendanceProfile, error)

	// CountByPattern reports how many profiles reference a work pattern.
	// Deletion of a pattern is blocked while the count is non-zero.
	CountByPattern(ctx context.Context, patternID string, organizationID string) (int, error)
}
