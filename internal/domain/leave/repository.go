package leave

import (
	"context"
	"time"
)

// Repository defines data access for leave records.
type Repository interface {
	GetByStaffAndDate(ctx context.Context, staffID string, date time.Time, organizationID string) (*Record, error)
	ListByStaffAndRange(ctx context.Context, staffID string, from, to time.Time, organizationID string) ([]Record, error)
}
