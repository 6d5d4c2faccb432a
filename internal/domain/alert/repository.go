package alert

import (
	"context"
	"time"
)

// Ledger is the dispatch idempotency store.
type Ledger interface {
	// Exists reports whether a dispatch is already recorded for the
	// (subject, date, kind) triple within the organization.
	Exists(ctx context.Context, organizationID, subjectID string, date time.Time, kind Kind) (bool, error)

	// Record inserts a dispatch record if absent. It returns false with a
	// nil error when the triple was already recorded: overlapping sweeps
	// treat the duplicate as success, never as a failure to retry.
	Record(ctx context.Context, rec DispatchRecord) (bool, error)
}
