package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/alert"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
)

// alertDispatchRepositoryImpl is the idempotency ledger. The table carries a
// unique constraint on (organization_id, subject_id, date, kind); the insert
// leans on it rather than check-then-insert so overlapping sweeps cannot
// both win.
type alertDispatchRepositoryImpl struct {
	db *database.DB
}

func NewAlertDispatchRepository(db *database.DB) alert.Ledger {
	return &alertDispatchRepositoryImpl{db: db}
}

// Exists implements alert.Ledger.
func (r *alertDispatchRepositoryImpl) Exists(ctx context.Context, organizationID, subjectID string, date time.Time, kind alert.Kind) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM alert_dispatches
			WHERE organization_id = $1 AND subject_id = $2 AND date = $3 AND kind = $4
		)
	`
	var exists bool
	err := q.QueryRow(ctx, query, organizationID, subjectID, date.Format("2006-01-02"), string(kind)).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Record implements alert.Ledger.
func (r *alertDispatchRepositoryImpl) Record(ctx context.Context, rec alert.DispatchRecord) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO alert_dispatches (
			id, organization_id, subject_id, date, kind, fired_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		ON CONFLICT (organization_id, subject_id, date, kind) DO NOTHING
	`
	commandTag, err := q.Exec(ctx, query,
		rec.ID, rec.OrganizationID, rec.SubjectID,
		rec.Date.Format("2006-01-02"), string(rec.Kind), rec.FiredAt,
	)
	if err != nil {
		return false, err
	}
	return commandTag.RowsAffected() == 1, nil
}
