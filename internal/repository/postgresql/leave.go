package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.Repository {
	return &leaveRepositoryImpl{db: db}
}

// GetByStaffAndDate implements leave.Repository.
func (r *leaveRepositoryImpl) GetByStaffAndDate(ctx context.Context, staffID string, date time.Time, organizationID string) (*leave.Record, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, organization_id, staff_id, date, type, reason, created_at, updated_at
		FROM leave_records
		WHERE staff_id = $1 AND date = $2 AND organization_id = $3
	`
	var rec leave.Record
	err := q.QueryRow(ctx, query, staffID, date.Format("2006-01-02"), organizationID).Scan(
		&rec.ID, &rec.OrganizationID, &rec.StaffID, &rec.Date,
		&rec.Type, &rec.Reason, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// ListByStaffAndRange implements leave.Repository.
func (r *leaveRepositoryImpl) ListByStaffAndRange(ctx context.Context, staffID string, from, to time.Time, organizationID string) ([]leave.Record, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, organization_id, staff_id, date, type, reason, created_at, updated_at
		FROM leave_records
		WHERE staff_id = $1 AND date BETWEEN $2 AND $3 AND organization_id = $4
		ORDER BY date
	`
	rows, err := q.Query(ctx, query, staffID, from.Format("2006-01-02"), to.Format("2006-01-02"), organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []leave.Record
	for rows.Next() {
		var rec leave.Record
		if err := rows.Scan(
			&rec.ID, &rec.OrganizationID, &rec.StaffID, &rec.Date,
			&rec.Type, &rec.Reason, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
