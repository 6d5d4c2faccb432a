package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

const punchColumns = `
	id, organization_id, staff_id, date,
	clock_in_time, clock_in_location_type, clock_in_site_id,
	clock_out_time, clock_out_location_type, clock_out_site_id,
	break_minutes, notes, is_manually_edited, edited_reason,
	created_at, updated_at
`

func scanPunch(row pgx.Row) (attendance.Punch, error) {
	var p attendance.Punch
	err := row.Scan(
		&p.ID, &p.OrganizationID, &p.StaffID, &p.Date,
		&p.ClockInTime, &p.ClockInLocationType, &p.ClockInSiteID,
		&p.ClockOutTime, &p.ClockOutLocationType, &p.ClockOutSiteID,
		&p.BreakMinutes, &p.Notes, &p.IsManuallyEdited, &p.EditedReason,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// GetByStaffAndDate implements attendance.Repository.
func (r *attendanceRepositoryImpl) GetByStaffAndDate(ctx context.Context, staffID string, date time.Time, organizationID string) (*attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + punchColumns + `
		FROM attendance_punches
		WHERE staff_id = $1 AND date = $2 AND organization_id = $3
	`
	p, err := scanPunch(q.QueryRow(ctx, query, staffID, date.Format("2006-01-02"), organizationID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// ListByStaffAndRange implements attendance.Repository.
func (r *attendanceRepositoryImpl) ListByStaffAndRange(ctx context.Context, staffID string, from, to time.Time, organizationID string) ([]attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + punchColumns + `
		FROM attendance_punches
		WHERE staff_id = $1 AND date BETWEEN $2 AND $3 AND organization_id = $4
		ORDER BY date
	`
	rows, err := q.Query(ctx, query, staffID, from.Format("2006-01-02"), to.Format("2006-01-02"), organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var punches []attendance.Punch
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, err
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return punches, nil
}

// ListByOrganizationAndDate implements attendance.Repository.
func (r *attendanceRepositoryImpl) ListByOrganizationAndDate(ctx context.Context, organizationID string, date time.Time) ([]attendance.Punch, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + punchColumns + `
		FROM attendance_punches
		WHERE organization_id = $1 AND date = $2
		ORDER BY staff_id
	`
	rows, err := q.Query(ctx, query, organizationID, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var punches []attendance.Punch
	for rows.Next() {
		p, err := scanPunch(rows)
		if err != nil {
			return nil, err
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return punches, nil
}
