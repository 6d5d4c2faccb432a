package postgresql

import (
	"context"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/staff"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type staffProfileRepositoryImpl struct {
	db *database.DB
}

func NewStaffProfileRepository(db *database.DB) staff.ProfileRepository {
	return &staffProfileRepositoryImpl{db: db}
}

// GetByStaffID implements staff.ProfileRepository.
func (r *staffProfileRepositoryImpl) GetByStaffID(ctx context.Context, staffID string, organizationID string) (staff.AttendanceProfile, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT staff_id, organization_id, display_name, email,
			   work_pattern_id, is_shift_work, created_at, updated_at
		FROM staff_attendance_profiles
		WHERE staff_id = $1 AND organization_id = $2
	`
	var p staff.AttendanceProfile
	err := q.QueryRow(ctx, query, staffID, organizationID).Scan(
		&p.StaffID, &p.OrganizationID, &p.DisplayName, &p.Email,
		&p.WorkPatternID, &p.IsShiftWork, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return staff.AttendanceProfile{}, staff.ErrProfileNotFound
		}
		return staff.AttendanceProfile{}, err
	}
	return p, nil
}

// ListByOrganization implements staff.ProfileRepository.
func (r *staffProfileRepositoryImpl) ListByOrganization(ctx context.Context, organizationID string) ([]staff.AttendanceProfile, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT staff_id, organization_id, display_name, email,
			   work_pattern_id, is_shift_work, created_at, updated_at
		FROM staff_attendance_profiles
		WHERE organization_id = $1
		ORDER BY display_name
	`
	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []staff.AttendanceProfile
	for rows.Next() {
		var p staff.AttendanceProfile
		if err := rows.Scan(
			&p.StaffID, &p.OrganizationID, &p.DisplayName, &p.Email,
			&p.WorkPatternID, &p.IsShiftWork, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

// CountByPattern implements staff.ProfileRepository.
func (r *staffProfileRepositoryImpl) CountByPattern(ctx context.Context, patternID string, organizationID string) (int, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT COUNT(*)
		FROM staff_attendance_profiles
		WHERE work_pattern_id = $1 AND organization_id = $2
	`
	var count int
	if err := q.QueryRow(ctx, query, patternID, organizationID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
