package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/pattern"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workPatternRepositoryImpl struct {
	db *database.DB
}

func NewWorkPatternRepository(db *database.DB) pattern.Repository {
	return &workPatternRepositoryImpl{db: db}
}

const workPatternColumns = `
	id, organization_id, name,
	expected_checkin_time::text, expected_checkout_time::text, is_night_shift,
	checkin_alert_enabled, checkin_alert_offset_minutes,
	checkout_alert_enabled, checkout_alert_offset_minutes,
	is_default, created_at, updated_at
`

func scanWorkPattern(row pgx.Row) (pattern.WorkPattern, error) {
	var p pattern.WorkPattern
	var checkIn string
	var checkOut *string

	err := row.Scan(
		&p.ID, &p.OrganizationID, &p.Name,
		&checkIn, &checkOut, &p.IsNightShift,
		&p.CheckInAlertEnabled, &p.CheckInAlertOffsetMinutes,
		&p.CheckOutAlertEnabled, &p.CheckOutAlertOffsetMinutes,
		&p.IsDefault, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return pattern.WorkPattern{}, err
	}

	p.ExpectedCheckInTime, err = parseTimeOfDay(checkIn)
	if err != nil {
		return pattern.WorkPattern{}, err
	}
	if checkOut != nil {
		t, err := parseTimeOfDay(*checkOut)
		if err != nil {
			return pattern.WorkPattern{}, err
		}
		p.ExpectedCheckOutTime = &t
	}

	return p, nil
}

func parseTimeOfDay(s string) (time.Time, error) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse("15:04", s)
}

func timeOfDayArg(t time.Time) string {
	return t.Format("15:04:05")
}

func optionalTimeOfDayArg(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04:05")
	return &s
}

// Create implements pattern.Repository.
func (r *workPatternRepositoryImpl) Create(ctx context.Context, p pattern.WorkPattern) (pattern.WorkPattern, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO work_patterns (
			id, organization_id, name,
			expected_checkin_time, expected_checkout_time, is_night_shift,
			checkin_alert_enabled, checkin_alert_offset_minutes,
			checkout_alert_enabled, checkout_alert_offset_minutes,
			is_default, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4::time, $5::time, $6, $7, $8, $9, $10, $11, NOW(), NOW()
		) RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		p.ID, p.OrganizationID, p.Name,
		timeOfDayArg(p.ExpectedCheckInTime), optionalTimeOfDayArg(p.ExpectedCheckOutTime), p.IsNightShift,
		p.CheckInAlertEnabled, p.CheckInAlertOffsetMinutes,
		p.CheckOutAlertEnabled, p.CheckOutAlertOffsetMinutes,
		p.IsDefault,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return pattern.WorkPattern{}, err
	}
	return p, nil
}

// GetByID implements pattern.Repository.
func (r *workPatternRepositoryImpl) GetByID(ctx context.Context, id string, organizationID string) (pattern.WorkPattern, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + workPatternColumns + `
		FROM work_patterns
		WHERE id = $1 AND organization_id = $2
	`
	p, err := scanWorkPattern(q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return pattern.WorkPattern{}, pattern.ErrPatternNotFound
		}
		return pattern.WorkPattern{}, err
	}
	return p, nil
}

// List implements pattern.Repository.
func (r *workPatternRepositoryImpl) List(ctx context.Context, organizationID string) ([]pattern.WorkPattern, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + workPatternColumns + `
		FROM work_patterns
		WHERE organization_id = $1
		ORDER BY name
	`
	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patterns []pattern.WorkPattern
	for rows.Next() {
		p, err := scanWorkPattern(rows)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}

// Update implements pattern.Repository.
func (r *workPatternRepositoryImpl) Update(ctx context.Context, p pattern.WorkPattern) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE work_patterns
		SET name = $1,
			expected_checkin_time = $2::time,
			expected_checkout_time = $3::time,
			is_night_shift = $4,
			checkin_alert_enabled = $5,
			checkin_alert_offset_minutes = $6,
			checkout_alert_enabled = $7,
			checkout_alert_offset_minutes = $8,
			is_default = $9,
			updated_at = NOW()
		WHERE id = $10 AND organization_id = $11
	`
	commandTag, err := q.Exec(ctx, query,
		p.Name,
		timeOfDayArg(p.ExpectedCheckInTime), optionalTimeOfDayArg(p.ExpectedCheckOutTime),
		p.IsNightShift,
		p.CheckInAlertEnabled, p.CheckInAlertOffsetMinutes,
		p.CheckOutAlertEnabled, p.CheckOutAlertOffsetMinutes,
		p.IsDefault,
		p.ID, p.OrganizationID,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return pattern.ErrPatternNotFound
	}
	return nil
}

// Delete implements pattern.Repository.
func (r *workPatternRepositoryImpl) Delete(ctx context.Context, id string, organizationID string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		DELETE FROM work_patterns
		WHERE id = $1 AND organization_id = $2
	`
	commandTag, err := q.Exec(ctx, query, id, organizationID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return pattern.ErrPatternNotFound
	}
	return nil
}

// ClearDefault implements pattern.Repository.
func (r *workPatternRepositoryImpl) ClearDefault(ctx context.Context, organizationID string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE work_patterns
		SET is_default = false, updated_at = NOW()
		WHERE organization_id = $1 AND is_default = true
	`
	_, err := q.Exec(ctx, query, organizationID)
	return err
}
