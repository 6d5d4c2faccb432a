package postgresql

import (
	"context"
	"encoding/json"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.Repository {
	return &settingsRepositoryImpl{db: db}
}

const settingsColumns = `
	organization_id, timezone, alerts_master_enabled,
	overtime_alert_enabled, overtime_alert_hours,
	credential_expiry_alert_enabled,
	admin_daily_report_enabled, admin_daily_report_time,
	default_rotation_period_days,
	working_days, exclude_holidays,
	auto_break_deduction, auto_break_minutes,
	created_at, updated_at
`

func scanSettings(row pgx.Row) (settings.OrganizationSettings, error) {
	var s settings.OrganizationSettings
	var workingDaysJSON []byte

	err := row.Scan(
		&s.OrganizationID, &s.Timezone, &s.AlertsMasterEnabled,
		&s.OvertimeAlertEnabled, &s.OvertimeAlertHours,
		&s.CredentialExpiryAlertEnabled,
		&s.AdminDailyReportEnabled, &s.AdminDailyReportTime,
		&s.DefaultRotationPeriodDays,
		&workingDaysJSON, &s.ExcludeHolidays,
		&s.AutoBreakDeduction, &s.AutoBreakMinutes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return settings.OrganizationSettings{}, err
	}

	if workingDaysJSON != nil {
		if err := json.Unmarshal(workingDaysJSON, &s.WorkingDays); err != nil {
			return settings.OrganizationSettings{}, err
		}
	}

	return s, nil
}

// GetByOrganization implements settings.Repository.
func (r *settingsRepositoryImpl) GetByOrganization(ctx context.Context, organizationID string) (settings.OrganizationSettings, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + settingsColumns + `
		FROM organization_attendance_settings
		WHERE organization_id = $1
	`
	s, err := scanSettings(q.QueryRow(ctx, query, organizationID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return settings.OrganizationSettings{}, settings.ErrSettingsNotFound
		}
		return settings.OrganizationSettings{}, err
	}
	return s, nil
}

// ListAll implements settings.Repository.
func (r *settingsRepositoryImpl) ListAll(ctx context.Context) ([]settings.OrganizationSettings, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + settingsColumns + `
		FROM organization_attendance_settings
		ORDER BY organization_id
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []settings.OrganizationSettings
	for rows.Next() {
		s, err := scanSettings(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return all, nil
}

// Upsert implements settings.Repository.
func (r *settingsRepositoryImpl) Upsert(ctx context.Context, s settings.OrganizationSettings) (settings.OrganizationSettings, error) {
	q := GetQuerier(ctx, r.db)

	workingDaysJSON, err := json.Marshal(s.WorkingDays)
	if err != nil {
		return settings.OrganizationSettings{}, err
	}

	query := `
		INSERT INTO organization_attendance_settings (
			organization_id, timezone, alerts_master_enabled,
			overtime_alert_enabled, overtime_alert_hours,
			credential_expiry_alert_enabled,
			admin_daily_report_enabled, admin_daily_report_time,
			default_rotation_period_days,
			working_days, exclude_holidays,
			auto_break_deduction, auto_break_minutes,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW()
		)
		ON CONFLICT (organization_id) DO UPDATE SET
			timezone = EXCLUDED.timezone,
			alerts_master_enabled = EXCLUDED.alerts_master_enabled,
			overtime_alert_enabled = EXCLUDED.overtime_alert_enabled,
			overtime_alert_hours = EXCLUDED.overtime_alert_hours,
			credential_expiry_alert_enabled = EXCLUDED.credential_expiry_alert_enabled,
			admin_daily_report_enabled = EXCLUDED.admin_daily_report_enabled,
			admin_daily_report_time = EXCLUDED.admin_daily_report_time,
			default_rotation_period_days = EXCLUDED.default_rotation_period_days,
			working_days = EXCLUDED.working_days,
			exclude_holidays = EXCLUDED.exclude_holidays,
			auto_break_deduction = EXCLUDED.auto_break_deduction,
			auto_break_minutes = EXCLUDED.auto_break_minutes,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`
	err = q.QueryRow(ctx, query,
		s.OrganizationID, s.Timezone, s.AlertsMasterEnabled,
		s.OvertimeAlertEnabled, s.OvertimeAlertHours,
		s.CredentialExpiryAlertEnabled,
		s.AdminDailyReportEnabled, s.AdminDailyReportTime,
		s.DefaultRotationPeriodDays,
		workingDaysJSON, s.ExcludeHolidays,
		s.AutoBreakDeduction, s.AutoBreakMinutes,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return settings.OrganizationSettings{}, err
	}

	return s, nil
}
