package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/terminal"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type terminalRepositoryImpl struct {
	db *database.DB
}

func NewTerminalRepository(db *database.DB) terminal.Repository {
	return &terminalRepositoryImpl{db: db}
}

const terminalColumns = `
	id, organization_id, device_name, device_type, site_id,
	access_token, token_expires_at, rotation_period_days,
	is_active, last_accessed_at, created_by,
	created_at, updated_at
`

func scanTerminal(row pgx.Row) (terminal.Terminal, error) {
	var t terminal.Terminal
	err := row.Scan(
		&t.ID, &t.OrganizationID, &t.DeviceName, &t.DeviceType, &t.SiteID,
		&t.AccessToken, &t.TokenExpiresAt, &t.RotationPeriodDays,
		&t.IsActive, &t.LastAccessedAt, &t.CreatedBy,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// Create implements terminal.Repository.
func (r *terminalRepositoryImpl) Create(ctx context.Context, t terminal.Terminal) (terminal.Terminal, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO kiosk_terminals (
			id, organization_id, device_name, device_type, site_id,
			access_token, token_expires_at, rotation_period_days,
			is_active, created_by, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		) RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		t.ID, t.OrganizationID, t.DeviceName, string(t.DeviceType), t.SiteID,
		t.AccessToken, t.TokenExpiresAt, t.RotationPeriodDays,
		t.IsActive, t.CreatedBy,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return terminal.Terminal{}, err
	}
	return t, nil
}

// GetByID implements terminal.Repository.
func (r *terminalRepositoryImpl) GetByID(ctx context.Context, id string, organizationID string) (terminal.Terminal, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + terminalColumns + `
		FROM kiosk_terminals
		WHERE id = $1 AND organization_id = $2
	`
	t, err := scanTerminal(q.QueryRow(ctx, query, id, organizationID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return terminal.Terminal{}, terminal.ErrTerminalNotFound
		}
		return terminal.Terminal{}, err
	}
	return t, nil
}

// GetByAccessToken implements terminal.Repository.
func (r *terminalRepositoryImpl) GetByAccessToken(ctx context.Context, token string) (terminal.Terminal, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + terminalColumns + `
		FROM kiosk_terminals
		WHERE access_token = $1
	`
	t, err := scanTerminal(q.QueryRow(ctx, query, token))
	if err != nil {
		if err == pgx.ErrNoRows {
			return terminal.Terminal{}, terminal.ErrTerminalNotFound
		}
		return terminal.Terminal{}, err
	}
	return t, nil
}

// List implements terminal.Repository.
func (r *terminalRepositoryImpl) List(ctx context.Context, organizationID string) ([]terminal.Terminal, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + terminalColumns + `
		FROM kiosk_terminals
		WHERE organization_id = $1
		ORDER BY device_name
	`
	rows, err := q.Query(ctx, query, organizationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terminals []terminal.Terminal
	for rows.Next() {
		t, err := scanTerminal(rows)
		if err != nil {
			return nil, err
		}
		terminals = append(terminals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return terminals, nil
}

// ReplaceToken implements terminal.Repository. The swap is a single UPDATE:
// no instant exists where both the old and new token validate.
func (r *terminalRepositoryImpl) ReplaceToken(ctx context.Context, id string, token string, expiresAt time.Time) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE kiosk_terminals
		SET access_token = $1, token_expires_at = $2, updated_at = NOW()
		WHERE id = $3
	`
	commandTag, err := q.Exec(ctx, query, token, expiresAt, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return terminal.ErrTerminalNotFound
	}
	return nil
}

// TouchLastAccessed implements terminal.Repository.
func (r *terminalRepositoryImpl) TouchLastAccessed(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE kiosk_terminals
		SET last_accessed_at = $1
		WHERE id = $2
	`
	_, err := q.Exec(ctx, query, at, id)
	return err
}

// SetActive implements terminal.Repository.
func (r *terminalRepositoryImpl) SetActive(ctx context.Context, id string, organizationID string, active bool) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE kiosk_terminals
		SET is_active = $1, updated_at = NOW()
		WHERE id = $2 AND organization_id = $3
	`
	commandTag, err := q.Exec(ctx, query, active, id, organizationID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return terminal.ErrTerminalNotFound
	}
	return nil
}

// ListExpiringBy implements terminal.Repository.
func (r *terminalRepositoryImpl) ListExpiringBy(ctx context.Context, deadline time.Time) ([]terminal.Terminal, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT ` + terminalColumns + `
		FROM kiosk_terminals
		WHERE is_active = true AND token_expires_at <= $1
		ORDER BY token_expires_at
	`
	rows, err := q.Query(ctx, query, deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var terminals []terminal.Terminal
	for rows.Next() {
		t, err := scanTerminal(rows)
		if err != nil {
			return nil, err
		}
		terminals = append(terminals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return terminals, nil
}
