package terminal

import (
	"context"
	"time"
)

// Repository defines data access for kiosk terminals.
type Repository interface {
	Create(ctx context.Context, t Terminal) (Terminal, error)
	GetByID(ctx context.Context, id string, organizationID string) (Terminal, error)
	GetByAccessToken(ctx context.Context, token string) (Terminal, error)
	List(ctx context.Context, organizationID string) ([]Terminal, error)

	// ReplaceToken atomically swaps the terminal's credential and expiry so
	// no instant exists where two tokens validate.
	ReplaceToken(ctx context.Context, id string, token string, expiresAt time.Time) error

	TouchLastAccessed(ctx context.Context, id string, at time.Time) error
	SetActive(ctx context.Context, id string, organizationID string, active bool) error

	// ListExpiringBy returns active terminals whose token expires at or
	// before the deadline.
	ListExpiringBy(ctx context.Context, deadline time.Time) ([]Terminal, error)
}
