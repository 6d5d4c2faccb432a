package terminal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/terminal"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/token"
	"github.com/google/uuid"
)

// Service manages kiosk terminals and their rotating display credentials.
type Service struct {
	terminalRepo terminal.Repository
	settingsRepo settings.Repository

	now func() time.Time
}

func NewService(terminalRepo terminal.Repository, settingsRepo settings.Repository) *Service {
	return &Service{
		terminalRepo: terminalRepo,
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Register creates a terminal and issues its first credential. The rotation
// period falls back to the organization default when the request omits it.
func (s *Service) Register(ctx context.Context, organizationID string, req terminal.RegisterTerminalRequest, createdBy string) (terminal.Terminal, error) {
	if err := req.Validate(); err != nil {
		return terminal.Terminal{}, err
	}

	org, err := s.settingsRepo.GetByOrganization(ctx, organizationID)
	if err != nil {
		return terminal.Terminal{}, fmt.Errorf("failed to load organization settings: %w", err)
	}

	rotationDays := org.DefaultRotationPeriodDays
	if req.RotationPeriodDays != nil {
		rotationDays = *req.RotationPeriodDays
	}

	tok, err := token.New()
	if err != nil {
		return terminal.Terminal{}, err
	}

	now := s.now()
	t := terminal.Terminal{
		ID:                 uuid.NewString(),
		OrganizationID:     organizationID,
		DeviceName:         req.DeviceName,
		DeviceType:         terminal.DeviceType(req.DeviceType),
		SiteID:             req.SiteID,
		AccessToken:        tok,
		TokenExpiresAt:     tokenExpiry(now, rotationDays, org.Location()),
		RotationPeriodDays: rotationDays,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if createdBy != "" {
		t.CreatedBy = &createdBy
	}

	created, err := s.terminalRepo.Create(ctx, t)
	if err != nil {
		return terminal.Terminal{}, fmt.Errorf("failed to create terminal: %w", err)
	}

	return created, nil
}

// RotateToken replaces the terminal's credential with a fresh one. The old
// token stops validating the moment the swap lands; exactly one token is
// valid per terminal at any instant.
func (s *Service) RotateToken(ctx context.Context, id, organizationID string) (terminal.Terminal, error) {
	t, err := s.terminalRepo.GetByID(ctx, id, organizationID)
	if err != nil {
		return terminal.Terminal{}, err
	}

	org, err := s.settingsRepo.GetByOrganization(ctx, organizationID)
	if err != nil {
		return terminal.Terminal{}, fmt.Errorf("failed to load organization settings: %w", err)
	}

	tok, err := token.New()
	if err != nil {
		return terminal.Terminal{}, err
	}

	expiresAt := tokenExpiry(s.now(), t.RotationPeriodDays, org.Location())
	if err := s.terminalRepo.ReplaceToken(ctx, t.ID, tok, expiresAt); err != nil {
		return terminal.Terminal{}, fmt.Errorf("failed to replace terminal token: %w", err)
	}

	t.AccessToken = tok
	t.TokenExpiresAt = expiresAt
	return t, nil
}

// Validate resolves a presented display credential to its terminal. Unknown
// and deactivated terminals are indistinguishable to the caller; an expired
// token on a known terminal is reported as such so the kiosk can show a
// rotation prompt.
func (s *Service) Validate(ctx context.Context, candidate string) (terminal.Terminal, error) {
	if len(candidate) != token.EncodedLen {
		return terminal.Terminal{}, terminal.ErrTokenUnknown
	}

	t, err := s.terminalRepo.GetByAccessToken(ctx, candidate)
	if err != nil {
		if errors.Is(err, terminal.ErrTerminalNotFound) {
			return terminal.Terminal{}, terminal.ErrTokenUnknown
		}
		return terminal.Terminal{}, fmt.Errorf("failed to look up terminal token: %w", err)
	}

	if !t.IsActive {
		return terminal.Terminal{}, terminal.ErrTokenUnknown
	}
	if !token.Equal(candidate, t.AccessToken) {
		return terminal.Terminal{}, terminal.ErrTokenUnknown
	}

	now := s.now()
	if !t.TokenValidAt(now) {
		return terminal.Terminal{}, terminal.ErrTokenExpired
	}

	// Best effort; a failed touch never rejects a valid credential.
	if err := s.terminalRepo.TouchLastAccessed(ctx, t.ID, now); err != nil {
		slog.Warn("Failed to record terminal access", "terminal_id", t.ID, "error", err)
	}

	return t, nil
}

func (s *Service) List(ctx context.Context, organizationID string) ([]terminal.Terminal, error) {
	terminals, err := s.terminalRepo.List(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list terminals: %w", err)
	}
	return terminals, nil
}

func (s *Service) GetByID(ctx context.Context, id, organizationID string) (terminal.Terminal, error) {
	return s.terminalRepo.GetByID(ctx, id, organizationID)
}

// Deactivate retires a terminal. Its credential stops validating immediately.
func (s *Service) Deactivate(ctx context.Context, id, organizationID string) error {
	if _, err := s.terminalRepo.GetByID(ctx, id, organizationID); err != nil {
		return err
	}
	if err := s.terminalRepo.SetActive(ctx, id, organizationID, false); err != nil {
		return fmt.Errorf("failed to deactivate terminal: %w", err)
	}
	return nil
}

// tokenExpiry computes the end of a credential's validity window: 23:59:59
// organization-local on the (rotationDays-1)th day after issuance, so a
// 1-day token dies at the end of its issue date.
func tokenExpiry(issuedAt time.Time, rotationDays int, loc *time.Location) time.Time {
	local := issuedAt.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()+rotationDays-1, 23, 59, 59, 0, loc)
}
