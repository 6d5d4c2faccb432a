package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/terminal"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrg = "org-1"

type fakeTerminalRepo struct {
	terminals map[string]terminal.Terminal
	touched   []string
}

func newFakeTerminalRepo() *fakeTerminalRepo {
	return &fakeTerminalRepo{terminals: make(map[string]terminal.Terminal)}
}

func (f *fakeTerminalRepo) Create(_ context.Context, t terminal.Terminal) (terminal.Terminal, error) {
	f.terminals[t.ID] = t
	return t, nil
}

func (f *fakeTerminalRepo) GetByID(_ context.Context, id, organizationID string) (terminal.Terminal, error) {
	t, ok := f.terminals[id]
	if !ok || t.OrganizationID != organizationID {
		return terminal.Terminal{}, terminal.ErrTerminalNotFound
	}
	return t, nil
}

func (f *fakeTerminalRepo) GetByAccessToken(_ context.Context, tok string) (terminal.Terminal, error) {
	for _, t := range f.terminals {
		if t.AccessToken == tok {
			return t, nil
		}
	}
	return terminal.Terminal{}, terminal.ErrTerminalNotFound
}

func (f *fakeTerminalRepo) List(_ context.Context, organizationID string) ([]terminal.Terminal, error) {
	var out []terminal.Terminal
	for _, t := range f.terminals {
		if t.OrganizationID == organizationID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTerminalRepo) ReplaceToken(_ context.Context, id, tok string, expiresAt time.Time) error {
	t := f.terminals[id]
	t.AccessToken = tok
	t.TokenExpiresAt = expiresAt
	f.terminals[id] = t
	return nil
}

func (f *fakeTerminalRepo) TouchLastAccessed(_ context.Context, id string, _ time.Time) error {
	f.touched = append(f.touched, id)
	return nil
}

func (f *fakeTerminalRepo) SetActive(_ context.Context, id, _ string, active bool) error {
	t := f.terminals[id]
	t.IsActive = active
	f.terminals[id] = t
	return nil
}

func (f *fakeTerminalRepo) ListExpiringBy(_ context.Context, deadline time.Time) ([]terminal.Terminal, error) {
	var out []terminal.Terminal
	for _, t := range f.terminals {
		if t.IsActive && !t.TokenExpiresAt.After(deadline) {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	s settings.OrganizationSettings
}

func (f *fakeSettingsRepo) GetByOrganization(_ context.Context, id string) (settings.OrganizationSettings, error) {
	if id != f.s.OrganizationID {
		return settings.OrganizationSettings{}, settings.ErrSettingsNotFound
	}
	return f.s, nil
}

func (f *fakeSettingsRepo) ListAll(_ context.Context) ([]settings.OrganizationSettings, error) {
	return []settings.OrganizationSettings{f.s}, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, s settings.OrganizationSettings) (settings.OrganizationSettings, error) {
	f.s = s
	return s, nil
}

func newTestService(repo *fakeTerminalRepo, clock time.Time) *Service {
	return NewService(repo, &fakeSettingsRepo{s: settings.OrganizationSettings{
		OrganizationID:            testOrg,
		Timezone:                  "UTC",
		DefaultRotationPeriodDays: 7,
	}}).WithClock(func() time.Time { return clock })
}

func TestRegister_IssuesTokenWithExpiry(t *testing.T) {
	t.Parallel()

	repo := newFakeTerminalRepo()
	issuedAt := time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, issuedAt)

	got, err := svc.Register(context.Background(), testOrg, terminal.RegisterTerminalRequest{
		DeviceName: "Front desk tablet",
		DeviceType: "office",
	}, "admin-1")

	require.NoError(t, err)
	assert.Len(t, got.AccessToken, token.EncodedLen)
	assert.Equal(t, 7, got.RotationPeriodDays)
	assert.True(t, got.IsActive)
	// 7-day cycle issued on the 10th is valid through the end of the 16th.
	assert.Equal(t, time.Date(2024, 5, 16, 23, 59, 59, 0, time.UTC), got.TokenExpiresAt)
}

func TestRegister_ExplicitRotationPeriod(t *testing.T) {
	t.Parallel()

	repo := newFakeTerminalRepo()
	issuedAt := time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, issuedAt)
	days := 1

	got, err := svc.Register(context.Background(), testOrg, terminal.RegisterTerminalRequest{
		DeviceName:         "Lobby kiosk",
		DeviceType:         "office",
		RotationPeriodDays: &days,
	}, "")

	require.NoError(t, err)
	assert.Equal(t, 1, got.RotationPeriodDays)
	// A 1-day token dies at the end of its issue date.
	assert.Equal(t, time.Date(2024, 5, 10, 23, 59, 59, 0, time.UTC), got.TokenExpiresAt)
}

func TestRegister_SiteRequiresSiteID(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeTerminalRepo(), time.Now())

	_, err := svc.Register(context.Background(), testOrg, terminal.RegisterTerminalRequest{
		DeviceName: "Warehouse kiosk",
		DeviceType: "site",
	}, "")

	assert.Error(t, err)
}

func TestValidate_BoundarySemantics(t *testing.T) {
	t.Parallel()

	repo := newFakeTerminalRepo()
	issuedAt := time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, issuedAt)
	days := 1

	created, err := svc.Register(context.Background(), testOrg, terminal.RegisterTerminalRequest{
		DeviceName:         "Lobby kiosk",
		DeviceType:         "office",
		RotationPeriodDays: &days,
	}, "")
	require.NoError(t, err)

	// Valid at the last second of the issue date.
	svc.now = func() time.Time { return time.Date(2024, 5, 10, 23, 59, 59, 0, time.UTC) }
	got, err := svc.Validate(context.Background(), created.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// Invalid one second later.
	svc.now = func() time.Time { return time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC) }
	_, err = svc.Validate(context.Background(), created.AccessToken)
	assert.ErrorIs(t, err, terminal.ErrTokenExpired)
}

func TestValidate_BoundarySemanticsWeeklyRotation(t *testing.T) {
	t.Parallel()

	repo := newFakeTerminalRepo()
	issuedAt := time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)
	svc := newTestService(repo, issuedAt)
	days := 7

	created, err := svc.Register(context.Background(), testOrg, terminal.RegisterTerminalRequest{
		DeviceName:         "Lobby kiosk",
		DeviceType:         "office",
		RotationPeriodDays: &days,
	}, "")
	require.NoError(t, err)

	// A 7-day token issued on the 10th covers six full days after the issue
	// date and dies at the end of the 16th.
	svc.now = func() time.Time { return time.Date(2024, 5, 16, 23, 59, 59, 0, time.UTC) }
	got, err := svc.Validate(context.Background(), created.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	svc.now = func() time.Time { return time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC) }
	_, err = svc.Validate(context.Background(), created.AccessToken)
	assert.ErrorIs(t, err, terminal.ErrTokenExpired)
}

func TestValidate_UnknownToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeTerminalRepo(), time.Now())

	unknown, err := token.New()
	require.NoError(t, err)

	_, err = svc.Validate(context.Background(), unknown)
	assert.ErrorIs(t, err, terminal.ErrTokenUnknown)

	// Malformed candidates are rejected before any lookup.
	_, err = svc.Validate(context.Background(), "short")
	assert.ErrorIs(t, err, terminal.ErrTokenUnknown)
}

func TestValidate_DeactivatedTerminalLooksUnknown(t *testing.T) {
	t.Parallel()

	repo := newFakeTerminalRepo()
	svc := newTestService(repo, time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC))

	created, err := svc.Register(context.Background(), testOrg, terminal.RegisterTerminalRequest{
		DeviceName: "Lobby kiosk",
		DeviceType: "office",
	}, "")
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(context.Background(), created.ID, testOrg))

	_, err = svc.Validate(context.Background(), created.AccessToken)
	assert.ErrorIs(t, err, terminal.ErrTokenUnknown)
}

func TestValidate_TouchesLastAccessed(t *testing.T) {
	t.Parallel()

	repo := newFakeTerminalRepo()
	svc := newTestService(repo, time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC))

	created, err := svc.Register(context.Background(), testOrg, terminal.RegisterTerminalRequest{
		DeviceName: "Lobby kiosk",
		DeviceType: "office",
	}, "")
	require.NoError(t, err)

	_, err = svc.Validate(context.Background(), created.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, []string{created.ID}, repo.touched)
}

func TestRotateToken_OldTokenStopsValidating(t *testing.T) {
	t.Parallel()

	repo := newFakeTerminalRepo()
	svc := newTestService(repo, time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC))

	created, err := svc.Register(context.Background(), testOrg, terminal.RegisterTerminalRequest{
		DeviceName: "Lobby kiosk",
		DeviceType: "office",
	}, "")
	require.NoError(t, err)

	rotated, err := svc.RotateToken(context.Background(), created.ID, testOrg)
	require.NoError(t, err)
	assert.NotEqual(t, created.AccessToken, rotated.AccessToken)

	_, err = svc.Validate(context.Background(), created.AccessToken)
	assert.ErrorIs(t, err, terminal.ErrTokenUnknown)

	got, err := svc.Validate(context.Background(), rotated.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}
