package alert

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/alert"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/pattern"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/staff"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== IN-MEMORY STORE FAKES =====

type fakeSettingsRepo struct {
	orgs []settings.OrganizationSettings
}

func (f *fakeSettingsRepo) GetByOrganization(_ context.Context, id string) (settings.OrganizationSettings, error) {
	for _, o := range f.orgs {
		if o.OrganizationID == id {
			return o, nil
		}
	}
	return settings.OrganizationSettings{}, settings.ErrSettingsNotFound
}

func (f *fakeSettingsRepo) ListAll(_ context.Context) ([]settings.OrganizationSettings, error) {
	return f.orgs, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, s settings.OrganizationSettings) (settings.OrganizationSettings, error) {
	return s, nil
}

type fakeHolidayRepo struct {
	holidays map[string]string
}

func (f *fakeHolidayRepo) IsHoliday(_ context.Context, date time.Time) (bool, error) {
	_, ok := f.holidays[date.Format("2006-01-02")]
	return ok, nil
}

func (f *fakeHolidayRepo) ListByRange(_ context.Context, _, _ time.Time) (map[string]string, error) {
	return f.holidays, nil
}

type fakeProfileRepo struct {
	profiles []staff.AttendanceProfile
}

func (f *fakeProfileRepo) GetByStaffID(_ context.Context, staffID, _ string) (staff.AttendanceProfile, error) {
	for _, p := range f.profiles {
		if p.StaffID == staffID {
			return p, nil
		}
	}
	return staff.AttendanceProfile{}, staff.ErrProfileNotFound
}

func (f *fakeProfileRepo) ListByOrganization(_ context.Context, organizationID string) ([]staff.AttendanceProfile, error) {
	var out []staff.AttendanceProfile
	for _, p := range f.profiles {
		if p.OrganizationID == organizationID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) CountByPattern(_ context.Context, patternID, _ string) (int, error) {
	count := 0
	for _, p := range f.profiles {
		if p.WorkPatternID != nil && *p.WorkPatternID == patternID {
			count++
		}
	}
	return count, nil
}

type fakePatternRepo struct {
	patterns map[string]pattern.WorkPattern
}

func (f *fakePatternRepo) Create(_ context.Context, p pattern.WorkPattern) (pattern.WorkPattern, error) {
	f.patterns[p.ID] = p
	return p, nil
}

func (f *fakePatternRepo) GetByID(_ context.Context, id, _ string) (pattern.WorkPattern, error) {
	p, ok := f.patterns[id]
	if !ok {
		return pattern.WorkPattern{}, pattern.ErrPatternNotFound
	}
	return p, nil
}

func (f *fakePatternRepo) List(_ context.Context, _ string) ([]pattern.WorkPattern, error) {
	var out []pattern.WorkPattern
	for _, p := range f.patterns {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePatternRepo) Update(_ context.Context, p pattern.WorkPattern) error {
	f.patterns[p.ID] = p
	return nil
}

func (f *fakePatternRepo) Delete(_ context.Context, id, _ string) error {
	delete(f.patterns, id)
	return nil
}

func (f *fakePatternRepo) ClearDefault(_ context.Context, _ string) error { return nil }

type fakePunchRepo struct {
	punches []attendance.Punch
}

func (f *fakePunchRepo) GetByStaffAndDate(_ context.Context, staffID string, date time.Time, _ string) (*attendance.Punch, error) {
	for i := range f.punches {
		if f.punches[i].StaffID == staffID && f.punches[i].Date.Format("2006-01-02") == date.Format("2006-01-02") {
			p := f.punches[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakePunchRepo) ListByStaffAndRange(_ context.Context, staffID string, from, to time.Time, _ string) ([]attendance.Punch, error) {
	return nil, nil
}

func (f *fakePunchRepo) ListByOrganizationAndDate(_ context.Context, organizationID string, date time.Time) ([]attendance.Punch, error) {
	var out []attendance.Punch
	for _, p := range f.punches {
		if p.Date.Format("2006-01-02") == date.Format("2006-01-02") {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeLeaveRepo struct {
	records []leave.Record
}

func (f *fakeLeaveRepo) GetByStaffAndDate(_ context.Context, staffID string, date time.Time, _ string) (*leave.Record, error) {
	for i := range f.records {
		if f.records[i].StaffID == staffID && f.records[i].Date.Format("2006-01-02") == date.Format("2006-01-02") {
			r := f.records[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeLeaveRepo) ListByStaffAndRange(_ context.Context, _ string, _, _ time.Time, _ string) ([]leave.Record, error) {
	return nil, nil
}

type fakeTerminalRepo struct {
	terminals []terminal.Terminal
}

func (f *fakeTerminalRepo) Create(_ context.Context, t terminal.Terminal) (terminal.Terminal, error) {
	f.terminals = append(f.terminals, t)
	return t, nil
}

func (f *fakeTerminalRepo) GetByID(_ context.Context, id, _ string) (terminal.Terminal, error) {
	for _, t := range f.terminals {
		if t.ID == id {
			return t, nil
		}
	}
	return terminal.Terminal{}, terminal.ErrTerminalNotFound
}

func (f *fakeTerminalRepo) GetByAccessToken(_ context.Context, token string) (terminal.Terminal, error) {
	for _, t := range f.terminals {
		if t.AccessToken == token {
			return t, nil
		}
	}
	return terminal.Terminal{}, terminal.ErrTerminalNotFound
}

func (f *fakeTerminalRepo) List(_ context.Context, _ string) ([]terminal.Terminal, error) {
	return f.terminals, nil
}

func (f *fakeTerminalRepo) ReplaceToken(_ context.Context, id, token string, expiresAt time.Time) error {
	for i := range f.terminals {
		if f.terminals[i].ID == id {
			f.terminals[i].AccessToken = token
			f.terminals[i].TokenExpiresAt = expiresAt
		}
	}
	return nil
}

func (f *fakeTerminalRepo) TouchLastAccessed(_ context.Context, _ string, _ time.Time) error {
	return nil
}

func (f *fakeTerminalRepo) SetActive(_ context.Context, _, _ string, _ bool) error { return nil }

func (f *fakeTerminalRepo) ListExpiringBy(_ context.Context, deadline time.Time) ([]terminal.Terminal, error) {
	var out []terminal.Terminal
	for _, t := range f.terminals {
		if t.IsActive && !t.TokenExpiresAt.After(deadline) {
			out = append(out, t)
		}
	}
	return out, nil
}

type memoryLedger struct {
	mu   sync.Mutex
	rows map[string]alert.DispatchRecord
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{rows: make(map[string]alert.DispatchRecord)}
}

func ledgerKey(organizationID, subjectID string, date time.Time, kind alert.Kind) string {
	return organizationID + "|" + subjectID + "|" + date.Format("2006-01-02") + "|" + string(kind)
}

func (l *memoryLedger) Exists(_ context.Context, organizationID, subjectID string, date time.Time, kind alert.Kind) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.rows[ledgerKey(organizationID, subjectID, date, kind)]
	return ok, nil
}

func (l *memoryLedger) Record(_ context.Context, rec alert.DispatchRecord) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := ledgerKey(rec.OrganizationID, rec.SubjectID, rec.Date, rec.Kind)
	if _, ok := l.rows[key]; ok {
		return false, nil
	}
	l.rows[key] = rec
	return true, nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	delivered []alert.Payload
	failUntil int // fail the first N deliveries
}

func (n *recordingNotifier) Deliver(_ context.Context, p alert.Payload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failUntil > 0 {
		n.failUntil--
		return errors.New("sink down")
	}
	n.delivered = append(n.delivered, p)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.delivered)
}

// ===== FIXTURE =====

const (
	testOrg   = "org-1"
	testStaff = "staff-1"
	patternID = "pat-1"
)

// sweepAt is 2024-05-20 12:00 UTC, a Monday.
var sweepAt = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

func testSettings() settings.OrganizationSettings {
	return settings.OrganizationSettings{
		OrganizationID:       testOrg,
		Timezone:             "UTC",
		AlertsMasterEnabled:  true,
		OvertimeAlertEnabled: true,
		OvertimeAlertHours:   10,
		WorkingDays:          settings.DefaultWorkingDays,
		ExcludeHolidays:      true,
	}
}

func testPattern() pattern.WorkPattern {
	out := time.Date(0, 1, 1, 17, 30, 0, 0, time.UTC)
	return pattern.WorkPattern{
		ID:                         patternID,
		OrganizationID:             testOrg,
		Name:                       "Day shift",
		ExpectedCheckInTime:        time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		ExpectedCheckOutTime:       &out,
		CheckInAlertEnabled:        true,
		CheckInAlertOffsetMinutes:  120,
		CheckOutAlertEnabled:       true,
		CheckOutAlertOffsetMinutes: 60,
	}
}

func nightPattern() pattern.WorkPattern {
	out := time.Date(0, 1, 1, 6, 0, 0, 0, time.UTC)
	p := testPattern()
	p.Name = "Night shift"
	p.ExpectedCheckInTime = time.Date(0, 1, 1, 22, 0, 0, 0, time.UTC)
	p.ExpectedCheckOutTime = &out
	p.IsNightShift = true
	return p
}

type fixture struct {
	svc      *Service
	notifier *recordingNotifier
	ledger   *memoryLedger
	punches  *fakePunchRepo
	leaves   *fakeLeaveRepo
	patterns *fakePatternRepo
	orgs     *fakeSettingsRepo
}

func newFixture(orgSettings settings.OrganizationSettings, punches []attendance.Punch, terminals []terminal.Terminal) *fixture {
	pid := patternID
	f := &fixture{
		notifier: &recordingNotifier{},
		ledger:   newMemoryLedger(),
		punches:  &fakePunchRepo{punches: punches},
		leaves:   &fakeLeaveRepo{},
		patterns: &fakePatternRepo{patterns: map[string]pattern.WorkPattern{patternID: testPattern()}},
		orgs:     &fakeSettingsRepo{orgs: []settings.OrganizationSettings{orgSettings}},
	}
	f.svc = NewService(
		f.orgs,
		&fakeHolidayRepo{holidays: map[string]string{}},
		&fakeProfileRepo{profiles: []staff.AttendanceProfile{{
			StaffID:        testStaff,
			OrganizationID: testOrg,
			DisplayName:    "Sato Taro",
			WorkPatternID:  &pid,
		}}},
		f.patterns,
		f.punches,
		f.leaves,
		&fakeTerminalRepo{terminals: terminals},
		f.ledger,
		f.notifier,
		time.Second,
		1,
	)
	return f
}

// ===== SWEEP TESTS =====

func TestRunSweep_CheckInReminderFiresOnce(t *testing.T) {
	t.Parallel()

	f := newFixture(testSettings(), nil, nil)

	// Expected check-in 09:00 + 120m offset = 11:00; sweeping at 12:00 with
	// no punch recorded yet.
	count, err := f.svc.RunSweep(context.Background(), sweepAt)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Equal(t, 1, f.notifier.count())
	assert.Equal(t, alert.KindCheckInReminder, f.notifier.delivered[0].Kind)

	// Immediate second sweep with unchanged data dispatches nothing.
	count, err = f.svc.RunSweep(context.Background(), sweepAt)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 1, f.notifier.count())
}

func TestRunSweep_BeforeOffsetNothingDue(t *testing.T) {
	t.Parallel()

	f := newFixture(testSettings(), nil, nil)

	// 10:59 is inside the offset window.
	at := time.Date(2024, 5, 20, 10, 59, 0, 0, time.UTC)
	count, err := f.svc.RunSweep(context.Background(), at)

	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRunSweep_CheckInSuppressedByPunch(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	punch := attendance.Punch{
		StaffID:     testStaff,
		Date:        today,
		ClockInTime: today.Add(9 * time.Hour),
	}
	f := newFixture(testSettings(), []attendance.Punch{punch}, nil)

	count, err := f.svc.RunSweep(context.Background(), sweepAt)

	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRunSweep_CheckOutReminder(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	punch := attendance.Punch{
		StaffID:     testStaff,
		Date:        today,
		ClockInTime: today.Add(9 * time.Hour),
	}
	f := newFixture(testSettings(), []attendance.Punch{punch}, nil)

	// Expected checkout 17:30 + 60m = 18:30.
	at := time.Date(2024, 5, 20, 18, 30, 0, 0, time.UTC)
	count, err := f.svc.RunSweep(context.Background(), at)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Equal(t, 1, f.notifier.count())
	assert.Equal(t, alert.KindCheckOutReminder, f.notifier.delivered[0].Kind)
}

func TestRunSweep_CheckOutReminderNotDueAfterClockOut(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	out := today.Add(18 * time.Hour)
	punch := attendance.Punch{
		StaffID:      testStaff,
		Date:         today,
		ClockInTime:  today.Add(9 * time.Hour),
		ClockOutTime: &out,
	}
	f := newFixture(testSettings(), []attendance.Punch{punch}, nil)

	at := time.Date(2024, 5, 20, 19, 0, 0, 0, time.UTC)
	count, err := f.svc.RunSweep(context.Background(), at)

	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRunSweep_OvertimeAlert(t *testing.T) {
	t.Parallel()

	today := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	punch := attendance.Punch{
		StaffID:     testStaff,
		Date:        today,
		ClockInTime: today.Add(8 * time.Hour),
	}
	f := newFixture(testSettings(), []attendance.Punch{punch}, nil)

	// 10-hour threshold; clocked in at 08:00, sweeping at 18:30. The
	// check-out reminder also fires at this point.
	at := time.Date(2024, 5, 20, 18, 30, 0, 0, time.UTC)
	count, err := f.svc.RunSweep(context.Background(), at)

	require.NoError(t, err)
	assert.Equal(t, 2, count)

	kinds := map[alert.Kind]bool{}
	for _, p := range f.notifier.delivered {
		kinds[p.Kind] = true
	}
	assert.True(t, kinds[alert.KindOvertime])
	assert.True(t, kinds[alert.KindCheckOutReminder])
}

func TestRunSweep_MasterSwitchOffDispatchesNothing(t *testing.T) {
	t.Parallel()

	s := testSettings()
	s.AlertsMasterEnabled = false
	f := newFixture(s, nil, nil)

	count, err := f.svc.RunSweep(context.Background(), sweepAt)

	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, f.notifier.count())
}

func TestRunSweep_NonWorkingDaySkipped(t *testing.T) {
	t.Parallel()

	f := newFixture(testSettings(), nil, nil)

	// 2024-05-19 is a Sunday.
	sunday := time.Date(2024, 5, 19, 12, 0, 0, 0, time.UTC)
	count, err := f.svc.RunSweep(context.Background(), sunday)

	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRunSweep_HolidaySkippedWhenExclusionEnabled(t *testing.T) {
	t.Parallel()

	f := newFixture(testSettings(), nil, nil)
	f.svc.holidayRepo = &fakeHolidayRepo{holidays: map[string]string{"2024-05-20": "Holiday"}}

	count, err := f.svc.RunSweep(context.Background(), sweepAt)

	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRunSweep_SinkFailureRetriedNextSweep(t *testing.T) {
	t.Parallel()

	f := newFixture(testSettings(), nil, nil)
	f.notifier.failUntil = 1

	// First sweep: sink down, nothing recorded.
	count, err := f.svc.RunSweep(context.Background(), sweepAt)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Second sweep: sink recovered, the alert fires exactly once.
	count, err = f.svc.RunSweep(context.Background(), sweepAt)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, f.notifier.count())
}

func TestRunSweep_CancelledBetweenEvaluations(t *testing.T) {
	t.Parallel()

	f := newFixture(testSettings(), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.RunSweep(ctx, sweepAt)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunSweep_NightShiftCheckOutReminderAfterMidnight(t *testing.T) {
	t.Parallel()

	s := testSettings()
	s.OvertimeAlertEnabled = false
	shiftDate := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC) // Monday
	punch := attendance.Punch{
		StaffID:     testStaff,
		Date:        shiftDate,
		ClockInTime: time.Date(2024, 5, 20, 22, 0, 0, 0, time.UTC),
	}
	f := newFixture(s, []attendance.Punch{punch}, nil)
	f.patterns.patterns[patternID] = nightPattern()

	// Expected checkout is 06:00 on the 21st; with the 60-minute offset the
	// reminder window opens at 07:00. Sweep every 30 minutes across the whole
	// shift and the following morning.
	windowOpens := time.Date(2024, 5, 21, 7, 0, 0, 0, time.UTC)
	last := time.Date(2024, 5, 21, 12, 0, 0, 0, time.UTC)
	total := 0
	for at := punch.ClockInTime; !at.After(last); at = at.Add(30 * time.Minute) {
		n, err := f.svc.RunSweep(context.Background(), at)
		require.NoError(t, err)
		if at.Before(windowOpens) {
			assert.Equal(t, 0, n, "nothing should be due at %s", at)
		}
		total += n
	}

	assert.Equal(t, 1, total)
	require.Equal(t, 1, f.notifier.count())
	assert.Equal(t, alert.KindCheckOutReminder, f.notifier.delivered[0].Kind)
	// The ledger date is the shift date, not the day the reminder fired.
	assert.Equal(t, "2024-05-20", f.notifier.delivered[0].Date)
}

func TestRunSweep_NightShiftOvertimeCrossesMidnight(t *testing.T) {
	t.Parallel()

	p := nightPattern()
	p.CheckOutAlertEnabled = false
	shiftDate := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	punch := attendance.Punch{
		StaffID:     testStaff,
		Date:        shiftDate,
		ClockInTime: time.Date(2024, 5, 20, 22, 0, 0, 0, time.UTC),
	}
	f := newFixture(testSettings(), []attendance.Punch{punch}, nil)
	f.patterns.patterns[patternID] = p

	// 10-hour threshold crossed at 08:00 on the 21st.
	at := time.Date(2024, 5, 21, 8, 30, 0, 0, time.UTC)
	count, err := f.svc.RunSweep(context.Background(), at)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Equal(t, 1, f.notifier.count())
	assert.Equal(t, alert.KindOvertime, f.notifier.delivered[0].Kind)
	assert.Equal(t, "2024-05-20", f.notifier.delivered[0].Date)
}

func TestRunSweep_LeaveSuppressesCheckInReminder(t *testing.T) {
	t.Parallel()

	f := newFixture(testSettings(), nil, nil)
	f.leaves.records = []leave.Record{{
		StaffID:        testStaff,
		OrganizationID: testOrg,
		Date:           time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		Type:           leave.TypePaid,
	}}

	count, err := f.svc.RunSweep(context.Background(), sweepAt)

	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, 0, f.notifier.count())
}

// ===== DAILY REPORT TESTS =====

func TestRunSweep_DailyReport(t *testing.T) {
	t.Parallel()

	s := testSettings()
	s.AdminDailyReportEnabled = true
	s.AdminDailyReportTime = "09:00"

	sunday := time.Date(2024, 5, 19, 0, 0, 0, 0, time.UTC)
	out := time.Date(2024, 5, 19, 17, 0, 0, 0, time.UTC)
	completed := attendance.Punch{
		StaffID:        "staff-2",
		OrganizationID: testOrg,
		Date:           sunday,
		ClockInTime:    sunday.Add(9 * time.Hour),
		ClockOutTime:   &out,
		BreakMinutes:   60,
	}
	inProgress := attendance.Punch{
		StaffID:        "staff-3",
		OrganizationID: testOrg,
		Date:           sunday,
		ClockInTime:    sunday.Add(9 * time.Hour),
	}
	f := newFixture(s, []attendance.Punch{completed, inProgress}, nil)

	// The fixture staff's own check-in reminder also fires at noon.
	count, err := f.svc.RunSweep(context.Background(), sweepAt)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var report *alert.Payload
	for i := range f.notifier.delivered {
		if f.notifier.delivered[i].Kind == alert.KindDailyReport {
			report = &f.notifier.delivered[i]
		}
	}
	require.NotNil(t, report)
	assert.Equal(t, testOrg, report.SubjectID)
	assert.Equal(t, "2024-05-19", report.Date)
	assert.Equal(t, 2, report.Metadata["total_punches"])
	assert.Equal(t, 1, report.Metadata["completed"])
	assert.Equal(t, 1, report.Metadata["in_progress"])
	// 8 hours minus the 60-minute break.
	assert.Equal(t, 420, report.Metadata["avg_work_minutes"])

	// Second sweep the same day dispatches nothing.
	count, err = f.svc.RunSweep(context.Background(), sweepAt)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRunSweep_DailyReportNotDueBeforeReportTime(t *testing.T) {
	t.Parallel()

	s := testSettings()
	s.AdminDailyReportEnabled = true
	s.AdminDailyReportTime = "13:00"
	f := newFixture(s, nil, nil)

	// Noon sweep: only the check-in reminder is due.
	count, err := f.svc.RunSweep(context.Background(), sweepAt)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	for _, p := range f.notifier.delivered {
		assert.NotEqual(t, alert.KindDailyReport, p.Kind)
	}
}

// ===== CREDENTIAL EXPIRY SWEEP TESTS =====

func TestCredentialExpirySweep(t *testing.T) {
	t.Parallel()

	s := testSettings()
	s.CredentialExpiryAlertEnabled = true
	expiring := terminal.Terminal{
		ID:             "term-1",
		OrganizationID: testOrg,
		DeviceName:     "Front desk tablet",
		IsActive:       true,
		TokenExpiresAt: time.Date(2024, 5, 20, 23, 59, 59, 0, time.UTC),
	}
	healthy := terminal.Terminal{
		ID:             "term-2",
		OrganizationID: testOrg,
		DeviceName:     "Site kiosk",
		IsActive:       true,
		TokenExpiresAt: time.Date(2024, 6, 10, 23, 59, 59, 0, time.UTC),
	}
	f := newFixture(s, nil, []terminal.Terminal{expiring, healthy})

	count, err := f.svc.RunCredentialExpirySweep(context.Background(), sweepAt)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Equal(t, 1, f.notifier.count())
	assert.Equal(t, alert.KindCredentialExpiry, f.notifier.delivered[0].Kind)
	assert.Equal(t, "term-1", f.notifier.delivered[0].SubjectID)

	// Idempotent within the same day.
	count, err = f.svc.RunCredentialExpirySweep(context.Background(), sweepAt)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCredentialExpirySweep_DisabledByOrgSetting(t *testing.T) {
	t.Parallel()

	expiring := terminal.Terminal{
		ID:             "term-1",
		OrganizationID: testOrg,
		IsActive:       true,
		TokenExpiresAt: time.Date(2024, 5, 20, 23, 59, 59, 0, time.UTC),
	}
	f := newFixture(testSettings(), nil, []terminal.Terminal{expiring})

	count, err := f.svc.RunCredentialExpirySweep(context.Background(), sweepAt)

	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
