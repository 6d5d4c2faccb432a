package alert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/alert"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/pattern"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/staff"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/terminal"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-engine-go/internal/service/policy"
	"github.com/google/uuid"
)

// Service runs the periodic alert sweep. Each (subject, date, kind)
// evaluation is independently atomic: the ledger's insert-if-absent is what
// makes overlapping sweeps safe, not external locking.
type Service struct {
	settingsRepo settings.Repository
	holidayRepo  settings.HolidayRepository
	profileRepo  staff.ProfileRepository
	patternRepo  pattern.Repository
	punchRepo    attendance.Repository
	leaveRepo    leave.Repository
	terminalRepo terminal.Repository
	ledger       alert.Ledger
	notifier     alert.Notifier

	sinkTimeout           time.Duration
	credentialWarningDays int
}

func NewService(
	settingsRepo settings.Repository,
	holidayRepo settings.HolidayRepository,
	profileRepo staff.ProfileRepository,
	patternRepo pattern.Repository,
	punchRepo attendance.Repository,
	leaveRepo leave.Repository,
	terminalRepo terminal.Repository,
	ledger alert.Ledger,
	notifier alert.Notifier,
	sinkTimeout time.Duration,
	credentialWarningDays int,
) *Service {
	if sinkTimeout <= 0 {
		sinkTimeout = 5 * time.Second
	}
	if credentialWarningDays <= 0 {
		credentialWarningDays = 1
	}
	return &Service{
		settingsRepo:          settingsRepo,
		holidayRepo:           holidayRepo,
		profileRepo:           profileRepo,
		patternRepo:           patternRepo,
		punchRepo:             punchRepo,
		leaveRepo:             leaveRepo,
		terminalRepo:          terminalRepo,
		ledger:                ledger,
		notifier:              notifier,
		sinkTimeout:           sinkTimeout,
		credentialWarningDays: credentialWarningDays,
	}
}

// RunSweep evaluates every staff member of every organization and dispatches
// each due alert at most once. Both "today" and "yesterday"
// (organization-local) are evaluated: a night shift's expected checkout, and
// the reminder and overtime windows hanging off it, fall on the calendar day
// after the shift date, so yesterday's shift is still live after midnight.
// Store failures are isolated per staff member; only the initial settings
// listing is fatal to the sweep.
func (s *Service) RunSweep(ctx context.Context, now time.Time) (int, error) {
	orgs, err := s.settingsRepo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list organization settings: %w", err)
	}

	dispatched := 0
	for _, org := range orgs {
		if !org.AlertsMasterEnabled {
			continue
		}

		loc := org.Location()
		today := dateOnly(now.In(loc), loc)
		yesterday := today.AddDate(0, 0, -1)

		if org.AdminDailyReportEnabled {
			n, err := s.dispatchDailyReport(ctx, org, yesterday, now)
			if err != nil {
				slog.Error("Sweep: daily report failed", "organization_id", org.OrganizationID, "error", err)
			}
			dispatched += n
		}

		// Each shift date is gated by its own working-day check: a shift
		// that started on a working Friday keeps its checkout window on
		// Saturday morning.
		var dates []time.Time
		holidayLookupFailed := false
		for _, d := range []time.Time{yesterday, today} {
			isHoliday, err := s.holidayRepo.IsHoliday(ctx, d)
			if err != nil {
				slog.Error("Sweep: holiday lookup failed", "organization_id", org.OrganizationID, "error", err)
				holidayLookupFailed = true
				break
			}
			if org.IsWorkingDay(d, isHoliday) {
				dates = append(dates, d)
			}
		}
		if holidayLookupFailed || len(dates) == 0 {
			continue
		}

		profiles, err := s.profileRepo.ListByOrganization(ctx, org.OrganizationID)
		if err != nil {
			slog.Error("Sweep: failed to list staff profiles", "organization_id", org.OrganizationID, "error", err)
			continue
		}

		for _, profile := range profiles {
			// Interruptible between evaluations; each one is atomic.
			if err := ctx.Err(); err != nil {
				return dispatched, err
			}

			for _, shiftDate := range dates {
				n, err := s.sweepStaff(ctx, org, profile, shiftDate, now)
				if err != nil {
					slog.Error("Sweep: staff evaluation failed",
						"organization_id", org.OrganizationID,
						"staff_id", profile.StaffID,
						"shift_date", shiftDate.Format("2006-01-02"),
						"error", err)
					continue
				}
				dispatched += n
			}
		}
	}

	return dispatched, nil
}

// sweepStaff evaluates one staff member for one shift date. The ledger date
// is the shift date, so an alert that only becomes due after midnight still
// fires exactly once for the shift it belongs to.
func (s *Service) sweepStaff(ctx context.Context, org settings.OrganizationSettings, profile staff.AttendanceProfile, shiftDate, now time.Time) (int, error) {
	var pat *pattern.WorkPattern
	if profile.WorkPatternID != nil {
		p, err := s.patternRepo.GetByID(ctx, *profile.WorkPatternID, org.OrganizationID)
		if err != nil {
			if !errors.Is(err, pattern.ErrPatternNotFound) {
				return 0, fmt.Errorf("failed to load work pattern: %w", err)
			}
		} else {
			pat = &p
		}
	}

	pol := policy.Resolve(org, profile, pat)
	if !pol.AnyAlertEnabled() {
		// No applicable policy: alerting silently disabled.
		return 0, nil
	}

	punch, err := s.punchRepo.GetByStaffAndDate(ctx, profile.StaffID, shiftDate, org.OrganizationID)
	if err != nil {
		return 0, fmt.Errorf("failed to load punch: %w", err)
	}

	loc := org.Location()
	dispatched := 0

	if pat != nil {
		expCheckIn, expCheckOut := pattern.ExpectedTimes(*pat, shiftDate, loc)

		if pol.CheckInAlertEnabled && punch == nil && !now.Before(expCheckIn.Add(pol.CheckInAlertOffset)) {
			rec, err := s.leaveRepo.GetByStaffAndDate(ctx, profile.StaffID, shiftDate, org.OrganizationID)
			if err != nil {
				return dispatched, fmt.Errorf("failed to load leave record: %w", err)
			}
			// Staff on approved leave are not expected to check in.
			if rec == nil {
				n, err := s.dispatchOnce(ctx, org.OrganizationID, profile.StaffID, shiftDate, alert.KindCheckInReminder, alert.Payload{
					OrganizationID: org.OrganizationID,
					SubjectID:      profile.StaffID,
					Kind:           alert.KindCheckInReminder,
					Date:           shiftDate.Format("2006-01-02"),
					Message:        fmt.Sprintf("%s has not checked in (expected %s)", profile.DisplayName, expCheckIn.Format("15:04")),
					Metadata: map[string]interface{}{
						"expected_checkin": expCheckIn.Format(time.RFC3339),
					},
				})
				if err != nil {
					return dispatched, err
				}
				dispatched += n
			}
		}

		if pol.CheckOutAlertEnabled && expCheckOut != nil && punch != nil && punch.IsInProgress() &&
			!now.Before(expCheckOut.Add(pol.CheckOutAlertOffset)) {
			n, err := s.dispatchOnce(ctx, org.OrganizationID, profile.StaffID, shiftDate, alert.KindCheckOutReminder, alert.Payload{
				OrganizationID: org.OrganizationID,
				SubjectID:      profile.StaffID,
				Kind:           alert.KindCheckOutReminder,
				Date:           shiftDate.Format("2006-01-02"),
				Message:        fmt.Sprintf("%s has not checked out (expected %s)", profile.DisplayName, expCheckOut.Format("15:04")),
				Metadata: map[string]interface{}{
					"expected_checkout": expCheckOut.Format(time.RFC3339),
				},
			})
			if err != nil {
				return dispatched, err
			}
			dispatched += n
		}
	}

	if pol.OvertimeAlertEnabled && punch != nil && punch.IsInProgress() &&
		now.Sub(punch.ClockInTime) >= pol.OvertimeThreshold {
		n, err := s.dispatchOnce(ctx, org.OrganizationID, profile.StaffID, shiftDate, alert.KindOvertime, alert.Payload{
			OrganizationID: org.OrganizationID,
			SubjectID:      profile.StaffID,
			Kind:           alert.KindOvertime,
			Date:           shiftDate.Format("2006-01-02"),
			Message:        fmt.Sprintf("%s has been clocked in for over %d hours", profile.DisplayName, int(pol.OvertimeThreshold.Hours())),
			Metadata: map[string]interface{}{
				"clock_in": punch.ClockInTime.Format(time.RFC3339),
			},
		})
		if err != nil {
			return dispatched, err
		}
		dispatched += n
	}

	return dispatched, nil
}

// dispatchDailyReport summarizes the previous day's punches for the
// organization's administrators, once the organization-local clock passes
// the configured report time. Keyed on (organization, previous day) in the
// ledger, so the report goes out once per day.
func (s *Service) dispatchDailyReport(ctx context.Context, org settings.OrganizationSettings, reportDate, now time.Time) (int, error) {
	loc := org.Location()
	reportAt, ok := validator.IsValidTimeOfDay(org.AdminDailyReportTime)
	if !ok {
		return 0, fmt.Errorf("invalid admin_daily_report_time %q", org.AdminDailyReportTime)
	}
	due := time.Date(reportDate.Year(), reportDate.Month(), reportDate.Day()+1,
		reportAt.Hour(), reportAt.Minute(), 0, 0, loc)
	if now.Before(due) {
		return 0, nil
	}

	punches, err := s.punchRepo.ListByOrganizationAndDate(ctx, org.OrganizationID, reportDate)
	if err != nil {
		return 0, fmt.Errorf("failed to list punches for daily report: %w", err)
	}

	total := len(punches)
	completed := 0
	open := 0
	var worked time.Duration
	for _, p := range punches {
		if d, ok := p.WorkDuration(); ok {
			completed++
			worked += d
		} else if p.IsInProgress() {
			open++
		}
	}
	avgWorkMinutes := 0
	if completed > 0 {
		avgWorkMinutes = int(worked.Minutes()) / completed
	}

	return s.dispatchOnce(ctx, org.OrganizationID, org.OrganizationID, reportDate, alert.KindDailyReport, alert.Payload{
		OrganizationID: org.OrganizationID,
		SubjectID:      org.OrganizationID,
		Kind:           alert.KindDailyReport,
		Date:           reportDate.Format("2006-01-02"),
		Message: fmt.Sprintf("Attendance summary for %s: %d checked in, %d checked out, %d still open",
			reportDate.Format("2006-01-02"), total, completed, open),
		Metadata: map[string]interface{}{
			"total_punches":    total,
			"completed":        completed,
			"in_progress":      open,
			"avg_work_minutes": avgWorkMinutes,
		},
	})
}

// RunCredentialExpirySweep alerts once per (terminal, date) when an active
// kiosk terminal's credential is inside its expiry warning window.
func (s *Service) RunCredentialExpirySweep(ctx context.Context, now time.Time) (int, error) {
	orgs, err := s.settingsRepo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list organization settings: %w", err)
	}
	byOrg := make(map[string]settings.OrganizationSettings, len(orgs))
	for _, org := range orgs {
		byOrg[org.OrganizationID] = org
	}

	deadline := now.Add(time.Duration(s.credentialWarningDays) * 24 * time.Hour)
	terminals, err := s.terminalRepo.ListExpiringBy(ctx, deadline)
	if err != nil {
		return 0, fmt.Errorf("failed to list expiring terminals: %w", err)
	}

	dispatched := 0
	for _, t := range terminals {
		if err := ctx.Err(); err != nil {
			return dispatched, err
		}

		org, ok := byOrg[t.OrganizationID]
		if !ok || !org.AlertsMasterEnabled || !org.CredentialExpiryAlertEnabled {
			continue
		}
		if !t.TokenValidAt(now) {
			// Already expired: rotation, not a warning, is the remedy.
			continue
		}

		loc := org.Location()
		today := dateOnly(now.In(loc), loc)

		n, err := s.dispatchOnce(ctx, t.OrganizationID, t.ID, today, alert.KindCredentialExpiry, alert.Payload{
			OrganizationID: t.OrganizationID,
			SubjectID:      t.ID,
			Kind:           alert.KindCredentialExpiry,
			Date:           today.Format("2006-01-02"),
			Message:        fmt.Sprintf("Kiosk credential for %q expires at %s", t.DeviceName, t.TokenExpiresAt.In(loc).Format("2006-01-02 15:04")),
			Metadata: map[string]interface{}{
				"terminal_id": t.ID,
				"expires_at":  t.TokenExpiresAt.Format(time.RFC3339),
			},
		})
		if err != nil {
			slog.Error("Sweep: terminal evaluation failed", "terminal_id", t.ID, "error", err)
			continue
		}
		dispatched += n
	}

	return dispatched, nil
}

// dispatchOnce delivers one due alert at most once. The ledger is consulted
// first; delivery runs under a short timeout so a stuck sink cannot stall
// the sweep; the record insert treats a uniqueness violation as "already
// dispatched". A delivery failure leaves no record, so the next sweep
// retries. A written record with an unconfirmed delivery is accepted
// best-effort loss: never re-fire.
func (s *Service) dispatchOnce(ctx context.Context, organizationID, subjectID string, date time.Time, kind alert.Kind, payload alert.Payload) (int, error) {
	exists, err := s.ledger.Exists(ctx, organizationID, subjectID, date, kind)
	if err != nil {
		return 0, fmt.Errorf("failed to check dispatch ledger: %w", err)
	}
	if exists {
		return 0, nil
	}

	deliverCtx, cancel := context.WithTimeout(ctx, s.sinkTimeout)
	err = s.notifier.Deliver(deliverCtx, payload)
	cancel()
	if err != nil {
		slog.Warn("Sweep: notification sink unavailable, will retry next sweep",
			"subject_id", subjectID,
			"kind", kind,
			"error", fmt.Errorf("%w: %v", alert.ErrSinkUnavailable, err))
		return 0, nil
	}

	inserted, err := s.ledger.Record(ctx, alert.DispatchRecord{
		ID:             uuid.NewString(),
		OrganizationID: organizationID,
		SubjectID:      subjectID,
		Date:           date,
		Kind:           kind,
		FiredAt:        time.Now().UTC(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to record dispatch: %w", err)
	}
	if !inserted {
		// A concurrent sweep won the race; its record stands.
		return 0, nil
	}

	return 1, nil
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
