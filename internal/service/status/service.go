package status

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/settings"
)

// Service is the day resolver: it merges punches, leave records and the
// working-day calendar into exactly one DailyStatus per staff member per
// calendar date. It holds no state; resolving twice over unchanged data
// yields identical output. The only wall-clock dependence is the cutoff
// that excludes dates after "today" in the organization's zone.
type Service struct {
	settingsRepo settings.Repository
	holidayRepo  settings.HolidayRepository
	punchRepo    attendance.Repository
	leaveRepo    leave.Repository
	now          func() time.Time
}

func NewService(
	settingsRepo settings.Repository,
	holidayRepo settings.HolidayRepository,
	punchRepo attendance.Repository,
	leaveRepo leave.Repository,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		holidayRepo:  holidayRepo,
		punchRepo:    punchRepo,
		leaveRepo:    leaveRepo,
		now:          time.Now,
	}
}

// WithClock overrides the wall clock. Used by tests and the sweep, which
// evaluates against its own "now".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ResolveDailyStatuses returns one DailyStatus per calendar date between
// from and to inclusive, excluding dates after today in the organization's
// zone. A punch always wins over a coexisting leave record; an invalid
// punch is flagged per date instead of failing the range.
func (s *Service) ResolveDailyStatuses(ctx context.Context, organizationID, staffID string, from, to time.Time) ([]attendance.DailyStatus, error) {
	org, err := s.settingsRepo.GetByOrganization(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load organization settings: %w", err)
	}
	loc := org.Location()

	from = dateOnly(from, loc)
	to = dateOnly(to, loc)
	if to.Before(from) {
		return []attendance.DailyStatus{}, nil
	}

	today := dateOnly(s.now().In(loc), loc)
	if to.After(today) {
		to = today
	}
	if from.After(to) {
		return []attendance.DailyStatus{}, nil
	}

	punches, err := s.punchRepo.ListByStaffAndRange(ctx, staffID, from, to, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	leaves, err := s.leaveRepo.ListByStaffAndRange(ctx, staffID, from, to, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave records: %w", err)
	}
	holidays, err := s.holidayRepo.ListByRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}

	punchByDate := make(map[string]attendance.Punch, len(punches))
	for _, p := range punches {
		punchByDate[dateKey(p.Date)] = p
	}
	leaveByDate := make(map[string]leave.Record, len(leaves))
	for _, l := range leaves {
		leaveByDate[dateKey(l.Date)] = l
	}

	var statuses []attendance.DailyStatus
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		key := dateKey(d)
		_, isHoliday := holidays[key]

		if p, ok := punchByDate[key]; ok {
			statuses = append(statuses, s.resolveAttendance(org, d, p, isHoliday))
			continue
		}

		if l, ok := leaveByDate[key]; ok {
			leaveType := string(l.Type)
			reason := l.Reason
			statuses = append(statuses, attendance.DailyStatus{
				StaffID:     staffID,
				Date:        d,
				Type:        attendance.StatusLeave,
				LeaveType:   &leaveType,
				LeaveReason: &reason,
			})
			continue
		}

		statuses = append(statuses, attendance.DailyStatus{
			StaffID: staffID,
			Date:    d,
			Type:    attendance.StatusRest,
		})
	}

	return statuses, nil
}

func (s *Service) resolveAttendance(org settings.OrganizationSettings, date time.Time, p attendance.Punch, isHoliday bool) attendance.DailyStatus {
	punch := p
	st := attendance.DailyStatus{
		StaffID:       p.StaffID,
		Date:          date,
		Type:          attendance.StatusAttendance,
		Punch:         &punch,
		IsHolidayWork: !org.IsWorkingDay(date, isHoliday),
	}

	if !p.IsValid() {
		reason := attendance.ErrInvalidPunch.Error()
		st.InvalidPunch = true
		st.InvalidReason = &reason
		return st
	}

	if p.IsInProgress() {
		st.IsInProgress = true
		return st
	}

	if org.AutoBreakDeduction && p.BreakMinutes == 0 {
		punch.BreakMinutes = org.AutoBreakMinutes
	}
	if d, ok := punch.WorkDuration(); ok {
		minutes := int(d.Minutes())
		st.WorkMinutes = &minutes
	}
	return st
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
