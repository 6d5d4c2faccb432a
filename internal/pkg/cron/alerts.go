package cron

import (
	"context"
	"log/slog"
	"time"

	alertservice "github.com/cmlabs-hris/attendance-engine-go/internal/service/alert"
)

type AlertJobs struct {
	alertSvc      *alertservice.Service
	sweepInterval time.Duration
}

func NewAlertJobs(alertSvc *alertservice.Service, sweepInterval time.Duration) *AlertJobs {
	return &AlertJobs{
		alertSvc:      alertSvc,
		sweepInterval: sweepInterval,
	}
}

func (j *AlertJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("attendance_alert_sweep", j.sweepInterval, j.RunAttendanceSweep)
	scheduler.AddJob("credential_expiry_sweep", 1*time.Hour, j.RunCredentialExpirySweep)
}

func (j *AlertJobs) RunAttendanceSweep(ctx context.Context) error {
	dispatched, err := j.alertSvc.RunSweep(ctx, time.Now())
	if err != nil {
		return err
	}
	if dispatched > 0 {
		slog.Info("Cron: Attendance alert sweep dispatched alerts", "count", dispatched)
	}
	return nil
}

func (j *AlertJobs) RunCredentialExpirySweep(ctx context.Context) error {
	dispatched, err := j.alertSvc.RunCredentialExpirySweep(ctx, time.Now())
	if err != nil {
		return err
	}
	if dispatched > 0 {
		slog.Info("Cron: Credential expiry sweep dispatched alerts", "count", dispatched)
	}
	return nil
}
