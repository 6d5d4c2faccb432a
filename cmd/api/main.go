package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-engine-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-engine-go/internal/repository/postgresql"
	alertService "github.com/cmlabs-hris/attendance-engine-go/internal/service/alert"
	patternService "github.com/cmlabs-hris/attendance-engine-go/internal/service/pattern"
	settingsService "github.com/cmlabs-hris/attendance-engine-go/internal/service/settings"
	statusService "github.com/cmlabs-hris/attendance-engine-go/internal/service/status"
	terminalService "github.com/cmlabs-hris/attendance-engine-go/internal/service/terminal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	settingsRepo := postgresql.NewSettingsRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	patternRepo := postgresql.NewWorkPatternRepository(db)
	profileRepo := postgresql.NewStaffProfileRepository(db)
	punchRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	terminalRepo := postgresql.NewTerminalRepository(db)
	dispatchLedger := postgresql.NewAlertDispatchRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	hub := sse.NewHub()
	notifier := sse.NewAlertNotifier(hub)

	settingsSvc := settingsService.NewService(settingsRepo)
	patternSvc := patternService.NewService(db, patternRepo, profileRepo)
	statusSvc := statusService.NewService(settingsRepo, holidayRepo, punchRepo, leaveRepo)
	terminalSvc := terminalService.NewService(terminalRepo, settingsRepo)
	alertSvc := alertService.NewService(
		settingsRepo,
		holidayRepo,
		profileRepo,
		patternRepo,
		punchRepo,
		leaveRepo,
		terminalRepo,
		dispatchLedger,
		notifier,
		cfg.Alerts.SinkTimeout,
		cfg.Alerts.CredentialWarningDays,
	)

	statusHandler := appHTTP.NewStatusHandler(statusSvc)
	patternHandler := appHTTP.NewWorkPatternHandler(patternSvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsSvc)
	terminalHandler := appHTTP.NewTerminalHandler(terminalSvc)
	alertHandler := appHTTP.NewAlertHandler(alertSvc, cfg.Alerts.CronSecret)
	notificationHandler := appHTTP.NewNotificationHandler(JWTService, hub)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		statusHandler,
		patternHandler,
		settingsHandler,
		terminalHandler,
		alertHandler,
		notificationHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewAlertJobs(alertSvc, cfg.Alerts.SweepInterval).RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down...")
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	db.Close()
}
