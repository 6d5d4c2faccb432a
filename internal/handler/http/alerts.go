package http

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/response"
	alertservice "github.com/cmlabs-hris/attendance-engine-go/internal/service/alert"
)

type AlertHandler interface {
	TriggerSweep(w http.ResponseWriter, r *http.Request)
}

// AlertHandlerImpl exposes the sweep to an external scheduler. The shared
// cron secret is the only authentication; the endpoint is not part of the
// staff-facing API.
type AlertHandlerImpl struct {
	alertService *alertservice.Service
	cronSecret   string
}

func NewAlertHandler(alertService *alertservice.Service, cronSecret string) AlertHandler {
	return &AlertHandlerImpl{
		alertService: alertService,
		cronSecret:   cronSecret,
	}
}

// TriggerSweep implements AlertHandler. Running it twice back to back is
// safe: the dispatch ledger keeps repeated sweeps from re-firing alerts.
func (h *AlertHandlerImpl) TriggerSweep(w http.ResponseWriter, r *http.Request) {
	secret := r.Header.Get("X-Cron-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.cronSecret)) != 1 {
		response.Unauthorized(w, "Invalid cron secret")
		return
	}

	now := time.Now()
	dispatched, err := h.alertService.RunSweep(r.Context(), now)
	if err != nil {
		slog.Error("Manual alert sweep failed", "error", err)
		response.HandleError(w, err)
		return
	}

	credentialAlerts, err := h.alertService.RunCredentialExpirySweep(r.Context(), now)
	if err != nil {
		slog.Error("Manual credential expiry sweep failed", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]int{
		"attendance_alerts": dispatched,
		"credential_alerts": credentialAlerts,
	})
}
