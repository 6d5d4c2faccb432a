package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/staff"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/validator"
	statusservice "github.com/cmlabs-hris/attendance-engine-go/internal/service/status"
)

type StatusHandler interface {
	ListMine(w http.ResponseWriter, r *http.Request)
	ListForStaff(w http.ResponseWriter, r *http.Request)
}

type StatusHandlerImpl struct {
	statusService *statusservice.Service
}

func NewStatusHandler(statusService *statusservice.Service) StatusHandler {
	return &StatusHandlerImpl{statusService: statusService}
}

// ListMine implements StatusHandler. Staff members read their own range.
func (h *StatusHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	h.list(w, r, identity.OrganizationID, identity.StaffID)
}

// ListForStaff implements StatusHandler. Admin view of any staff member.
func (h *StatusHandlerImpl) ListForStaff(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	staffID := r.URL.Query().Get("staff_id")
	if staffID == "" {
		response.BadRequest(w, "Query parameter 'staff_id' is required", nil)
		return
	}
	if identity.Role != string(staff.RoleAdmin) && staffID != identity.StaffID {
		response.Forbidden(w, "Administrator role required to view other staff members")
		return
	}

	h.list(w, r, identity.OrganizationID, staffID)
}

func (h *StatusHandlerImpl) list(w http.ResponseWriter, r *http.Request, organizationID, staffID string) {
	from, ok := parseDateParam(r, "from")
	if !ok {
		response.BadRequest(w, "Query parameter 'from' must be a YYYY-MM-DD date", nil)
		return
	}
	to, ok := parseDateParam(r, "to")
	if !ok {
		response.BadRequest(w, "Query parameter 'to' must be a YYYY-MM-DD date", nil)
		return
	}
	if to.Before(from) {
		response.BadRequest(w, "'to' must not be before 'from'", nil)
		return
	}

	statuses, err := h.statusService.ResolveDailyStatuses(r.Context(), organizationID, staffID, from, to)
	if err != nil {
		slog.Error("Failed to resolve daily statuses", "staff_id", staffID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.ToStatusResponses(statuses))
}

func parseDateParam(r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if _, valid := validator.IsValidDate(raw); !valid {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
