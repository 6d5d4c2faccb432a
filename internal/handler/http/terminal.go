package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/terminal"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/response"
	terminalservice "github.com/cmlabs-hris/attendance-engine-go/internal/service/terminal"
	"github.com/go-chi/chi/v5"
)

type TerminalHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	RotateToken(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	Display(w http.ResponseWriter, r *http.Request)
}

type TerminalHandlerImpl struct {
	terminalService *terminalservice.Service
}

func NewTerminalHandler(terminalService *terminalservice.Service) TerminalHandler {
	return &TerminalHandlerImpl{terminalService: terminalService}
}

// Register implements TerminalHandler. The issued token appears in this
// response only; list and detail responses omit it.
func (h *TerminalHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req terminal.RegisterTerminalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.terminalService.Register(r.Context(), identity.OrganizationID, req, identity.StaffID)
	if err != nil {
		slog.Error("Failed to register terminal", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Terminal registered successfully", terminal.ToResponse(created, true))
}

// List implements TerminalHandler.
func (h *TerminalHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	terminals, err := h.terminalService.List(r.Context(), identity.OrganizationID)
	if err != nil {
		slog.Error("Failed to list terminals", "error", err)
		response.HandleError(w, err)
		return
	}

	out := make([]terminal.TerminalResponse, 0, len(terminals))
	for _, t := range terminals {
		out = append(out, terminal.ToResponse(t, false))
	}
	response.Success(w, out)
}

// GetByID implements TerminalHandler.
func (h *TerminalHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	t, err := h.terminalService.GetByID(r.Context(), chi.URLParam(r, "id"), identity.OrganizationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, terminal.ToResponse(t, false))
}

// RotateToken implements TerminalHandler. The fresh token is returned once;
// the previous token stops validating immediately.
func (h *TerminalHandlerImpl) RotateToken(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	rotated, err := h.terminalService.RotateToken(r.Context(), chi.URLParam(r, "id"), identity.OrganizationID)
	if err != nil {
		slog.Error("Failed to rotate terminal token", "terminal_id", chi.URLParam(r, "id"), "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Terminal token rotated successfully", terminal.ToResponse(rotated, true))
}

// Deactivate implements TerminalHandler.
func (h *TerminalHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.terminalService.Deactivate(r.Context(), chi.URLParam(r, "id"), identity.OrganizationID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Terminal deactivated successfully", nil)
}

// Display implements TerminalHandler. Unauthenticated kiosk endpoint: the
// display credential in the query is the only authentication.
func (h *TerminalHandlerImpl) Display(w http.ResponseWriter, r *http.Request) {
	candidate := r.URL.Query().Get("token")
	if candidate == "" {
		response.BadRequest(w, "Query parameter 'token' is required", nil)
		return
	}

	t, err := h.terminalService.Validate(r.Context(), candidate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, terminal.ToResponse(t, false))
}
