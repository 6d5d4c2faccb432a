package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/pattern"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-engine-go/internal/handler/http/response"
	patternservice "github.com/cmlabs-hris/attendance-engine-go/internal/service/pattern"
	"github.com/go-chi/chi/v5"
)

type WorkPatternHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type WorkPatternHandlerImpl struct {
	patternService *patternservice.Service
}

func NewWorkPatternHandler(patternService *patternservice.Service) WorkPatternHandler {
	return &WorkPatternHandlerImpl{patternService: patternService}
}

// Create implements WorkPatternHandler.
func (h *WorkPatternHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req pattern.CreateWorkPatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.patternService.Create(r.Context(), identity.OrganizationID, req)
	if err != nil {
		slog.Error("Failed to create work pattern", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work pattern created successfully", pattern.ToResponse(created))
}

// List implements WorkPatternHandler.
func (h *WorkPatternHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	patterns, err := h.patternService.List(r.Context(), identity.OrganizationID)
	if err != nil {
		slog.Error("Failed to list work patterns", "error", err)
		response.HandleError(w, err)
		return
	}

	out := make([]pattern.WorkPatternResponse, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, pattern.ToResponse(p))
	}
	response.Success(w, out)
}

// GetByID implements WorkPatternHandler.
func (h *WorkPatternHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	p, err := h.patternService.GetByID(r.Context(), chi.URLParam(r, "id"), identity.OrganizationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, pattern.ToResponse(p))
}

// Update implements WorkPatternHandler.
func (h *WorkPatternHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req pattern.UpdateWorkPatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.patternService.Update(r.Context(), chi.URLParam(r, "id"), identity.OrganizationID, req)
	if err != nil {
		slog.Error("Failed to update work pattern", "pattern_id", chi.URLParam(r, "id"), "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work pattern updated successfully", pattern.ToResponse(updated))
}

// Delete implements WorkPatternHandler.
func (h *WorkPatternHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.patternService.Delete(r.Context(), chi.URLParam(r, "id"), identity.OrganizationID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work pattern deleted successfully", nil)
}
