package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lynck-services/lead-api/internal/auth"
	"github.com/lynck-services/lead-api/internal/domain"
	"github.com/lynck-services/lead-api/internal/service"
	"go.uber.org/zap"
)

type AssignmentHandler struct {
	assignmentService *service.AssignmentService
	logger            *zap.Logger
}

func NewAssignmentHandler(assignmentService *service.AssignmentService, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		logger:            logger,
	}
}

// GetMatches godoc
// @Summary Find matching companies
// @Description Active companies covering the lead's service and city, ordered by name. A lead without a service matches nothing.
// @Tags Assignments
// @Produce json
// @Param id path string true "Lead ID" format(uuid)
// @Success 200 {array} domain.CompanyDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/leads/{id}/matches [get]
func (h *AssignmentHandler) GetMatches(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid lead ID format",
		})
		return
	}

	matches, err := h.assignmentService.FindMatches(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Lead not found",
			})
			return
		}
		h.logger.Error("failed to find matching companies", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to find matching companies",
		})
		return
	}

	respondJSON(w, http.StatusOK, matches)
}

// Assign godoc
// @Summary Assign lead to companies
// @Description Sell the lead to each company with the price snapshotted at assignment time. Results are reported per company.
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path string true "Lead ID" format(uuid)
// @Param request body domain.AssignLeadRequest true "Company IDs"
// @Success 200 {array} domain.AssignmentResultDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/leads/{id}/assign [post]
func (h *AssignmentHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid lead ID format",
		})
		return
	}

	var req domain.AssignLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	assignedBy := "system"
	if adminCtx, ok := auth.FromContext(r.Context()); ok {
		assignedBy = adminCtx.Email
	}

	results, err := h.assignmentService.Assign(r.Context(), id, &req, assignedBy)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Lead not found",
			})
			return
		}
		h.logger.Error("failed to assign lead", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to assign lead",
		})
		return
	}

	respondJSON(w, http.StatusOK, results)
}

// ListByLead godoc
// @Summary List lead assignments
// @Description Assignment history for a lead, newest first
// @Tags Assignments
// @Produce json
// @Param id path string true "Lead ID" format(uuid)
// @Success 200 {array} domain.LeadAssignmentDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/leads/{id}/assignments [get]
func (h *AssignmentHandler) ListByLead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid lead ID format",
		})
		return
	}

	assignments, err := h.assignmentService.ListByLead(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Lead not found",
			})
			return
		}
		h.logger.Error("failed to list assignments", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list assignments",
		})
		return
	}

	respondJSON(w, http.StatusOK, assignments)
}

// Delete godoc
// @Summary Delete assignment
// @Description Un-assign a lead from a company
// @Tags Assignments
// @Produce json
// @Param id path string true "Assignment ID" format(uuid)
// @Success 204
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/assignments/{id} [delete]
func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid assignment ID format",
		})
		return
	}

	if err := h.assignmentService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Assignment not found",
			})
			return
		}
		h.logger.Error("failed to delete assignment", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete assignment",
		})
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
