package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lynck-services/lead-api/internal/domain"
	"github.com/lynck-services/lead-api/internal/repository"
	"github.com/lynck-services/lead-api/internal/service"
	"go.uber.org/zap"
)

type LeadHandler struct {
	leadService *service.LeadService
	logger      *zap.Logger
}

func NewLeadHandler(leadService *service.LeadService, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
		logger:      logger,
	}
}

// Create godoc
// @Summary Submit a lead
// @Description Public lead intake from the website form. Either every check passes and the lead is stored, or nothing is written.
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body domain.CreateLeadRequest true "Lead data"
// @Success 201 {object} domain.LeadCreatedResponse
// @Failure 400 {object} domain.APIError "Per-field validation errors"
// @Failure 500 {object} domain.ErrorResponse
// @Router /leads [post]
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLeadRequest
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

	result, err := h.leadService.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPhone):
			respondFieldErrors(w, map[string]string{
				"phone": "Must be a German phone number starting with +49 or 0",
			})
		case errors.Is(err, service.ErrUnknownCity):
			respondFieldErrors(w, map[string]string{
				"city": "This city is not in our service area",
			})
		case errors.Is(err, service.ErrServiceNotFound):
			respondFieldErrors(w, map[string]string{
				"serviceId": "Unknown service",
			})
		default:
			h.logger.Error("failed to create lead", zap.Error(err))
			respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
				Error:   "Internal Server Error",
				Message: "Failed to submit lead",
			})
		}
		return
	}

	w.Header().Set("Location", "/api/v1/leads/"+result.LeadID.String()+"/confirmation")
	respondJSON(w, http.StatusCreated, result)
}

// GetConfirmation godoc
// @Summary Lead confirmation
// @Description Public thank-you page lookup. Returns only fields a visitor may see.
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID" format(uuid)
// @Success 200 {object} domain.LeadConfirmationDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /leads/{id}/confirmation [get]
func (h *LeadHandler) GetConfirmation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid lead ID format",
		})
		return
	}

	confirmation, err := h.leadService.GetConfirmation(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Lead not found",
			})
			return
		}
		h.logger.Error("failed to get lead confirmation", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get confirmation",
		})
		return
	}

	respondJSON(w, http.StatusOK, confirmation)
}

// List godoc
// @Summary List leads
// @Description Get paginated list of leads with optional filters, newest first
// @Tags Leads
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(25)
// @Param search query string false "Search by name, phone or email"
// @Param serviceId query string false "Filter by service" format(uuid)
// @Param city query string false "Filter by city"
// @Param status query string false "Filter by status" Enums(new, contacted, converted)
// @Param dateFrom query string false "Created at or after (RFC 3339)"
// @Param dateTo query string false "Created at or before (RFC 3339)"
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.LeadDTO}
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/leads [get]
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = 25
	}

	filter := repository.LeadFilter{
		Search: r.URL.Query().Get("search"),
		City:   r.URL.Query().Get("city"),
		Status: domain.LeadStatus(r.URL.Query().Get("status")),
	}

	if raw := r.URL.Query().Get("serviceId"); raw != "" {
		serviceID, err := uuid.Parse(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid serviceId format",
			})
			return
		}
		filter.ServiceID = &serviceID
	}
	if raw := r.URL.Query().Get("dateFrom"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid dateFrom format, expected RFC 3339",
			})
			return
		}
		filter.DateFrom = &from
	}
	if raw := r.URL.Query().Get("dateTo"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
				Error:   "Bad Request",
				Message: "Invalid dateTo format, expected RFC 3339",
			})
			return
		}
		filter.DateTo = &to
	}

	result, err := h.leadService.List(r.Context(), page, pageSize, filter)
	if err != nil {
		h.logger.Error("failed to list leads", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list leads",
		})
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID godoc
// @Summary Get lead by ID
// @Description Get a lead with its service and assignment history
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID" format(uuid)
// @Success 200 {object} domain.LeadWithDetailsDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/leads/{id} [get]
func (h *LeadHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid lead ID format",
		})
		return
	}

	lead, err := h.leadService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Lead not found",
			})
			return
		}
		h.logger.Error("failed to get lead", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get lead",
		})
		return
	}

	respondJSON(w, http.StatusOK, lead)
}

// UpdateStatus godoc
// @Summary Update lead status
// @Description Move a lead to any of the known statuses
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID" format(uuid)
// @Param request body domain.UpdateLeadStatusRequest true "New status"
// @Success 204
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/leads/{id}/status [patch]
func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid lead ID format",
		})
		return
	}

	var req domain.UpdateLeadStatusRequest
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

	if err := h.leadService.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Lead not found",
			})
			return
		}
		h.logger.Error("failed to update lead status", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update lead status",
		})
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// UpdateNotes godoc
// @Summary Update admin notes
// @Description Replace the admin notes on a lead; an empty string clears them
// @Tags Leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID" format(uuid)
// @Param request body domain.UpdateLeadNotesRequest true "Notes"
// @Success 204
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/leads/{id}/notes [patch]
func (h *LeadHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid lead ID format",
		})
		return
	}

	var req domain.UpdateLeadNotesRequest
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

	if err := h.leadService.UpdateNotes(r.Context(), id, req.AdminNotes); err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Lead not found",
			})
			return
		}
		h.logger.Error("failed to update lead notes", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update lead notes",
		})
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// Delete godoc
// @Summary Delete lead
// @Description Hard-delete a lead and its assignment history
// @Tags Leads
// @Produce json
// @Param id path string true "Lead ID" format(uuid)
// @Success 204
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/leads/{id} [delete]
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid lead ID format",
		})
		return
	}

	if err := h.leadService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrLeadNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Lead not found",
			})
			return
		}
		h.logger.Error("failed to delete lead", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to delete lead",
		})
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// BulkUpdateStatus godoc
// @Summary Bulk update lead status
// @Description Move several leads to the same status in one statement
// @Tags Leads
// @Accept json
// @Produce json
// @Param request body domain.BulkLeadStatusRequest true "Lead IDs and target status"
// @Success 200 {object} map[string]int64
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/leads/bulk/status [post]
func (h *LeadHandler) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req domain.BulkLeadStatusRequest
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

	updated, err := h.leadService.BulkUpdateStatus(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to bulk update lead status", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update leads",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}
