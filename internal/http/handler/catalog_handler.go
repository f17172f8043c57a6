package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lynck-services/lead-api/internal/domain"
	"github.com/lynck-services/lead-api/internal/service"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
	logger         *zap.Logger
}

func NewCatalogHandler(catalogService *service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListServices godoc
// @Summary List services
// @Description Active services offered on the site, ordered by name
// @Tags Catalog
// @Produce json
// @Success 200 {array} domain.ServiceDTO
// @Router /services [get]
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalogService.ListActiveServices(r.Context())
	if err != nil {
		h.logger.Error("failed to list services", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list services",
		})
		return
	}

	respondJSON(w, http.StatusOK, services)
}

// GetServiceBySlug godoc
// @Summary Get service by slug
// @Description Look up an active service by its URL slug
// @Tags Catalog
// @Produce json
// @Param slug path string true "Service slug"
// @Success 200 {object} domain.ServiceDTO
// @Failure 404 {object} domain.ErrorResponse
// @Router /services/{slug} [get]
func (h *CatalogHandler) GetServiceBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	svc, err := h.catalogService.GetServiceBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Service not found",
			})
			return
		}
		h.logger.Error("failed to get service", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to get service",
		})
		return
	}

	respondJSON(w, http.StatusOK, svc)
}

// ListCities godoc
// @Summary List cities
// @Description Active cities in the service area, ordered by name
// @Tags Catalog
// @Produce json
// @Success 200 {array} domain.CityDTO
// @Router /cities [get]
func (h *CatalogHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.catalogService.ListActiveCities(r.Context())
	if err != nil {
		h.logger.Error("failed to list cities", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list cities",
		})
		return
	}

	respondJSON(w, http.StatusOK, cities)
}

// ListAllServices godoc
// @Summary List all services
// @Description All services including inactive ones
// @Tags Catalog
// @Produce json
// @Success 200 {array} domain.ServiceDTO
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/services [get]
func (h *CatalogHandler) ListAllServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalogService.ListAllServices(r.Context())
	if err != nil {
		h.logger.Error("failed to list services", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list services",
		})
		return
	}

	respondJSON(w, http.StatusOK, services)
}

// UpdateService godoc
// @Summary Update service
// @Description Edit a service's texts and lead price. The slug stays fixed.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Service ID" format(uuid)
// @Param request body domain.UpdateServiceRequest true "Service data"
// @Success 200 {object} domain.ServiceDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/services/{id} [put]
func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid service ID format",
		})
		return
	}

	var req domain.UpdateServiceRequest
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

	svc, err := h.catalogService.UpdateService(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Service not found",
			})
			return
		}
		h.logger.Error("failed to update service", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to update service",
		})
		return
	}

	respondJSON(w, http.StatusOK, svc)
}

// SetServiceActive godoc
// @Summary Toggle service
// @Description Activate or deactivate a service. Services are never deleted.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Service ID" format(uuid)
// @Param request body domain.SetActiveRequest true "Active flag"
// @Success 204
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/services/{id}/active [patch]
func (h *CatalogHandler) SetServiceActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid service ID format",
		})
		return
	}

	var req domain.SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := h.catalogService.SetServiceActive(r.Context(), id, req.IsActive); err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "Service not found",
			})
			return
		}
		h.logger.Error("failed to toggle service", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to toggle service",
		})
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// ListAllCities godoc
// @Summary List all cities
// @Description All cities including inactive ones
// @Tags Catalog
// @Produce json
// @Success 200 {array} domain.CityDTO
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/cities [get]
func (h *CatalogHandler) ListAllCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.catalogService.ListAllCities(r.Context())
	if err != nil {
		h.logger.Error("failed to list cities", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to list cities",
		})
		return
	}

	respondJSON(w, http.StatusOK, cities)
}

// CreateCity godoc
// @Summary Create city
// @Description Add a city to the service area
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body domain.CreateCityRequest true "City data"
// @Success 201 {object} domain.CityDTO
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/cities [post]
func (h *CatalogHandler) CreateCity(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCityRequest
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

	city, err := h.catalogService.CreateCity(r.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			respondJSON(w, http.StatusConflict, domain.ErrorResponse{
				Error:   "Conflict",
				Message: "City already exists",
			})
			return
		}
		h.logger.Error("failed to create city", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to create city",
		})
		return
	}

	respondJSON(w, http.StatusCreated, city)
}

// SetCityActive godoc
// @Summary Toggle city
// @Description Activate or deactivate a city. Cities are never deleted.
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "City ID" format(uuid)
// @Param request body domain.SetActiveRequest true "Active flag"
// @Success 204
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /admin/cities/{id}/active [patch]
func (h *CatalogHandler) SetCityActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid city ID format",
		})
		return
	}

	var req domain.SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request body",
		})
		return
	}

	if err := h.catalogService.SetCityActive(r.Context(), id, req.IsActive); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
				Error:   "Not Found",
				Message: "City not found",
			})
			return
		}
		h.logger.Error("failed to toggle city", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "Failed to toggle city",
		})
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
