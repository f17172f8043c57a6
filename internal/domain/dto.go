package domain

import (
	"github.com/google/uuid"
)

// DTOs for API responses

type ServiceDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	NameEN        string    `json:"nameEn"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description,omitempty"`
	DescriptionEN string    `json:"descriptionEn,omitempty"`
	Icon          string    `json:"icon,omitempty"`
	LeadPrice     float64   `json:"leadPrice"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     string    `json:"createdAt"` // ISO 8601
	UpdatedAt     string    `json:"updatedAt"` // ISO 8601
}

type CityDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt string    `json:"createdAt"` // ISO 8601
}

type CompanyDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Whatsapp      string    `json:"whatsapp,omitempty"`
	ServiceIDs    []string  `json:"serviceIds"`
	Cities        []string  `json:"cities"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     string    `json:"createdAt"` // ISO 8601
	UpdatedAt     string    `json:"updatedAt"` // ISO 8601
}

type LeadDTO struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone"`
	Email          *string    `json:"email,omitempty"`
	City           string     `json:"city"`
	PLZ            string     `json:"plz"`
	ServiceID      *uuid.UUID `json:"serviceId,omitempty"`
	ServiceName    string     `json:"serviceName,omitempty"`
	ServiceDetails string     `json:"serviceDetails"`
	Timeline       Timeline   `json:"timeline"`
	Status         LeadStatus `json:"status"`
	Source         string     `json:"source"`
	AdminNotes     *string    `json:"adminNotes,omitempty"`
	CreatedAt      string     `json:"createdAt"` // ISO 8601
}

// LeadWithDetailsDTO includes the lead together with its assignment history
type LeadWithDetailsDTO struct {
	LeadDTO
	Assignments []LeadAssignmentDTO `json:"assignments"`
}

// LeadConfirmationDTO is the public thank-you page payload. Only fields a
// visitor may see; no phone, status or notes.
type LeadConfirmationDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ServiceName string    `json:"serviceName,omitempty"`
	CreatedAt   string    `json:"createdAt"` // ISO 8601
}

type LeadAssignmentDTO struct {
	ID            uuid.UUID `json:"id"`
	LeadID        uuid.UUID `json:"leadId"`
	CompanyID     uuid.UUID `json:"companyId"`
	CompanyName   string    `json:"companyName,omitempty"`
	AssignedBy    string    `json:"assignedBy"`
	AssignedAt    string    `json:"assignedAt"` // ISO 8601
	AmountCharged float64   `json:"amountCharged"`
}

// AssignmentResultDTO reports the outcome per company of a batch assignment
type AssignmentResultDTO struct {
	CompanyID     uuid.UUID  `json:"companyId"`
	AssignmentID  *uuid.UUID `json:"assignmentId,omitempty"`
	AmountCharged float64    `json:"amountCharged,omitempty"`
	Success       bool       `json:"success"`
	Error         string     `json:"error,omitempty"`
}

type DashboardStatsDTO struct {
	LeadsToday      int64   `json:"leadsToday"`
	LeadsYesterday  int64   `json:"leadsYesterday"`
	LeadsThisWeek   int64   `json:"leadsThisWeek"`
	LeadsLastWeek   int64   `json:"leadsLastWeek"`
	ActiveCompanies int64   `json:"activeCompanies"`
	RevenueThisWeek float64 `json:"revenueThisWeek"`
	RevenueLastWeek float64 `json:"revenueLastWeek"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// PaginatedResponse wraps list responses with pagination metadata
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// Request DTOs

// CreateLeadRequest is the public intake payload. Phone and details get a
// second pass of checks in the service layer beyond these tags.
type CreateLeadRequest struct {
	Name           string   `json:"name" validate:"required,min=2,max=100"`
	Phone          string   `json:"phone" validate:"required,max=50"`
	Email          string   `json:"email,omitempty" validate:"omitempty,email,max=255"`
	City           string   `json:"city" validate:"required,max=100"`
	PLZ            string   `json:"plz" validate:"required,len=5,numeric"`
	ServiceID      *string  `json:"serviceId,omitempty" validate:"omitempty,uuid"`
	ServiceDetails string   `json:"serviceDetails" validate:"required,min=20,max=2000"`
	Timeline       Timeline `json:"timeline" validate:"required,oneof=sofort diese_woche diesen_monat flexibel"`
}

// LeadCreatedResponse is returned on successful intake
type LeadCreatedResponse struct {
	Success bool      `json:"success"`
	LeadID  uuid.UUID `json:"leadId"`
}

type UpdateLeadStatusRequest struct {
	Status LeadStatus `json:"status" validate:"required,oneof=new contacted converted"`
}

type UpdateLeadNotesRequest struct {
	AdminNotes string `json:"adminNotes" validate:"max=5000"`
}

type BulkLeadStatusRequest struct {
	LeadIDs []uuid.UUID `json:"leadIds" validate:"required,min=1,dive,required"`
	Status  LeadStatus  `json:"status" validate:"required,oneof=new contacted converted"`
}

type AssignLeadRequest struct {
	CompanyIDs []uuid.UUID `json:"companyIds" validate:"required,min=1,dive,required"`
}

type CreateCompanyRequest struct {
	Name          string   `json:"name" validate:"required,max=200"`
	ContactPerson string   `json:"contactPerson,omitempty" validate:"max=200"`
	Email         string   `json:"email" validate:"required,email,max=255"`
	Phone         string   `json:"phone" validate:"required,max=50"`
	Whatsapp      string   `json:"whatsapp,omitempty" validate:"max=50"`
	ServiceIDs    []string `json:"serviceIds" validate:"required,min=1,dive,uuid"`
	Cities        []string `json:"cities" validate:"required,min=1,dive,required,max=100"`
	IsActive      *bool    `json:"isActive,omitempty"`
}

type UpdateCompanyRequest struct {
	Name          string   `json:"name" validate:"required,max=200"`
	ContactPerson string   `json:"contactPerson,omitempty" validate:"max=200"`
	Email         string   `json:"email" validate:"required,email,max=255"`
	Phone         string   `json:"phone" validate:"required,max=50"`
	Whatsapp      string   `json:"whatsapp,omitempty" validate:"max=50"`
	ServiceIDs    []string `json:"serviceIds" validate:"required,min=1,dive,uuid"`
	Cities        []string `json:"cities" validate:"required,min=1,dive,required,max=100"`
	IsActive      *bool    `json:"isActive,omitempty"`
}

type UpdateServiceRequest struct {
	Name          string  `json:"name" validate:"required,max=200"`
	NameEN        string  `json:"nameEn" validate:"required,max=200"`
	Description   string  `json:"description,omitempty"`
	DescriptionEN string  `json:"descriptionEn,omitempty"`
	Icon          string  `json:"icon,omitempty" validate:"max=100"`
	LeadPrice     float64 `json:"leadPrice" validate:"gte=0"`
}

type CreateCityRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// SetActiveRequest toggles the is_active flag on services and cities
type SetActiveRequest struct {
	IsActive bool `json:"isActive"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=255"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"` // ISO 8601
	Email     string `json:"email"`
}
