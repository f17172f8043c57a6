package mapper

import (
	"github.com/lynck-services/lead-api/internal/domain"
)

const isoFormat = "2006-01-02T15:04:05Z"

// ToServiceDTO converts Service to ServiceDTO
func ToServiceDTO(service *domain.Service) domain.ServiceDTO {
	return domain.ServiceDTO{
		ID:            service.ID,
		Name:          service.Name,
		NameEN:        service.NameEN,
		Slug:          service.Slug,
		Description:   service.Description,
		DescriptionEN: service.DescriptionEN,
		Icon:          service.Icon,
		LeadPrice:     service.LeadPrice,
		IsActive:      service.IsActive,
		CreatedAt:     service.CreatedAt.Format(isoFormat),
		UpdatedAt:     service.UpdatedAt.Format(isoFormat),
	}
}

// ToCityDTO converts City to CityDTO
func ToCityDTO(city *domain.City) domain.CityDTO {
	return domain.CityDTO{
		ID:        city.ID,
		Name:      city.Name,
		IsActive:  city.IsActive,
		CreatedAt: city.CreatedAt.Format(isoFormat),
	}
}

// ToCompanyDTO converts Company to CompanyDTO
func ToCompanyDTO(company *domain.Company) domain.CompanyDTO {
	return domain.CompanyDTO{
		ID:            company.ID,
		Name:          company.Name,
		ContactPerson: company.ContactPerson,
		Email:         company.Email,
		Phone:         company.Phone,
		Whatsapp:      company.Whatsapp,
		ServiceIDs:    []string(company.ServiceIDs),
		Cities:        []string(company.Cities),
		IsActive:      company.IsActive,
		CreatedAt:     company.CreatedAt.Format(isoFormat),
		UpdatedAt:     company.UpdatedAt.Format(isoFormat),
	}
}

// ToLeadDTO converts Lead to LeadDTO
func ToLeadDTO(lead *domain.Lead) domain.LeadDTO {
	dto := domain.LeadDTO{
		ID:             lead.ID,
		Name:           lead.Name,
		Phone:          lead.Phone,
		Email:          lead.Email,
		City:           lead.City,
		PLZ:            lead.PLZ,
		ServiceID:      lead.ServiceID,
		ServiceDetails: lead.ServiceDetails,
		Timeline:       lead.Timeline,
		Status:         lead.Status,
		Source:         lead.Source,
		AdminNotes:     lead.AdminNotes,
		CreatedAt:      lead.CreatedAt.Format(isoFormat),
	}

	if lead.Service != nil {
		dto.ServiceName = lead.Service.Name
	}

	return dto
}

// ToLeadConfirmationDTO converts Lead to the public confirmation payload
func ToLeadConfirmationDTO(lead *domain.Lead) domain.LeadConfirmationDTO {
	dto := domain.LeadConfirmationDTO{
		ID:        lead.ID,
		Name:      lead.Name,
		CreatedAt: lead.CreatedAt.Format(isoFormat),
	}

	if lead.Service != nil {
		dto.ServiceName = lead.Service.Name
	}

	return dto
}

// ToLeadAssignmentDTO converts LeadAssignment to LeadAssignmentDTO
func ToLeadAssignmentDTO(assignment *domain.LeadAssignment) domain.LeadAssignmentDTO {
	dto := domain.LeadAssignmentDTO{
		ID:            assignment.ID,
		LeadID:        assignment.LeadID,
		CompanyID:     assignment.CompanyID,
		AssignedBy:    assignment.AssignedBy,
		AssignedAt:    assignment.AssignedAt.Format(isoFormat),
		AmountCharged: assignment.AmountCharged,
	}

	if assignment.Company != nil {
		dto.CompanyName = assignment.Company.Name
	}

	return dto
}
