package mapper_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/lynck-services/lead-api/internal/domain"
	"github.com/lynck-services/lead-api/internal/mapper"
	"github.com/stretchr/testify/assert"
)

var testTime = time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC)

func TestToServiceDTO(t *testing.T) {
	service := &domain.Service{
		BaseModel: domain.BaseModel{
			ID:        uuid.New(),
			CreatedAt: testTime,
			UpdatedAt: testTime,
		},
		Name:      "Heizung & HVAC",
		NameEN:    "Heating & HVAC",
		Slug:      "heizung",
		Icon:      "🔥",
		LeadPrice: 75.00,
		IsActive:  true,
	}

	dto := mapper.ToServiceDTO(service)

	assert.Equal(t, service.ID, dto.ID)
	assert.Equal(t, "Heizung & HVAC", dto.Name)
	assert.Equal(t, "Heating & HVAC", dto.NameEN)
	assert.Equal(t, "heizung", dto.Slug)
	assert.Equal(t, 75.00, dto.LeadPrice)
	assert.True(t, dto.IsActive)
	assert.Equal(t, "2025-09-01T10:30:00Z", dto.CreatedAt)
}

func TestToCompanyDTO(t *testing.T) {
	serviceID := uuid.New().String()
	company := &domain.Company{
		BaseModel: domain.BaseModel{
			ID:        uuid.New(),
			CreatedAt: testTime,
			UpdatedAt: testTime,
		},
		Name:       "Müller Haustechnik GmbH",
		Email:      "info@mueller-haustechnik.de",
		Phone:      "+4930123456",
		ServiceIDs: pq.StringArray{serviceID},
		Cities:     pq.StringArray{"Berlin", "Potsdam"},
		IsActive:   true,
	}

	dto := mapper.ToCompanyDTO(company)

	assert.Equal(t, company.ID, dto.ID)
	assert.Equal(t, []string{serviceID}, dto.ServiceIDs)
	assert.Equal(t, []string{"Berlin", "Potsdam"}, dto.Cities)
}

func TestToLeadDTO_WithService(t *testing.T) {
	serviceID := uuid.New()
	lead := &domain.Lead{
		ID:        uuid.New(),
		CreatedAt: testTime,
		Name:      "Max Mustermann",
		Phone:     "+4915112345678",
		City:      "Berlin",
		PLZ:       "10115",
		ServiceID: &serviceID,
		Service: &domain.Service{
			Name: "Heizung & HVAC",
		},
		ServiceDetails: "Die Heizung muss erneuert werden.",
		Timeline:       domain.TimelineImmediate,
		Status:         domain.LeadStatusNew,
		Source:         domain.LeadSourceWebsite,
	}

	dto := mapper.ToLeadDTO(lead)

	assert.Equal(t, lead.ID, dto.ID)
	assert.Equal(t, &serviceID, dto.ServiceID)
	assert.Equal(t, "Heizung & HVAC", dto.ServiceName)
	assert.Equal(t, domain.TimelineImmediate, dto.Timeline)
	assert.Equal(t, "2025-09-01T10:30:00Z", dto.CreatedAt)
}

func TestToLeadDTO_WithoutService(t *testing.T) {
	lead := &domain.Lead{
		ID:             uuid.New(),
		CreatedAt:      testTime,
		Name:           "Max Mustermann",
		Phone:          "+4915112345678",
		City:           "Berlin",
		PLZ:            "10115",
		ServiceDetails: "Allgemeine Anfrage ohne konkreten Service.",
		Timeline:       domain.TimelineFlexible,
		Status:         domain.LeadStatusNew,
		Source:         domain.LeadSourceWebsite,
	}

	dto := mapper.ToLeadDTO(lead)

	assert.Nil(t, dto.ServiceID)
	assert.Empty(t, dto.ServiceName)
}

func TestToLeadConfirmationDTO_OmitsContactData(t *testing.T) {
	email := "max@example.com"
	lead := &domain.Lead{
		ID:        uuid.New(),
		CreatedAt: testTime,
		Name:      "Max Mustermann",
		Phone:     "+4915112345678",
		Email:     &email,
		Service: &domain.Service{
			Name: "Dachdecker",
		},
	}

	dto := mapper.ToLeadConfirmationDTO(lead)

	assert.Equal(t, lead.ID, dto.ID)
	assert.Equal(t, "Max Mustermann", dto.Name)
	assert.Equal(t, "Dachdecker", dto.ServiceName)
	assert.Equal(t, "2025-09-01T10:30:00Z", dto.CreatedAt)
}

func TestToLeadAssignmentDTO(t *testing.T) {
	assignment := &domain.LeadAssignment{
		ID:         uuid.New(),
		LeadID:     uuid.New(),
		CompanyID:  uuid.New(),
		AssignedBy: "admin@lynck-services.de",
		AssignedAt: testTime,
		Company: &domain.Company{
			Name: "Müller Haustechnik GmbH",
		},
		AmountCharged: 75.00,
	}

	dto := mapper.ToLeadAssignmentDTO(assignment)

	assert.Equal(t, assignment.ID, dto.ID)
	assert.Equal(t, "Müller Haustechnik GmbH", dto.CompanyName)
	assert.Equal(t, 75.00, dto.AmountCharged)
	assert.Equal(t, "2025-09-01T10:30:00Z", dto.AssignedAt)
}
