package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// LeadStatus represents the workflow state of a lead
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted"
)

// IsValid checks whether the status is one of the known values
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusConverted:
		return true
	}
	return false
}

// Timeline represents how soon the customer wants the work done.
// The wire values are German because the intake form is.
type Timeline string

const (
	TimelineImmediate Timeline = "sofort"
	TimelineThisWeek  Timeline = "diese_woche"
	TimelineThisMonth Timeline = "diesen_monat"
	TimelineFlexible  Timeline = "flexibel"
)

// IsValid checks whether the timeline is one of the known values
func (t Timeline) IsValid() bool {
	switch t {
	case TimelineImmediate, TimelineThisWeek, TimelineThisMonth, TimelineFlexible:
		return true
	}
	return false
}

// LeadSourceWebsite is the only source the intake endpoint writes today.
const LeadSourceWebsite = "website"

// DefaultLeadPrice is charged for an assignment when the lead has no
// priced service attached.
const DefaultLeadPrice = 50.00

// Service represents an offered service category (bilingual)
type Service struct {
	BaseModel
	Name          string  `gorm:"type:varchar(200);not null"`
	NameEN        string  `gorm:"type:varchar(200);not null;column:name_en"`
	Slug          string  `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description   string  `gorm:"type:text"`
	DescriptionEN string  `gorm:"type:text;column:description_en"`
	Icon          string  `gorm:"type:varchar(100)"`
	LeadPrice     float64 `gorm:"type:numeric(10,2);not null;default:0;column:lead_price"`
	IsActive      bool    `gorm:"not null;default:true;column:is_active;index"`
}

// City represents a serviced city
type City struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	IsActive  bool      `gorm:"not null;default:true;column:is_active;index"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Company represents a partner company that buys leads
type Company struct {
	BaseModel
	Name          string         `gorm:"type:varchar(200);not null;index"`
	ContactPerson string         `gorm:"type:varchar(200);column:contact_person"`
	Email         string         `gorm:"type:varchar(255);not null"`
	Phone         string         `gorm:"type:varchar(50);not null"`
	Whatsapp      string         `gorm:"type:varchar(50)"`
	ServiceIDs    pq.StringArray `gorm:"type:text[];not null;column:service_ids"`
	Cities        pq.StringArray `gorm:"type:text[];not null"`
	IsActive      bool           `gorm:"not null;default:true;column:is_active;index"`
}

// ServesLead reports whether the company covers the lead's service and city.
// Matching is on raw ids, so a company keeps matching leads for a service
// that was later deactivated.
func (c *Company) ServesLead(serviceID *uuid.UUID, city string) bool {
	if serviceID == nil {
		return false
	}
	var hasService, hasCity bool
	for _, id := range c.ServiceIDs {
		if id == serviceID.String() {
			hasService = true
			break
		}
	}
	for _, name := range c.Cities {
		if name == city {
			hasCity = true
			break
		}
	}
	return hasService && hasCity
}

// Lead represents a customer inquiry from the public website
type Lead struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP;index"`
	Name           string     `gorm:"type:varchar(100);not null"`
	Phone          string     `gorm:"type:varchar(50);not null"`
	Email          *string    `gorm:"type:varchar(255)"`
	City           string     `gorm:"type:varchar(100);not null;index"`
	PLZ            string     `gorm:"type:char(5);not null;column:plz"`
	ServiceID      *uuid.UUID `gorm:"type:uuid;column:service_id;index"`
	Service        *Service   `gorm:"foreignKey:ServiceID"`
	ServiceDetails string     `gorm:"type:text;not null;column:service_details"`
	Timeline       Timeline   `gorm:"type:varchar(50);not null"`
	Status         LeadStatus `gorm:"type:varchar(50);not null;default:'new';index"`
	Source         string     `gorm:"type:varchar(50);not null;default:'website'"`
	AdminNotes     *string    `gorm:"type:text;column:admin_notes"`
	Assignments    []LeadAssignment `gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE"`
}

// LeadAssignment records that a lead was sold to a company, with the
// price snapshotted at assignment time
type LeadAssignment struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LeadID        uuid.UUID `gorm:"type:uuid;not null;column:lead_id;index"`
	Lead          *Lead     `gorm:"foreignKey:LeadID"`
	CompanyID     uuid.UUID `gorm:"type:uuid;not null;column:company_id;index"`
	Company       *Company  `gorm:"foreignKey:CompanyID"`
	AssignedBy    string    `gorm:"type:varchar(255);not null;column:assigned_by"`
	AssignedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;column:assigned_at"`
	AmountCharged float64   `gorm:"type:numeric(10,2);not null;column:amount_charged"`
}
