package testutil

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/lynck-services/lead-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates a connection to the test PostgreSQL database.
// It uses environment variables or falls back to docker-compose defaults.
// Tests are skipped when the database is not reachable.
func SetupTestDB(t *testing.T) *gorm.DB {
	host := getEnvOrDefault("DATABASE_HOST", "localhost")
	port := getEnvOrDefault("DATABASE_PORT", "5432")
	user := getEnvOrDefault("DATABASE_USER", "lynck_user")
	password := getEnvOrDefault("DATABASE_PASSWORD", "lynck_password")
	dbname := getEnvOrDefault("DATABASE_NAME", "lynck_test")

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		host, port, user, password, dbname)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Skipf("Skipping integration test: database not available: %v", err)
	}

	err = db.AutoMigrate(
		&domain.Service{},
		&domain.City{},
		&domain.Company{},
		&domain.Lead{},
		&domain.LeadAssignment{},
	)
	require.NoError(t, err)

	return db
}

// CleanupTestData cleans up test data from all tables.
// This should be called after tests to ensure a clean state.
func CleanupTestData(t *testing.T, db *gorm.DB) {
	// Delete in order to respect foreign key constraints
	tables := []string{
		"lead_assignments",
		"leads",
		"companies",
		"cities",
		"services",
	}

	for _, table := range tables {
		err := db.Exec(fmt.Sprintf("DELETE FROM %s WHERE id IS NOT NULL", table)).Error
		if err != nil {
			t.Logf("Note: Could not clean table %s: %v", table, err)
		}
	}
}

// CreateTestService creates a service with the given slug and price
func CreateTestService(t *testing.T, db *gorm.DB, slug string, leadPrice float64) *domain.Service {
	service := &domain.Service{
		Name:      "Test " + slug,
		NameEN:    "Test " + slug,
		Slug:      fmt.Sprintf("%s-%d", slug, time.Now().UnixNano()),
		LeadPrice: leadPrice,
		IsActive:  true,
	}
	err := db.Create(service).Error
	require.NoError(t, err)
	return service
}

// CreateTestCity creates an active city
func CreateTestCity(t *testing.T, db *gorm.DB, name string) *domain.City {
	city := &domain.City{
		Name:     name,
		IsActive: true,
	}
	err := db.Create(city).Error
	require.NoError(t, err)
	return city
}

// CreateTestCompany creates a company covering the given services and cities
func CreateTestCompany(t *testing.T, db *gorm.DB, name string, serviceIDs []string, cities []string) *domain.Company {
	company := &domain.Company{
		Name:       name,
		Email:      "test@example.com",
		Phone:      "+4915112345678",
		ServiceIDs: pq.StringArray(serviceIDs),
		Cities:     pq.StringArray(cities),
		IsActive:   true,
	}
	err := db.Create(company).Error
	require.NoError(t, err)
	return company
}

// CreateTestLead creates a lead for the given service and city
func CreateTestLead(t *testing.T, db *gorm.DB, service *domain.Service, city string) *domain.Lead {
	lead := &domain.Lead{
		Name:           "Max Mustermann",
		Phone:          "+4915112345678",
		City:           city,
		PLZ:            "10115",
		ServiceDetails: "Die Heizung im Altbau muss komplett erneuert werden.",
		Timeline:       domain.TimelineFlexible,
		Status:         domain.LeadStatusNew,
		Source:         domain.LeadSourceWebsite,
	}
	if service != nil {
		lead.ServiceID = &service.ID
	}
	err := db.Create(lead).Error
	require.NoError(t, err)
	return lead
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
