package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lynck-services/lead-api/internal/config"
	"github.com/lynck-services/lead-api/internal/domain"
	"github.com/lynck-services/lead-api/internal/notify"
	"github.com/lynck-services/lead-api/internal/repository"
	"github.com/lynck-services/lead-api/internal/service"
	"github.com/lynck-services/lead-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupLeadService(t *testing.T, db *gorm.DB) *service.LeadService {
	log := zap.NewNop()

	leadRepo := repository.NewLeadRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	cityRepo := repository.NewCityRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	// No URL configured, deliveries are no-ops
	webhook := notify.NewWebhookClient(&config.WebhookConfig{}, log)

	return service.NewLeadService(leadRepo, serviceRepo, cityRepo, assignmentRepo, webhook, log)
}

func validLeadRequest(serviceID *string) *domain.CreateLeadRequest {
	return &domain.CreateLeadRequest{
		Name:           "Max Mustermann",
		Phone:          "+49 151 1234 5678",
		Email:          "max@example.com",
		City:           "Berlin",
		PLZ:            "10115",
		ServiceID:      serviceID,
		ServiceDetails: "Die Heizung im Altbau muss komplett erneuert werden.",
		Timeline:       domain.TimelineImmediate,
	}
}

func TestLeadService_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupLeadService(t, db)
	heizung := testutil.CreateTestService(t, db, "heizung", 75.00)
	testutil.CreateTestCity(t, db, "Berlin")

	serviceID := heizung.ID.String()
	resp, err := svc.Create(ctx, validLeadRequest(&serviceID))
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEqual(t, uuid.Nil, resp.LeadID)

	// Phone is stored with spaces stripped; defaults are applied
	details, err := svc.GetByID(ctx, resp.LeadID)
	require.NoError(t, err)
	assert.Equal(t, "+4915112345678", details.Phone)
	assert.Equal(t, domain.LeadStatusNew, details.Status)
	assert.Equal(t, domain.LeadSourceWebsite, details.Source)
	require.NotNil(t, details.Email)
	assert.Equal(t, "max@example.com", *details.Email)
}

func TestLeadService_Create_WithoutService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupLeadService(t, db)
	testutil.CreateTestCity(t, db, "Berlin")

	resp, err := svc.Create(ctx, validLeadRequest(nil))
	require.NoError(t, err)
	assert.True(t, resp.Success)

	details, err := svc.GetByID(ctx, resp.LeadID)
	require.NoError(t, err)
	assert.Nil(t, details.ServiceID)
}

func TestLeadService_Create_EmptyEmailStoredAsNull(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupLeadService(t, db)
	testutil.CreateTestCity(t, db, "Berlin")

	req := validLeadRequest(nil)
	req.Email = ""

	resp, err := svc.Create(ctx, req)
	require.NoError(t, err)

	details, err := svc.GetByID(ctx, resp.LeadID)
	require.NoError(t, err)
	assert.Nil(t, details.Email)
}

func TestLeadService_Create_InvalidPhone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupLeadService(t, db)
	testutil.CreateTestCity(t, db, "Berlin")

	tests := []struct {
		name  string
		phone string
	}{
		{name: "foreign prefix", phone: "+43123456789"},
		{name: "too short", phone: "+4912345"},
		{name: "letters", phone: "+49151abcdefg"},
		{name: "empty", phone: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validLeadRequest(nil)
			req.Phone = tt.phone

			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, service.ErrInvalidPhone)
		})
	}
}

func TestLeadService_Create_PhoneSpacesAccepted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupLeadService(t, db)
	testutil.CreateTestCity(t, db, "Berlin")

	req := validLeadRequest(nil)
	req.Phone = "0151 123 456 78"

	_, err := svc.Create(ctx, req)
	assert.NoError(t, err)
}

func TestLeadService_Create_UnknownCity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupLeadService(t, db)

	_, err := svc.Create(ctx, validLeadRequest(nil))
	assert.ErrorIs(t, err, service.ErrUnknownCity)
}

func TestLeadService_Create_InactiveCityRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupLeadService(t, db)
	city := testutil.CreateTestCity(t, db, "Berlin")

	cityRepo := repository.NewCityRepository(db)
	err := cityRepo.SetActive(ctx, city.ID, false)
	require.NoError(t, err)

	_, err = svc.Create(ctx, validLeadRequest(nil))
	assert.ErrorIs(t, err, service.ErrUnknownCity)
}

func TestLeadService_Create_UnknownService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupLeadService(t, db)
	testutil.CreateTestCity(t, db, "Berlin")

	unknown := uuid.New().String()
	_, err := svc.Create(ctx, validLeadRequest(&unknown))
	assert.ErrorIs(t, err, service.ErrServiceNotFound)
}

func TestLeadService_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupLeadService(t, db)
	heizung := testutil.CreateTestService(t, db, "heizung", 75.00)
	lead := testutil.CreateTestLead(t, db, heizung, "Berlin")

	err := svc.UpdateStatus(ctx, lead.ID, domain.LeadStatusConverted)
	require.NoError(t, err)

	// Transitions are unrestricted, converted can go back
	err = svc.UpdateStatus(ctx, lead.ID, domain.LeadStatusContacted)
	require.NoError(t, err)

	err = svc.UpdateStatus(ctx, lead.ID, domain.LeadStatus("archived"))
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	err = svc.UpdateStatus(ctx, uuid.New(), domain.LeadStatusContacted)
	assert.ErrorIs(t, err, service.ErrLeadNotFound)
}

func TestLeadService_BulkUpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupLeadService(t, db)
	heizung := testutil.CreateTestService(t, db, "heizung", 75.00)
	first := testutil.CreateTestLead(t, db, heizung, "Berlin")
	second := testutil.CreateTestLead(t, db, heizung, "Berlin")

	updated, err := svc.BulkUpdateStatus(ctx, &domain.BulkLeadStatusRequest{
		LeadIDs: []uuid.UUID{first.ID, second.ID},
		Status:  domain.LeadStatusContacted,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	_, err = svc.BulkUpdateStatus(ctx, &domain.BulkLeadStatusRequest{
		LeadIDs: []uuid.UUID{first.ID},
		Status:  domain.LeadStatus("bogus"),
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}
