package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lynck-services/lead-api/internal/domain"
	"github.com/lynck-services/lead-api/internal/repository"
	"github.com/lynck-services/lead-api/internal/service"
	"github.com/lynck-services/lead-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupAssignmentService(db *gorm.DB) *service.AssignmentService {
	return service.NewAssignmentService(
		repository.NewAssignmentRepository(db),
		repository.NewLeadRepository(db),
		repository.NewCompanyRepository(db),
		zap.NewNop(),
	)
}

func TestAssignmentService_FindMatches(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupAssignmentService(db)
	heizung := testutil.CreateTestService(t, db, "heizung", 75.00)
	lead := testutil.CreateTestLead(t, db, heizung, "Berlin")

	company := testutil.CreateTestCompany(t, db, "Haustechnik GmbH",
		[]string{heizung.ID.String()}, []string{"Berlin"})
	testutil.CreateTestCompany(t, db, "Hamburg Heizung",
		[]string{heizung.ID.String()}, []string{"Hamburg"})

	matches, err := svc.FindMatches(ctx, lead.ID)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, company.ID, matches[0].ID)
}

func TestAssignmentService_FindMatches_LeadWithoutService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupAssignmentService(db)
	lead := testutil.CreateTestLead(t, db, nil, "Berlin")

	matches, err := svc.FindMatches(ctx, lead.ID)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestAssignmentService_FindMatches_LeadNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupAssignmentService(db)

	_, err := svc.FindMatches(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrLeadNotFound)
}

func TestAssignmentService_Assign_SnapshotsServicePrice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupAssignmentService(db)
	solar := testutil.CreateTestService(t, db, "solar", 95.00)
	lead := testutil.CreateTestLead(t, db, solar, "Berlin")
	company := testutil.CreateTestCompany(t, db, "Solartechnik GmbH",
		[]string{solar.ID.String()}, []string{"Berlin"})

	results, err := svc.Assign(ctx, lead.ID, &domain.AssignLeadRequest{
		CompanyIDs: []uuid.UUID{company.ID},
	}, "admin@lynck-services.de")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	require.NotNil(t, results[0].AssignmentID)
	assert.Equal(t, 95.00, results[0].AmountCharged)

	// Changing the price later leaves the snapshot untouched
	err = db.Model(solar).Update("lead_price", 120.00).Error
	require.NoError(t, err)

	assignments, err := svc.ListByLead(ctx, lead.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, 95.00, assignments[0].AmountCharged)
}

func TestAssignmentService_Assign_DefaultPriceFallback(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupAssignmentService(db)

	freeService := testutil.CreateTestService(t, db, "renovierung", 0)
	company := testutil.CreateTestCompany(t, db, "Renovierung GmbH",
		[]string{freeService.ID.String()}, []string{"Berlin"})

	tests := []struct {
		name string
		lead *domain.Lead
	}{
		{name: "lead without service", lead: testutil.CreateTestLead(t, db, nil, "Berlin")},
		{name: "service without price", lead: testutil.CreateTestLead(t, db, freeService, "Berlin")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := svc.Assign(ctx, tt.lead.ID, &domain.AssignLeadRequest{
				CompanyIDs: []uuid.UUID{company.ID},
			}, "admin@lynck-services.de")
			require.NoError(t, err)

			require.Len(t, results, 1)
			assert.True(t, results[0].Success)
			assert.Equal(t, domain.DefaultLeadPrice, results[0].AmountCharged)
		})
	}
}

func TestAssignmentService_Assign_PartialFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupAssignmentService(db)
	heizung := testutil.CreateTestService(t, db, "heizung", 75.00)
	lead := testutil.CreateTestLead(t, db, heizung, "Berlin")
	company := testutil.CreateTestCompany(t, db, "Haustechnik GmbH",
		[]string{heizung.ID.String()}, []string{"Berlin"})
	unknown := uuid.New()

	results, err := svc.Assign(ctx, lead.ID, &domain.AssignLeadRequest{
		CompanyIDs: []uuid.UUID{unknown, company.ID},
	}, "admin@lynck-services.de")
	require.NoError(t, err)

	// One result per company, the unknown one fails without blocking the other
	require.Len(t, results, 2)
	assert.Equal(t, unknown, results[0].CompanyID)
	assert.False(t, results[0].Success)
	assert.NotEmpty(t, results[0].Error)
	assert.True(t, results[1].Success)

	assignments, err := svc.ListByLead(ctx, lead.ID)
	require.NoError(t, err)
	assert.Len(t, assignments, 1)
}

func TestAssignmentService_Assign_DeduplicatesCompanies(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupAssignmentService(db)
	heizung := testutil.CreateTestService(t, db, "heizung", 75.00)
	lead := testutil.CreateTestLead(t, db, heizung, "Berlin")
	company := testutil.CreateTestCompany(t, db, "Haustechnik GmbH",
		[]string{heizung.ID.String()}, []string{"Berlin"})

	results, err := svc.Assign(ctx, lead.ID, &domain.AssignLeadRequest{
		CompanyIDs: []uuid.UUID{company.ID, company.ID, company.ID},
	}, "admin@lynck-services.de")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestAssignmentService_Assign_LeavesLeadStatusUntouched(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupAssignmentService(db)
	heizung := testutil.CreateTestService(t, db, "heizung", 75.00)
	lead := testutil.CreateTestLead(t, db, heizung, "Berlin")
	company := testutil.CreateTestCompany(t, db, "Haustechnik GmbH",
		[]string{heizung.ID.String()}, []string{"Berlin"})

	_, err := svc.Assign(ctx, lead.ID, &domain.AssignLeadRequest{
		CompanyIDs: []uuid.UUID{company.ID},
	}, "admin@lynck-services.de")
	require.NoError(t, err)

	got, err := repository.NewLeadRepository(db).GetByID(ctx, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusNew, got.Status)
}

func TestAssignmentService_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupAssignmentService(db)
	heizung := testutil.CreateTestService(t, db, "heizung", 75.00)
	lead := testutil.CreateTestLead(t, db, heizung, "Berlin")
	company := testutil.CreateTestCompany(t, db, "Haustechnik GmbH",
		[]string{heizung.ID.String()}, []string{"Berlin"})

	results, err := svc.Assign(ctx, lead.ID, &domain.AssignLeadRequest{
		CompanyIDs: []uuid.UUID{company.ID},
	}, "admin@lynck-services.de")
	require.NoError(t, err)
	require.True(t, results[0].Success)

	err = svc.Delete(ctx, *results[0].AssignmentID)
	require.NoError(t, err)

	assignments, err := svc.ListByLead(ctx, lead.ID)
	require.NoError(t, err)
	assert.Empty(t, assignments)

	err = svc.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}
