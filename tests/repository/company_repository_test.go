package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lynck-services/lead-api/internal/domain"
	"github.com/lynck-services/lead-api/internal/repository"
	"github.com/lynck-services/lead-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupSQLGenDB creates an in-memory database for SQL generation tests
func setupSQLGenDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return db
}

func TestFindMatching_GeneratedSQL(t *testing.T) {
	db := setupSQLGenDB(t)
	serviceID := uuid.New()

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&domain.Company{}).
			Where("is_active = ?", true).
			Where("? = ANY(service_ids)", serviceID.String()).
			Where("? = ANY(cities)", "Berlin").
			Order("LOWER(name) ASC").
			Find(&[]domain.Company{})
	})

	assert.Contains(t, sql, "is_active", "query should filter on the active flag")
	assert.Contains(t, sql, "ANY(service_ids)", "query should match against the service array")
	assert.Contains(t, sql, "ANY(cities)", "query should match against the cities array")
	assert.Contains(t, sql, "LOWER(name)", "ordering should be case-insensitive")
}

func TestCompanyRepository_FindMatching(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	repo := repository.NewCompanyRepository(db)
	service := testutil.CreateTestService(t, db, "heizung", 75.00)
	otherService := testutil.CreateTestService(t, db, "solar", 95.00)

	// Covers the service in Berlin
	match := testutil.CreateTestCompany(t, db, "Beta Haustechnik",
		[]string{service.ID.String()}, []string{"Berlin"})
	// Also covers, sorts before Beta despite casing
	matchFirst := testutil.CreateTestCompany(t, db, "alpha Heizungsbau",
		[]string{service.ID.String(), otherService.ID.String()}, []string{"Berlin", "Hamburg"})
	// Right service, wrong city
	testutil.CreateTestCompany(t, db, "Hamburg Heizung",
		[]string{service.ID.String()}, []string{"Hamburg"})
	// Right city, wrong service
	testutil.CreateTestCompany(t, db, "Berlin Solar",
		[]string{otherService.ID.String()}, []string{"Berlin"})

	// Right everything but inactive
	inactive := testutil.CreateTestCompany(t, db, "Inactive GmbH",
		[]string{service.ID.String()}, []string{"Berlin"})
	err := db.Model(inactive).Update("is_active", false).Error
	require.NoError(t, err)

	companies, err := repo.FindMatching(ctx, service.ID, "Berlin")
	require.NoError(t, err)

	require.Len(t, companies, 2)
	assert.Equal(t, matchFirst.ID, companies[0].ID, "case-insensitive name ordering")
	assert.Equal(t, match.ID, companies[1].ID)
}

func TestCompanyRepository_FindMatching_DeactivatedService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	repo := repository.NewCompanyRepository(db)
	serviceRepo := repository.NewServiceRepository(db)

	service := testutil.CreateTestService(t, db, "dachdecker", 65.00)
	company := testutil.CreateTestCompany(t, db, "Dach & Co",
		[]string{service.ID.String()}, []string{"Berlin"})

	// Deactivating the service does not break existing coverage
	err := serviceRepo.SetActive(ctx, service.ID, false)
	require.NoError(t, err)

	companies, err := repo.FindMatching(ctx, service.ID, "Berlin")
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, company.ID, companies[0].ID)
}

func TestCompanyRepository_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	repo := repository.NewCompanyRepository(db)
	service := testutil.CreateTestService(t, db, "klempner", 50.00)

	testutil.CreateTestCompany(t, db, "Alpha Sanitär", []string{service.ID.String()}, []string{"Berlin"})
	inactive := testutil.CreateTestCompany(t, db, "Beta Sanitär", []string{service.ID.String()}, []string{"Berlin"})
	err := db.Model(inactive).Update("is_active", false).Error
	require.NoError(t, err)

	// Unfiltered returns both
	companies, total, err := repo.List(ctx, 1, 25, "", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, companies, 2)

	// Active filter
	active := true
	companies, total, err = repo.List(ctx, 1, 25, "", &active)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, companies, 1)
	assert.Equal(t, "Alpha Sanitär", companies[0].Name)

	// Case-insensitive search
	companies, total, err = repo.List(ctx, 1, 25, "beta", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, companies, 1)
	assert.Equal(t, "Beta Sanitär", companies[0].Name)
}

func TestCompanyRepository_CountActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	repo := repository.NewCompanyRepository(db)
	service := testutil.CreateTestService(t, db, "elektriker", 50.00)

	testutil.CreateTestCompany(t, db, "Elektro Eins", []string{service.ID.String()}, []string{"Berlin"})
	testutil.CreateTestCompany(t, db, "Elektro Zwei", []string{service.ID.String()}, []string{"Berlin"})
	inactive := testutil.CreateTestCompany(t, db, "Elektro Drei", []string{service.ID.String()}, []string{"Berlin"})
	err := db.Model(inactive).Update("is_active", false).Error
	require.NoError(t, err)

	count, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
