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

func setupCatalogService(db *gorm.DB) *service.CatalogService {
	return service.NewCatalogService(
		repository.NewServiceRepository(db),
		repository.NewCityRepository(db),
		zap.NewNop(),
	)
}

func TestCatalogService_ListActiveServices(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupCatalogService(db)
	active := testutil.CreateTestService(t, db, "heizung", 75.00)
	inactive := testutil.CreateTestService(t, db, "solar", 95.00)

	err := svc.SetServiceActive(ctx, inactive.ID, false)
	require.NoError(t, err)

	services, err := svc.ListActiveServices(ctx)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, active.ID, services[0].ID)

	// The admin listing still shows both
	all, err := svc.ListAllServices(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCatalogService_GetServiceBySlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupCatalogService(db)
	created := testutil.CreateTestService(t, db, "dachdecker", 65.00)

	got, err := svc.GetServiceBySlug(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetServiceBySlug(ctx, "does-not-exist")
	assert.ErrorIs(t, err, service.ErrServiceNotFound)

	// A deactivated service disappears from the public lookup
	err = svc.SetServiceActive(ctx, created.ID, false)
	require.NoError(t, err)

	_, err = svc.GetServiceBySlug(ctx, created.Slug)
	assert.ErrorIs(t, err, service.ErrServiceNotFound)
}

func TestCatalogService_UpdateService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupCatalogService(db)
	created := testutil.CreateTestService(t, db, "klempner", 50.00)

	updated, err := svc.UpdateService(ctx, created.ID, &domain.UpdateServiceRequest{
		Name:      "Klempner & Sanitär",
		NameEN:    "Plumbing & Sanitary",
		Icon:      "🚰",
		LeadPrice: 60.00,
	})
	require.NoError(t, err)
	assert.Equal(t, "Klempner & Sanitär", updated.Name)
	assert.Equal(t, 60.00, updated.LeadPrice)
	assert.Equal(t, created.Slug, updated.Slug, "slug stays fixed")

	_, err = svc.UpdateService(ctx, uuid.New(), &domain.UpdateServiceRequest{Name: "x"})
	assert.ErrorIs(t, err, service.ErrServiceNotFound)
}

func TestCatalogService_SetServiceActive_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupCatalogService(db)

	err := svc.SetServiceActive(ctx, uuid.New(), false)
	assert.ErrorIs(t, err, service.ErrServiceNotFound)
}

func TestCatalogService_CreateCity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupCatalogService(db)

	city, err := svc.CreateCity(ctx, &domain.CreateCityRequest{Name: "  Potsdam  "})
	require.NoError(t, err)
	assert.Equal(t, "Potsdam", city.Name, "name is trimmed")
	assert.True(t, city.IsActive)

	// Same name again conflicts
	_, err = svc.CreateCity(ctx, &domain.CreateCityRequest{Name: "Potsdam"})
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestCatalogService_SetCityActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestData(t, db)
	ctx := context.Background()

	svc := setupCatalogService(db)
	city := testutil.CreateTestCity(t, db, "Leipzig")

	err := svc.SetCityActive(ctx, city.ID, false)
	require.NoError(t, err)

	cities, err := svc.ListActiveCities(ctx)
	require.NoError(t, err)
	assert.Empty(t, cities)

	all, err := svc.ListAllCities(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	err = svc.SetCityActive(ctx, uuid.New(), true)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
