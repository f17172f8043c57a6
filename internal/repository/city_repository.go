package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lynck-services/lead-api/internal/domain"
	"gorm.io/gorm"
)

type CityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) *CityRepository {
	return &CityRepository{db: db}
}

func (r *CityRepository) Create(ctx context.Context, city *domain.City) error {
	return r.db.WithContext(ctx).Create(city).Error
}

func (r *CityRepository) ListActive(ctx context.Context) ([]domain.City, error) {
	var cities []domain.City
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&cities).Error
	return cities, err
}

func (r *CityRepository) ListAll(ctx context.Context) ([]domain.City, error) {
	var cities []domain.City
	err := r.db.WithContext(ctx).Order("name ASC").Find(&cities).Error
	return cities, err
}

func (r *CityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.City, error) {
	var city domain.City
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&city).Error
	if err != nil {
		return nil, err
	}
	return &city, nil
}

// GetActiveByName is the intake lookup: city names are the join key between
// leads and companies, so the lookup is exact, not fuzzy.
func (r *CityRepository) GetActiveByName(ctx context.Context, name string) (*domain.City, error) {
	var city domain.City
	err := r.db.WithContext(ctx).
		Where("name = ? AND is_active = ?", name, true).
		First(&city).Error
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *CityRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&domain.City{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
