package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dquispe/agrosat-advisor/internal/model"
)

// CropStore serves the immutable crop reference data.
type CropStore struct {
	db *gorm.DB
}

func NewCropStore(db *gorm.DB) *CropStore {
	return &CropStore{db: db}
}

// Seed inserts the deployment-time crop profiles, skipping names already
// present so restarts are idempotent.
func (s *CropStore) Seed(ctx context.Context, crops []model.CropType) error {
	if len(crops) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&crops).Error
}

// All returns every crop profile, ordered by name.
func (s *CropStore) All(ctx context.Context) ([]model.CropType, error) {
	var out []model.CropType
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ByName looks a crop up by its unique name.
func (s *CropStore) ByName(ctx context.Context, name string) (model.CropType, error) {
	var crop model.CropType
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&crop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CropType{}, ErrNotFound
	}
	if err != nil {
		return model.CropType{}, err
	}
	return crop, nil
}

// DefaultCrops is the reference profile set seeded on first start.
func DefaultCrops() []model.CropType {
	f := func(v float64) *float64 { return &v }
	return []model.CropType{
		{Name: "papa", OptimalConditions: model.OptimalConditions{MinTemp: f(10), MaxTemp: f(20), IdealMoisture: f(60)}},
		{Name: "maíz", OptimalConditions: model.OptimalConditions{MinTemp: f(18), MaxTemp: f(30), IdealMoisture: f(55)}},
		{Name: "quinua", OptimalConditions: model.OptimalConditions{MinTemp: f(8), MaxTemp: f(22), IdealMoisture: f(45)}},
		{Name: "café", OptimalConditions: model.OptimalConditions{MinTemp: f(18), MaxTemp: f(28), IdealMoisture: f(65)}},
		{Name: "arroz", OptimalConditions: model.OptimalConditions{MinTemp: f(20), MaxTemp: f(35), IdealMoisture: f(75)}},
		{Name: "trigo", OptimalConditions: model.OptimalConditions{}},
	}
}
