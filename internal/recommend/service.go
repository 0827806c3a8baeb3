// Package recommend runs the submission pipeline: crop lookup, synthetic
// reading, feasibility evaluation, persistence.
package recommend

import (
	"context"

	"github.com/dquispe/agrosat-advisor/internal/feasibility"
	"github.com/dquispe/agrosat-advisor/internal/identity"
	"github.com/dquispe/agrosat-advisor/internal/model"
	"github.com/dquispe/agrosat-advisor/internal/satellite"
	"github.com/dquispe/agrosat-advisor/internal/store"
)

// SubmitInput is one user submission.
type SubmitInput struct {
	CropName     string
	Latitude     float64
	Longitude    float64
	LocationName string
	DeviceInfo   string
	Identity     identity.Identity
}

// Service orchestrates submissions and history reads. The pipeline is
// sequential and request-scoped; a failed insert surfaces immediately, and
// scoring never depends on the weather sub-flow.
type Service struct {
	crops *store.CropStore
	recs  *store.RecommendationStore
}

func NewService(crops *store.CropStore, recs *store.RecommendationStore) *Service {
	return &Service{crops: crops, recs: recs}
}

// Submit evaluates one crop/coordinate pairing and persists the outcome.
// Returns store.ErrNotFound for an unknown crop and
// store.ErrConstraintViolation for invalid ownership.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*model.Recommendation, error) {
	crop, err := s.crops.ByName(ctx, in.CropName)
	if err != nil {
		return nil, err
	}

	reading := satellite.Read(in.Latitude, in.Longitude)
	result := feasibility.Evaluate(crop, reading)

	rec := &model.Recommendation{
		CropTypeID:         crop.ID,
		Latitude:           in.Latitude,
		Longitude:          in.Longitude,
		LocationName:       in.LocationName,
		FeasibilityScore:   result.Score,
		FeasibilityLevel:   result.Level,
		RecommendationText: result.Explanation,
		SoilMoisture:       reading.SoilMoisture,
		Temperature:        reading.Temperature,
		DeviceInfo:         in.DeviceInfo,
	}
	if reading.Precipitation != nil {
		rec.Precipitation = *reading.Precipitation
	}
	if in.Identity.UserID != "" {
		rec.UserID = &in.Identity.UserID
	}
	if in.Identity.AnonymousID != "" {
		rec.AnonymousID = &in.Identity.AnonymousID
	}

	if err := s.recs.Create(ctx, rec); err != nil {
		return nil, err
	}
	rec.CropType = crop
	return rec, nil
}

// History lists the caller's past evaluations, newest first. With no identity
// presented the result is simply empty.
func (s *Service) History(ctx context.Context, id identity.Identity) ([]model.Recommendation, error) {
	return s.recs.ListByOwner(ctx, id.UserID, id.AnonymousID)
}
