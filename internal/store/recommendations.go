// Package store holds the persistence layer: gorm-backed repositories over
// the sqlite database plus an in-memory weather cache store for cache-less
// deployments and tests.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dquispe/agrosat-advisor/internal/model"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConstraintViolation is returned when a write would violate an
	// integrity constraint (ownership exclusivity, level enum, score range).
	ErrConstraintViolation = errors.New("constraint violation")
)

// RecommendationStore persists feasibility records. Records are written once
// and never updated or deleted by the application.
type RecommendationStore struct {
	db *gorm.DB
}

func NewRecommendationStore(db *gorm.DB) *RecommendationStore {
	return &RecommendationStore{db: db}
}

// Create inserts one record. Ownership must be exclusive-or between UserID and
// AnonymousID; the level and score are checked here and again by the database
// CHECK constraints.
func (s *RecommendationStore) Create(ctx context.Context, rec *model.Recommendation) error {
	hasUser := rec.UserID != nil && *rec.UserID != ""
	hasAnon := rec.AnonymousID != nil && *rec.AnonymousID != ""
	if hasUser == hasAnon {
		return errors.Join(ErrConstraintViolation,
			errors.New("exactly one of user_id and anonymous_id must be set"))
	}
	if rec.FeasibilityScore < 0 || rec.FeasibilityScore > 100 {
		return errors.Join(ErrConstraintViolation,
			errors.New("feasibility_score must be within [0,100]"))
	}
	switch rec.FeasibilityLevel {
	case model.LevelGreen, model.LevelYellow, model.LevelRed:
	default:
		return errors.Join(ErrConstraintViolation,
			errors.New("feasibility_level must be one of green, yellow, red"))
	}

	return s.db.WithContext(ctx).Create(rec).Error
}

// ListByOwner returns the records belonging to the presented identity, newest
// first. Exactly one identity is used per query: a user id takes precedence,
// and with neither set the result is empty rather than an error. Callers can
// only ever read rows whose owner matches the identity they present.
func (s *RecommendationStore) ListByOwner(ctx context.Context, userID, anonymousID string) ([]model.Recommendation, error) {
	q := s.db.WithContext(ctx).Preload("CropType").Order("created_at DESC, id DESC")

	switch {
	case userID != "":
		q = q.Where("user_id = ?", userID)
	case anonymousID != "":
		q = q.Where("anonymous_id = ?", anonymousID)
	default:
		return []model.Recommendation{}, nil
	}

	var out []model.Recommendation
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
