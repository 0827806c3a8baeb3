package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dquispe/agrosat-advisor/internal/model"
)

// WeatherCacheStore persists the last-fetched forecast payload per place key.
// Rows are overwritten in place; staleness is the reader's concern.
type WeatherCacheStore struct {
	db *gorm.DB
}

func NewWeatherCacheStore(db *gorm.DB) *WeatherCacheStore {
	return &WeatherCacheStore{db: db}
}

// Get returns the cached entry for a key, or ErrNotFound.
func (s *WeatherCacheStore) Get(ctx context.Context, key string) (model.WeatherCache, error) {
	var entry model.WeatherCache
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.WeatherCache{}, ErrNotFound
	}
	if err != nil {
		return model.WeatherCache{}, err
	}
	return entry, nil
}

// Upsert writes the payload and fetch timestamp under key, replacing any
// previous row. Concurrent refreshes for one key race benignly: last writer
// wins.
func (s *WeatherCacheStore) Upsert(ctx context.Context, key string, payload []byte, fetchedAt time.Time) error {
	entry := model.WeatherCache{Key: key, Payload: payload, CreatedAt: fetchedAt}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "created_at"}),
		}).
		Create(&entry).Error
}

// DeleteOlderThan removes rows last written before cutoff. Housekeeping only:
// it bounds table growth and never affects read-path freshness semantics.
func (s *WeatherCacheStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.WeatherCache{})
	return res.RowsAffected, res.Error
}
