// Package weather implements the read-through forecast cache that fronts the
// external geocoding and forecast services.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dquispe/agrosat-advisor/internal/meteo"
	"github.com/dquispe/agrosat-advisor/internal/model"
	"github.com/dquispe/agrosat-advisor/internal/store"
)

// DefaultTTL is the freshness window for cached forecasts.
const DefaultTTL = 15 * time.Minute

// keySeparator joins country, city and region into a cache key.
const keySeparator = "|"

// Geocoder resolves a place name into a coordinate.
type Geocoder interface {
	Search(ctx context.Context, name, countryCode string) (meteo.Coordinate, error)
}

// Forecaster fetches the forecast document for a coordinate.
type Forecaster interface {
	Forecast(ctx context.Context, lat, lon float64) (meteo.ForecastPayload, error)
}

// CacheStore is the contract both the sqlite-backed and the in-memory cache
// store satisfy.
type CacheStore interface {
	Get(ctx context.Context, key string) (model.WeatherCache, error)
	Upsert(ctx context.Context, key string, payload []byte, fetchedAt time.Time) error
}

// Place identifies a location as typed by the user. No case or whitespace
// normalization is applied, so spellings that differ only in case produce
// distinct cache keys.
type Place struct {
	City    string
	Region  string
	Country string
}

// Key returns the cache key for this place.
func (p Place) Key() string {
	return p.Country + keySeparator + p.City + keySeparator + p.Region
}

// Service is the read-through weather cache.
type Service struct {
	cache      CacheStore
	geocoder   Geocoder
	forecaster Forecaster
	ttl        time.Duration
	now        func() time.Time
	log        *slog.Logger
}

// NewService creates the cache service. A non-positive ttl falls back to
// DefaultTTL.
func NewService(cache CacheStore, geocoder Geocoder, forecaster Forecaster, ttl time.Duration, log *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		cache:      cache,
		geocoder:   geocoder,
		forecaster: forecaster,
		ttl:        ttl,
		now:        time.Now,
		log:        log,
	}
}

// Lookup returns the most recent forecast for a place: served from cache when
// the entry is younger than the ttl, refreshed from the external services
// otherwise. Cache read and write failures are logged and never fail the
// lookup; failures of either external call surface to the caller.
func (s *Service) Lookup(ctx context.Context, p Place) (meteo.ForecastPayload, error) {
	key := p.Key()

	entry, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		if s.now().Sub(entry.CreatedAt) < s.ttl {
			var payload meteo.ForecastPayload
			if decErr := json.Unmarshal(entry.Payload, &payload); decErr == nil {
				return payload, nil
			}
			// Unreadable row: fall through to a refresh that overwrites it.
			s.log.Warn("weather cache entry undecodable, refreshing", "key", key)
		}
	case errors.Is(err, store.ErrNotFound):
		// miss
	default:
		// A failing cache read must not abort the request.
		s.log.Warn("weather cache read failed, treating as miss", "key", key, "error", err)
	}

	payload, err := s.refresh(ctx, p)
	if err != nil {
		return meteo.ForecastPayload{}, err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return meteo.ForecastPayload{}, fmt.Errorf("encode forecast payload: %w", err)
	}
	if err := s.cache.Upsert(ctx, key, raw, s.now()); err != nil {
		// The fresh payload is still good; only the next lookup pays again.
		s.log.Warn("weather cache write failed", "key", key, "error", err)
	}

	return payload, nil
}

func (s *Service) refresh(ctx context.Context, p Place) (meteo.ForecastPayload, error) {
	name := p.City
	if p.Region != "" {
		name = p.City + " " + p.Region
	}

	coord, err := s.geocoder.Search(ctx, name, p.Country)
	if err != nil {
		return meteo.ForecastPayload{}, err
	}

	payload, err := s.forecaster.Forecast(ctx, coord.Latitude, coord.Longitude)
	if err != nil {
		return meteo.ForecastPayload{}, err
	}
	return payload, nil
}
