package meteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/sony/gobreaker"
)

const defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

// GeocodingClient resolves a place name into a coordinate.
type GeocodingClient struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewGeocodingClient creates a client for the geocoding service. baseURL may
// be empty to use the public endpoint.
func NewGeocodingClient(client *http.Client, baseURL string) *GeocodingClient {
	if baseURL == "" {
		baseURL = defaultGeocodingURL
	}
	return &GeocodingClient{
		baseURL: baseURL,
		httpCfg: defaultHTTPConfig(client),
		circuit: newBreaker("geocoding"),
	}
}

type geocodeResult struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	CountryCode string  `json:"country_code"`
	Admin1      string  `json:"admin1"`
	Admin2      string  `json:"admin2"`
	Population  int64   `json:"population"`
}

// Search geocodes a free-text place name, preferring candidates that share the
// given country code (most populous first). When no candidate matches the
// country it falls back to the single best available hit; zero candidates is
// ErrNoLocationFound.
func (c *GeocodingClient) Search(ctx context.Context, name, countryCode string) (Coordinate, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("name", name)
		values.Set("count", "5")
		values.Set("language", "es")
		values.Set("format", "json")
		values.Set("country", countryCode)

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return Coordinate{}, fmt.Errorf("geocoding request: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Results []geocodeResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Coordinate{}, fmt.Errorf("geocoding decode: %w", err)
	}

	best, err := pickCandidate(payload.Results, countryCode)
	if err != nil {
		return Coordinate{}, err
	}

	return Coordinate{
		Name:      best.Name,
		Latitude:  round3(best.Latitude),
		Longitude: round3(best.Longitude),
		Country:   best.CountryCode,
		Admin1:    best.Admin1,
	}, nil
}

func pickCandidate(results []geocodeResult, countryCode string) (geocodeResult, error) {
	if len(results) == 0 {
		return geocodeResult{}, ErrNoLocationFound
	}

	matching := make([]geocodeResult, 0, len(results))
	for _, r := range results {
		if strings.EqualFold(r.CountryCode, countryCode) {
			matching = append(matching, r)
		}
	}
	if len(matching) == 0 {
		// No candidate shares the country code; take the best available hit.
		return results[0], nil
	}

	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].Population > matching[j].Population
	})
	return matching[0], nil
}
