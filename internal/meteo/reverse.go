package meteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"
)

const defaultReverseURL = "https://nominatim.openstreetmap.org/reverse"

// ReverseClient turns a device coordinate back into a place name.
type ReverseClient struct {
	baseURL   string
	userAgent string
	httpCfg   HTTPClientConfig
	circuit   *gobreaker.CircuitBreaker
}

// NewReverseClient creates a reverse-geocoding client. The service requires an
// identifying User-Agent on every request.
func NewReverseClient(client *http.Client, baseURL, userAgent string) *ReverseClient {
	if baseURL == "" {
		baseURL = defaultReverseURL
	}
	return &ReverseClient{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpCfg:   defaultHTTPConfig(client),
		circuit:   newBreaker("reverse-geocoding"),
	}
}

// Locate resolves lat/lon into a city and country. The city falls back through
// town, village and state when the finer-grained fields are absent.
func (c *ReverseClient) Locate(ctx context.Context, lat, lon float64) (Place, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("format", "jsonv2")
		values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
		values.Set("accept-language", "es")

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.userAgent)
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return Place{}, fmt.Errorf("reverse geocoding request: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Address struct {
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
			State   string `json:"state"`
			Country string `json:"country"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Place{}, fmt.Errorf("reverse geocoding decode: %w", err)
	}

	city := payload.Address.City
	if city == "" {
		city = payload.Address.Town
	}
	if city == "" {
		city = payload.Address.Village
	}
	if city == "" {
		city = payload.Address.State
	}

	return Place{City: city, Country: payload.Address.Country}, nil
}
