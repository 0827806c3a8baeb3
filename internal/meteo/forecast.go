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

const defaultForecastURL = "https://api.open-meteo.com/v1/forecast"

// currentFields and dailyFields are the fixed field lists requested from the
// forecast service; ForecastPayload mirrors them.
const (
	currentFields = "temperature_2m,apparent_temperature,precipitation,weather_code,wind_speed_10m,relative_humidity_2m"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum,wind_speed_10m_max"
)

// ForecastClient fetches current and daily conditions for a coordinate.
type ForecastClient struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewForecastClient creates a client for the forecast service. baseURL may be
// empty to use the public endpoint.
func NewForecastClient(client *http.Client, baseURL string) *ForecastClient {
	if baseURL == "" {
		baseURL = defaultForecastURL
	}
	return &ForecastClient{
		baseURL: baseURL,
		httpCfg: defaultHTTPConfig(client),
		circuit: newBreaker("forecast"),
	}
}

// Forecast fetches the forecast document for a coordinate.
func (c *ForecastClient) Forecast(ctx context.Context, lat, lon float64) (ForecastPayload, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
		values.Set("timezone", "auto")
		values.Set("language", "es")
		values.Set("current", currentFields)
		values.Set("daily", dailyFields)

		u := fmt.Sprintf("%s?%s", c.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return ForecastPayload{}, fmt.Errorf("forecast request: %w", err)
	}
	defer resp.Body.Close()

	var payload ForecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ForecastPayload{}, fmt.Errorf("forecast decode: %w", err)
	}
	return payload, nil
}
