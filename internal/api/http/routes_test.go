package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/dquispe/agrosat-advisor/internal/advisor"
	"github.com/dquispe/agrosat-advisor/internal/database"
	"github.com/dquispe/agrosat-advisor/internal/meteo"
	"github.com/dquispe/agrosat-advisor/internal/model"
	"github.com/dquispe/agrosat-advisor/internal/recommend"
	"github.com/dquispe/agrosat-advisor/internal/store"
	"github.com/dquispe/agrosat-advisor/internal/weather"
)

type stubWeather struct {
	payload meteo.ForecastPayload
	err     error
	lastKey string
}

func (s *stubWeather) Lookup(_ context.Context, p weather.Place) (meteo.ForecastPayload, error) {
	s.lastKey = p.Key()
	return s.payload, s.err
}

type stubReverse struct{}

func (stubReverse) Locate(context.Context, float64, float64) (meteo.Place, error) {
	return meteo.Place{City: "Amarilis", Country: "Perú"}, nil
}

func newTestApp(t *testing.T) (*fiber.App, *stubWeather) {
	t.Helper()

	db, err := database.Open("")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	crops := store.NewCropStore(db)
	if err := crops.Seed(context.Background(), store.DefaultCrops()); err != nil {
		t.Fatalf("seed crops: %v", err)
	}

	sw := &stubWeather{}
	app := fiber.New()
	RegisterRoutes(app, Deps{
		Recommender: recommend.NewService(crops, store.NewRecommendationStore(db)),
		Weather:     sw,
		Reverse:     stubReverse{},
		Crops:       crops,
		Users:       store.NewUserStore(db),
		Advisor:     advisor.NewMock(),
	})
	return app, sw
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func TestSubmitValidation(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"missing crop name", map[string]any{"latitude": -9.93, "longitude": -76.24, "anonymous_id": "ANON-2026-000001"}, http.StatusBadRequest},
		{"latitude out of range", map[string]any{"crop_name": "papa", "latitude": 95.0, "longitude": -76.24, "anonymous_id": "ANON-2026-000001"}, http.StatusBadRequest},
		{"malformed anonymous id", map[string]any{"crop_name": "papa", "latitude": -9.93, "longitude": -76.24, "anonymous_id": "ANON-26-1"}, http.StatusBadRequest},
		{"both identities", map[string]any{"crop_name": "papa", "latitude": -9.93, "longitude": -76.24, "anonymous_id": "ANON-2026-000001", "user_id": "u-1"}, http.StatusBadRequest},
		{"no identity", map[string]any{"crop_name": "papa", "latitude": -9.93, "longitude": -76.24}, http.StatusBadRequest},
		{"unknown crop", map[string]any{"crop_name": "banana", "latitude": -9.93, "longitude": -76.24, "anonymous_id": "ANON-2026-000001"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/api/v1/recommendations", tt.body)
			if resp.StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestSubmitAndHistory(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/recommendations", map[string]any{
		"crop_name":     "papa",
		"latitude":      -9.93,
		"longitude":     -76.24,
		"location_name": "Amarilis",
		"anonymous_id":  "ANON-2026-000042",
		"device_info":   "android",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var rec model.Recommendation
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if rec.FeasibilityScore < 0 || rec.FeasibilityScore > 100 {
		t.Errorf("score %d outside [0,100]", rec.FeasibilityScore)
	}
	switch rec.FeasibilityLevel {
	case model.LevelGreen, model.LevelYellow, model.LevelRed:
	default:
		t.Errorf("unexpected level %q", rec.FeasibilityLevel)
	}
	if rec.SoilMoisture == 0 && rec.Temperature == 0 {
		t.Error("synthetic reading missing from the stored record")
	}

	// Same coordinate resubmitted yields the same reading and score.
	resp = postJSON(t, app, "/api/v1/recommendations", map[string]any{
		"crop_name":    "papa",
		"latitude":     -9.93,
		"longitude":    -76.24,
		"anonymous_id": "ANON-2026-000042",
	})
	var again model.Recommendation
	if err := json.NewDecoder(resp.Body).Decode(&again); err != nil {
		t.Fatal(err)
	}
	if again.FeasibilityScore != rec.FeasibilityScore || again.Temperature != rec.Temperature {
		t.Errorf("resubmission differs: %d/%v vs %d/%v",
			again.FeasibilityScore, again.Temperature, rec.FeasibilityScore, rec.Temperature)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?anonymous_id=ANON-2026-000042", nil)
	hresp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	var history []model.Recommendation
	if err := json.NewDecoder(hresp.Body).Decode(&history); err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 {
		t.Fatalf("history has %d records, want 2", len(history))
	}
	if history[0].ID != again.ID {
		t.Errorf("history not newest first: got id %d first", history[0].ID)
	}
}

func TestHistoryWithoutIdentityIsEmptyList(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var history []model.Recommendation
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		t.Fatal(err)
	}
	if len(history) != 0 {
		t.Fatalf("got %d records, want empty list", len(history))
	}
}

func TestWeatherEndpoint(t *testing.T) {
	app, sw := newTestApp(t)

	// Missing required query parameters.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=Amarilis", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	sw.payload = meteo.ForecastPayload{Current: meteo.CurrentConditions{Temperature: 20.1}}
	req = httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=Amarilis&region=Hu%C3%A1nuco&country=PE", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if sw.lastKey != "PE|Amarilis|Huánuco" {
		t.Errorf("cache key = %q", sw.lastKey)
	}

	sw.err = meteo.ErrNoLocationFound
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=Nowhere&country=PE", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for no location found", resp.StatusCode)
	}

	sw.err = fmt.Errorf("forecast request: unexpected status code: 503")
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=Amarilis&country=PE", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502 for transport failure", resp.StatusCode)
	}
}

func TestReverseGeocodeEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/geo/reverse?lat=-9.84&lon=-76.13", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var place meteo.Place
	if err := json.NewDecoder(resp.Body).Decode(&place); err != nil {
		t.Fatal(err)
	}
	if place.City != "Amarilis" {
		t.Errorf("city = %q", place.City)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/geo/reverse?lat=abc&lon=1", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for bad lat", resp.StatusCode)
	}
}

func TestAdviceEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/advice", map[string]any{
		"crop_name":         "papa",
		"feasibility_level": "yellow",
		"feasibility_score": 55,
		"temperature":       18.2,
		"soil_moisture":     42.0,
		"precipitation":     3.5,
		"location_name":     "Amarilis",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Message == "" {
		t.Error("empty advice message")
	}

	resp = postJSON(t, app, "/api/v1/advice", map[string]any{
		"crop_name":         "papa",
		"feasibility_level": "purple",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for invalid level", resp.StatusCode)
	}
}

func TestUserUpsert(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/users", map[string]any{
		"email":     "ines@example.pe",
		"full_name": "Inés Quispe",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var u model.User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		t.Fatal(err)
	}
	if u.ID == "" {
		t.Error("user id was not assigned")
	}

	resp = postJSON(t, app, "/api/v1/users", map[string]any{"full_name": "sin correo"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for missing email", resp.StatusCode)
	}
}
