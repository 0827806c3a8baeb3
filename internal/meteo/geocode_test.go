package meteo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchPicksMostPopulousInCountry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("count") != "5" || q.Get("language") != "es" || q.Get("format") != "json" {
			t.Errorf("unexpected query parameters: %v", q)
		}
		fmt.Fprint(w, `{"results":[
			{"name":"Amarilis","latitude":-9.9305501,"longitude":-76.2345678,"country_code":"PE","admin1":"Huánuco","population":67617},
			{"name":"Amarilis Norte","latitude":-9.1,"longitude":-76.1,"country_code":"PE","admin1":"Huánuco","population":120000},
			{"name":"Amarillo","latitude":35.2,"longitude":-101.8,"country_code":"US","admin1":"Texas","population":199000}
		]}`)
	}))
	defer srv.Close()

	c := NewGeocodingClient(srv.Client(), srv.URL)
	coord, err := c.Search(context.Background(), "Amarilis Huánuco", "PE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if coord.Name != "Amarilis Norte" {
		t.Errorf("picked %q, want the most populous PE candidate", coord.Name)
	}
	if coord.Latitude != -9.1 || coord.Longitude != -76.1 {
		t.Errorf("coordinate = (%v, %v)", coord.Latitude, coord.Longitude)
	}
}

func TestSearchRoundsToThreeDecimals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[
			{"name":"Amarilis","latitude":-9.9305501,"longitude":-76.2345678,"country_code":"PE","population":67617}
		]}`)
	}))
	defer srv.Close()

	c := NewGeocodingClient(srv.Client(), srv.URL)
	coord, err := c.Search(context.Background(), "Amarilis", "PE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if coord.Latitude != -9.931 {
		t.Errorf("latitude = %v, want -9.931", coord.Latitude)
	}
	if coord.Longitude != -76.235 {
		t.Errorf("longitude = %v, want -76.235", coord.Longitude)
	}
}

func TestSearchFallsBackWhenNoCountryMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results":[
			{"name":"Springfield","latitude":39.8,"longitude":-89.65,"country_code":"US","population":114000},
			{"name":"Springfield","latitude":42.1,"longitude":-72.59,"country_code":"US","population":155000}
		]}`)
	}))
	defer srv.Close()

	c := NewGeocodingClient(srv.Client(), srv.URL)
	coord, err := c.Search(context.Background(), "Springfield", "PE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// No PE candidate: the best available hit (first result) wins.
	if coord.Name != "Springfield" || coord.Latitude != 39.8 {
		t.Errorf("fallback picked (%q, %v)", coord.Name, coord.Latitude)
	}
}

func TestSearchNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	c := NewGeocodingClient(srv.Client(), srv.URL)
	_, err := c.Search(context.Background(), "Nowhere", "PE")
	if !errors.Is(err, ErrNoLocationFound) {
		t.Fatalf("error = %v, want ErrNoLocationFound", err)
	}
}
