package satellite

import (
	"math"
	"testing"
)

func TestReadIsDeterministic(t *testing.T) {
	coords := [][2]float64{
		{-9.93, -76.24}, // Huánuco
		{0, 0},
		{51.5, -0.12},
		{-33.45, -70.66},
	}

	for _, c := range coords {
		a := Read(c[0], c[1])
		b := Read(c[0], c[1])

		if a.Temperature != b.Temperature || a.Humidity != b.Humidity || a.SoilMoisture != b.SoilMoisture {
			t.Errorf("Read(%v, %v) not deterministic: %+v vs %+v", c[0], c[1], a, b)
		}
		if *a.Precipitation != *b.Precipitation {
			t.Errorf("Read(%v, %v) precipitation not deterministic", c[0], c[1])
		}
	}
}

func TestReadRanges(t *testing.T) {
	for lat := -80.0; lat <= 80; lat += 13.7 {
		for lon := -170.0; lon <= 170; lon += 23.9 {
			r := Read(lat, lon)

			check := func(name string, v, lo, hi float64) {
				t.Helper()
				if v < lo || v > hi {
					t.Errorf("Read(%v, %v): %s = %v outside [%v, %v]", lat, lon, name, v, lo, hi)
				}
				if math.Abs(math.Round(v*10)-v*10) > 1e-9 {
					t.Errorf("Read(%v, %v): %s = %v not rounded to 1 decimal", lat, lon, name, v)
				}
			}

			check("temperature", r.Temperature, 14, 30)
			check("humidity", r.Humidity, 40, 85)
			check("soil moisture", r.SoilMoisture, 25, 75)
			check("precipitation", *r.Precipitation, 0, 15)
		}
	}
}
