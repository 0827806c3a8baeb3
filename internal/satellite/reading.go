// Package satellite fabricates environmental readings as a deterministic
// function of a coordinate. It stands in for a real satellite-data feed:
// results are reproducible (same lat/lon always yields the same reading)
// while still varying visibly across locations.
package satellite

import "math"

// Reading holds the environmental values derived for one coordinate.
type Reading struct {
	Temperature   float64  `json:"temperature"`    // °C
	Humidity      float64  `json:"humidity"`       // relative, %
	SoilMoisture  float64  `json:"soil_moisture"`  // %
	Precipitation *float64 `json:"precipitation,omitempty"` // mm
}

// Per-field seed offsets. Arbitrary but fixed: changing them changes every
// derived reading.
const (
	tempOffset   = 0.13
	humOffset    = 0.41
	soilOffset   = 0.71
	precipOffset = 0.29
)

// Read derives a Reading from a coordinate. No I/O, no randomness.
func Read(lat, lon float64) Reading {
	seed := math.Abs(math.Sin(37.7*lat + 17.3*lon))

	precip := round1(remap(seed, precipOffset, 0, 15))
	return Reading{
		Temperature:   round1(remap(seed, tempOffset, 14, 30)),
		Humidity:      round1(remap(seed, humOffset, 40, 85)),
		SoilMoisture:  round1(remap(seed, soilOffset, 25, 75)),
		Precipitation: &precip,
	}
}

// remap offsets the seed, wraps it back into [0,1) and stretches it linearly
// into [lo,hi].
func remap(seed, offset, lo, hi float64) float64 {
	v := math.Mod(seed+offset, 1)
	return lo + v*(hi-lo)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
