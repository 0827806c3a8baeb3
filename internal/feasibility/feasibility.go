// Package feasibility scores how suitable a location's conditions are for a
// given crop. The scoring is a linear penalty accumulation: each condition
// check is independent and either subtracts its fixed penalty or does not.
package feasibility

import (
	"fmt"
	"math"

	"github.com/dquispe/agrosat-advisor/internal/model"
	"github.com/dquispe/agrosat-advisor/internal/satellite"
)

// Defaults applied when a crop profile leaves a tolerance unset.
const (
	DefaultMinTemp       = 15.0
	DefaultMaxTemp       = 30.0
	DefaultIdealMoisture = 50.0
)

const (
	penaltyTemperature   = 30
	penaltyMoisture      = 20
	penaltyHumidity      = 15
	penaltyPrecipitation = 10
)

// Result is the outcome of one evaluation.
type Result struct {
	Score       int                    `json:"score"`
	Level       model.FeasibilityLevel `json:"level"`
	Explanation string                 `json:"explanation"`
}

// Evaluate scores a crop/reading pairing. Deterministic, no I/O.
func Evaluate(crop model.CropType, r satellite.Reading) Result {
	minTemp := orDefault(crop.OptimalConditions.MinTemp, DefaultMinTemp)
	maxTemp := orDefault(crop.OptimalConditions.MaxTemp, DefaultMaxTemp)
	idealMoist := orDefault(crop.OptimalConditions.IdealMoisture, DefaultIdealMoisture)

	score := 100.0
	if r.Temperature < minTemp || r.Temperature > maxTemp {
		score -= penaltyTemperature
	}
	if math.Abs(r.SoilMoisture-idealMoist) > 20 {
		score -= penaltyMoisture
	}
	if r.Humidity < 35 || r.Humidity > 90 {
		score -= penaltyHumidity
	}
	precip := orDefault(r.Precipitation, 0)
	if precip > 20 {
		score -= penaltyPrecipitation
	}
	if score < 0 {
		score = 0
	}

	final := int(math.Round(score))
	return Result{
		Score:       final,
		Level:       Classify(final),
		Explanation: explain(crop.Name, minTemp, maxTemp, final, r),
	}
}

// Classify maps a score onto the three-tier level. The favorable boundary is
// inclusive: a score of exactly 70 is green.
func Classify(score int) model.FeasibilityLevel {
	switch {
	case score >= 70:
		return model.LevelGreen
	case score >= 40:
		return model.LevelYellow
	default:
		return model.LevelRed
	}
}

func explain(cropName string, minTemp, maxTemp float64, score int, r satellite.Reading) string {
	return fmt.Sprintf(
		"El cultivo de %s obtiene una puntuación de %d/100 (%s). Condiciones: temperatura %.1f°C (rango óptimo %.0f–%.0f°C), humedad %.1f%%, humedad del suelo %.1f%%, precipitación %.1f mm.",
		cropName, score, levelWord(Classify(score)),
		r.Temperature, minTemp, maxTemp, r.Humidity, r.SoilMoisture, orDefault(r.Precipitation, 0),
	)
}

func levelWord(l model.FeasibilityLevel) string {
	switch l {
	case model.LevelGreen:
		return "favorable"
	case model.LevelYellow:
		return "moderado"
	default:
		return "desfavorable"
	}
}

func orDefault(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}
