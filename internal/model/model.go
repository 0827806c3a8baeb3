package model

import "time"

// FeasibilityLevel is the persisted three-tier classification of a score.
type FeasibilityLevel string

const (
	LevelGreen  FeasibilityLevel = "green"  // favorable, score >= 70
	LevelYellow FeasibilityLevel = "yellow" // moderate, 40 <= score < 70
	LevelRed    FeasibilityLevel = "red"    // unfavorable, score < 40
)

// User mirrors a profile managed by the external identity provider.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FullName  string    `gorm:"size:255" json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// OptimalConditions is the per-crop tolerance profile. Absent values fall
// back to the evaluator defaults (min temp 15, max temp 30, ideal moisture 50).
type OptimalConditions struct {
	MinTemp       *float64 `json:"min_temp,omitempty"`
	MaxTemp       *float64 `json:"max_temp,omitempty"`
	MinMoisture   *float64 `json:"min_moisture,omitempty"`
	IdealMoisture *float64 `json:"ideal_moisture,omitempty"`
}

// CropType is immutable reference data seeded at deployment time.
type CropType struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	Name              string            `gorm:"uniqueIndex;size:100;not null" json:"name"`
	OptimalConditions OptimalConditions `gorm:"serializer:json" json:"optimal_conditions"`
	CreatedAt         time.Time         `json:"created_at"`
}

// Recommendation is the persisted outcome of one feasibility evaluation.
// Exactly one of UserID/AnonymousID is set; created once, never updated.
type Recommendation struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	UserID      *string `gorm:"index;size:36;check:chk_owner_xor,(user_id IS NULL) <> (anonymous_id IS NULL)" json:"user_id,omitempty"`
	AnonymousID *string `gorm:"index;size:20" json:"anonymous_id,omitempty"`

	CropTypeID uint     `gorm:"index;not null" json:"crop_type_id"`
	CropType   CropType `gorm:"constraint:OnDelete:RESTRICT" json:"crop_type"`

	Latitude     float64 `gorm:"type:numeric(10,7)" json:"latitude"`
	Longitude    float64 `gorm:"type:numeric(10,7)" json:"longitude"`
	LocationName string  `gorm:"size:255" json:"location_name,omitempty"`

	FeasibilityScore   int              `gorm:"check:chk_score,feasibility_score >= 0 AND feasibility_score <= 100" json:"feasibility_score"`
	FeasibilityLevel   FeasibilityLevel `gorm:"size:10;check:chk_level,feasibility_level IN ('green','yellow','red')" json:"feasibility_level"`
	RecommendationText string           `json:"recommendation_text"`

	SoilMoisture  float64 `gorm:"type:numeric(5,2)" json:"soil_moisture"`
	Temperature   float64 `gorm:"type:numeric(5,2)" json:"temperature"`
	Precipitation float64 `gorm:"type:numeric(6,2)" json:"precipitation"`

	DeviceInfo string    `gorm:"size:255" json:"device_info,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// WeatherCache holds the last-fetched forecast payload for a place key.
// Overwritten in place whenever a lookup finds the row stale.
type WeatherCache struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:255;not null" json:"key"`
	Payload   []byte    `gorm:"type:json" json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

func (WeatherCache) TableName() string { return "weather_cache" }

// All lists every entity for AutoMigrate.
func All() []any {
	return []any{&User{}, &CropType{}, &Recommendation{}, &WeatherCache{}}
}
