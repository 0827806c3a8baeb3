package meteo

// Coordinate is a geocoded place, rounded to 3 decimal places.
type Coordinate struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country_code"`
	Admin1    string  `json:"admin1,omitempty"`
}

// CurrentConditions mirrors the `current` block of the forecast response.
type CurrentConditions struct {
	Temperature         float64 `json:"temperature_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	Precipitation       float64 `json:"precipitation"`
	WeatherCode         int     `json:"weather_code"`
	WindSpeed           float64 `json:"wind_speed_10m"`
	RelativeHumidity    float64 `json:"relative_humidity_2m"`
}

// DailyForecast mirrors the `daily` block of the forecast response.
type DailyForecast struct {
	Time             []string  `json:"time"`
	WeatherCode      []int     `json:"weather_code"`
	TemperatureMax   []float64 `json:"temperature_2m_max"`
	TemperatureMin   []float64 `json:"temperature_2m_min"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
	WindSpeedMax     []float64 `json:"wind_speed_10m_max"`
}

// ForecastPayload is the forecast document stored in the weather cache and
// returned to callers.
type ForecastPayload struct {
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Timezone  string            `json:"timezone"`
	Current   CurrentConditions `json:"current"`
	Daily     DailyForecast     `json:"daily"`
}

// Place is the result of a reverse-geocoding lookup.
type Place struct {
	City    string `json:"city"`
	Country string `json:"country"`
}
