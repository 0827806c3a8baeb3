// Package advisor turns a stored feasibility evaluation into farmer-facing
// advice through an OpenAI-compatible chat endpoint, with a deterministic
// fallback when no endpoint is configured.
package advisor

import "context"

const systemPrompt = "Eres un asistente útil y claro. Responde en español con precisión y brevedad."

// Evaluation summarizes one stored recommendation for the model.
type Evaluation struct {
	CropName      string  `json:"crop_name"`
	Level         string  `json:"feasibility_level"`
	Score         int     `json:"feasibility_score"`
	Temperature   float64 `json:"temperature"`
	SoilMoisture  float64 `json:"soil_moisture"`
	Precipitation float64 `json:"precipitation"`
	LocationName  string  `json:"location_name"`
}

// Client produces advisory text for an evaluation.
type Client interface {
	Advise(ctx context.Context, ev Evaluation) (string, error)
}
