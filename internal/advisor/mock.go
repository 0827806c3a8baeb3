package advisor

import (
	"context"
	"fmt"
)

type mockClient struct{}

// NewMock returns a deterministic Client used when no LLM endpoint is
// configured.
func NewMock() Client { return &mockClient{} }

func (m *mockClient) Advise(_ context.Context, ev Evaluation) (string, error) {
	switch ev.Level {
	case "green":
		return fmt.Sprintf(
			"Las condiciones para %s son favorables (%d/100). Mantenga el riego habitual y monitoree la humedad del suelo (%.1f%%).",
			ev.CropName, ev.Score, ev.SoilMoisture), nil
	case "yellow":
		return fmt.Sprintf(
			"Las condiciones para %s son moderadas (%d/100). Considere ajustar el riego: humedad del suelo %.1f%%, temperatura %.1f°C.",
			ev.CropName, ev.Score, ev.SoilMoisture, ev.Temperature), nil
	default:
		return fmt.Sprintf(
			"Las condiciones para %s son desfavorables (%d/100). Evalúe un cultivo alternativo o medidas de protección antes de sembrar.",
			ev.CropName, ev.Score), nil
	}
}
