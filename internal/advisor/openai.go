package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type openAI struct {
	endpoint string
	key      string
	model    string
	client   *http.Client
}

// NewOpenAI creates a Client against an OpenAI-compatible chat endpoint.
func NewOpenAI(client *http.Client, endpoint, key, model string) Client {
	return &openAI{endpoint: endpoint, key: key, model: model, client: client}
}

func (c *openAI) Advise(ctx context.Context, ev Evaluation) (string, error) {
	reqBody := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": renderPrompt(ev)},
		},
		"temperature": 0.7,
		"max_tokens":  200,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.endpoint, "/")+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("advisor endpoint status %d", resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("advisor endpoint returned no choices")
	}

	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("advisor endpoint returned empty content")
	}
	return content, nil
}

func renderPrompt(ev Evaluation) string {
	return fmt.Sprintf(
		"Para el cultivo %s en %s: Viabilidad %s (puntuación %d). Condiciones: %.1f°C, humedad del suelo %.1f%%, precipitación %.1f mm. ¿Qué recomendaciones puedes dar al agricultor?",
		ev.CropName, ev.LocationName, ev.Level, ev.Score,
		ev.Temperature, ev.SoilMoisture, ev.Precipitation,
	)
}
