package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Freeeeeet/bus_booking_bot/internal/model"
)

// RemoteSource получает данные у LLM через Ollama-совместимый /api/chat
// со структурированным ответом по JSON-схеме
type RemoteSource struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewRemoteSource создаёт удалённый источник
func NewRemoteSource(baseURL, modelName string, timeout time.Duration) *RemoteSource {
	return &RemoteSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   modelName,
		client:  &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Format   map[string]any `json:"format"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

var terminalsSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"terminals": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{"type": "string"},
					"code": map[string]any{"type": "string"},
				},
				"required": []string{"name", "code"},
			},
		},
	},
	"required": []string{"terminals"},
}

var schedulesSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"schedules": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"company":        map[string]any{"type": "string"},
					"grade":          map[string]any{"type": "string", "enum": []string{"premium", "excellent", "standard"}},
					"departureTime":  map[string]any{"type": "string", "description": "HH:MM"},
					"arrivalTime":    map[string]any{"type": "string", "description": "HH:MM"},
					"duration":       map[string]any{"type": "string"},
					"price":          map[string]any{"type": "integer"},
					"totalSeats":     map[string]any{"type": "integer"},
					"availableSeats": map[string]any{"type": "integer"},
				},
				"required": []string{
					"company", "grade", "departureTime", "arrivalTime",
					"duration", "price", "totalSeats", "availableSeats",
				},
			},
		},
	},
	"required": []string{"schedules"},
}

const terminalsPrompt = `List the 15 major intercity express bus terminals in South Korea.
Use the Korean terminal name and a short uppercase Latin code (e.g. 서울경부 / SEL).`

const schedulesPrompt = `Generate 8 to 12 realistic express bus schedules from %s to %s on %s.
Companies: 중앙고속, 금호고속, 동양고속, 삼화고속, 한일고속.
Grades: premium (21 seats, 40000-50000 won), excellent (28 seats, 30000-38000 won), standard (45 seats, 20000-25000 won).
Prices are rounded to 100 won. Duration is written like "3시간 20분". Order by departure time.`

func (s *RemoteSource) Terminals(ctx context.Context) ([]model.Terminal, error) {
	var out struct {
		Terminals []model.Terminal `json:"terminals"`
	}
	if err := s.generate(ctx, terminalsPrompt, terminalsSchema, &out); err != nil {
		return nil, err
	}
	return out.Terminals, nil
}

func (s *RemoteSource) Schedules(ctx context.Context, departure, arrival, isoDate string) ([]model.BusSchedule, error) {
	var out struct {
		Schedules []model.BusSchedule `json:"schedules"`
	}
	prompt := fmt.Sprintf(schedulesPrompt, departure, arrival, isoDate)
	if err := s.generate(ctx, prompt, schedulesSchema, &out); err != nil {
		return nil, err
	}
	return out.Schedules, nil
}

func (s *RemoteSource) generate(ctx context.Context, prompt string, schema map[string]any, out any) error {
	body, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a data generator. Reply only with JSON matching the schema."},
			{Role: "user", Content: prompt},
		},
		Stream: false,
		Format: schema,
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("llm request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("llm API error: %s: %s", resp.Status, string(bodyBytes))
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return fmt.Errorf("failed to decode llm response: %w", err)
	}

	decoder := json.NewDecoder(strings.NewReader(chat.Message.Content))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedData, err)
	}

	return nil
}
