// Package gemini implements the LLM topic classifier against the Gemini
// generateContent REST API. Any failure (transport, envelope, or response
// parsing) is returned as an error so the caller can switch to the local
// fallback parser; the client never returns a partial result.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/knowtify/backend/internal/config"
	"github.com/knowtify/backend/internal/domain"
)

// Client calls the Gemini text-generation endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	log        *slog.Logger
}

// New creates a Gemini client from configuration.
func New(cfg config.GeminiConfig, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		log:        logger.With("client", "gemini"),
	}
}

// Request/response envelope for models/<model>:generateContent.

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Classify sends the sentence to the model and returns the extracted
// topics in order. The prompt pins the closed subject list, so returned
// subjects should already match seeded subjects (unknown ones are still
// accepted and created lazily downstream).
func (c *Client) Classify(ctx context.Context, sentence string) ([]domain.ClassifiedTopic, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini: api key not configured")
	}

	text, err := c.generate(ctx, buildPrompt(sentence))
	if err != nil {
		return nil, err
	}

	topics, err := decodeTopics(text)
	if err != nil {
		c.log.DebugContext(ctx, "unparseable model response", slog.String("response", text))
		return nil, err
	}

	return topics, nil
}

// generate performs one generateContent call and returns the generated text
// at candidates[0].content.parts[0].text. Absence of that path is a hard
// failure.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.1,
			MaxOutputTokens: 1000,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: call api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: api status %d", resp.StatusCode)
	}

	var envelope generateResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("gemini: decode envelope: %w", err)
	}

	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no text in response")
	}

	return envelope.Candidates[0].Content.Parts[0].Text, nil
}

// buildPrompt creates the classification prompt for a single sentence.
func buildPrompt(sentence string) string {
	return fmt.Sprintf(`Analyze this study entry and extract learning topics with their academic subjects.

Input: %q

Instructions:
1. Extract specific topics/concepts studied
2. Categorize each topic under the most appropriate CS subject
3. Determine if topic is priority (if user struggled/found difficult/confusing/spent extra time)
4. Provide confidence score (0.1-1.0)

Available subjects: %s

Respond with ONLY valid JSON array:
[{"topic":"specific topic name","subject":"exact subject from list above","priority":true/false,"reason":"why priority or not","confidence":0.85}]

Example input: "I struggled with React hooks today and also learned quicksort"
Example output: [{"topic":"React hooks","subject":"Web Development","priority":true,"reason":"user struggled with concept","confidence":0.9},{"topic":"quicksort algorithm","subject":"Data Structures & Algorithms","priority":false,"reason":"regular learning","confidence":0.85}]`,
		sentence, strings.Join(domain.DefaultSubjects, ", "))
}

// decodeTopics parses the model's reply into classified topics. The reply
// may be wrapped in markdown fences or surrounded by prose; this tolerant
// cleanup is kept local to the client so the strictness boundary with the
// aggregation code stays explicit.
func decodeTopics(text string) ([]domain.ClassifiedTopic, error) {
	payload := extractJSONArray(text)

	var elements []map[string]any
	if err := json.Unmarshal([]byte(payload), &elements); err != nil {
		return nil, fmt.Errorf("gemini: response is not a JSON array: %w", err)
	}

	topics := make([]domain.ClassifiedTopic, 0, len(elements))
	for _, el := range elements {
		topics = append(topics, domain.ClassifiedTopic{
			Topic:      stringField(el, "topic", ""),
			Subject:    stringField(el, "subject", domain.FallbackSubject),
			Priority:   boolField(el, "priority"),
			Reason:     stringField(el, "reason", ""),
			Confidence: floatField(el, "confidence", 0.5),
		})
	}
	return topics, nil
}

// extractJSONArray strips markdown code fences and, if the remaining text
// still does not start with '[', takes the span between the first '[' and
// the last ']'. The result may still be invalid JSON; the strict parse in
// decodeTopics decides.
func extractJSONArray(text string) string {
	s := strings.TrimSpace(text)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "```"))
		if strings.HasPrefix(strings.ToLower(s), "json") {
			s = strings.TrimSpace(s[4:])
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}

	if !strings.HasPrefix(s, "[") {
		lb := strings.Index(s, "[")
		rb := strings.LastIndex(s, "]")
		if lb >= 0 && rb >= lb {
			s = strings.TrimSpace(s[lb : rb+1])
		}
	}
	return s
}

func stringField(el map[string]any, key, fallback string) string {
	if v, ok := el[key].(string); ok {
		return v
	}
	return fallback
}

func boolField(el map[string]any, key string) bool {
	v, _ := el[key].(bool)
	return v
}

func floatField(el map[string]any, key string, fallback float64) float64 {
	if v, ok := el[key].(float64); ok {
		return v
	}
	return fallback
}
