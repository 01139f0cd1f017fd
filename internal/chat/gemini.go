// ABOUTME: REST client for the Gemini generative language API
// ABOUTME: Discovers usable models, walks a fallback list and stitches history into the prompt

package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoWorkingModel indicates every candidate model rejected the request.
var ErrNoWorkingModel = errors.New("no working model found")

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// unconfiguredReply is returned when no API key is set. The chat surface
// stays up and polite instead of erroring.
const unconfiguredReply = "AI assistant is currently unavailable. Please check the API configuration."

// systemPrompt scopes the assistant to health, diet and fitness topics.
const systemPrompt = `You are a Health, Diet, Nutrition, and Fitness Assistant.

You must ONLY answer questions related to:
- Health & wellness
- Diet & nutrition
- Fitness & exercise
- Weight management
- Healthy lifestyle habits

Rules:
- If a question is NOT related to health, diet, or fitness, politely refuse.
- Do NOT answer questions about politics, finance, coding, relationships, or any other topics.
- Always provide safe, general advice only.
- Never provide medical diagnosis or prescriptions.
- Always include a short disclaimer when giving advice.

Response Style:
- Friendly
- Encouraging
- Simple language
- Actionable tips

Example response format:
[Your helpful answer]

⚠️ Disclaimer: This is general health information and should not replace professional medical advice. Please consult with a healthcare provider for personalized guidance.`

// fallbackModels is tried when model discovery returns nothing, and appended
// after discovered models otherwise.
var fallbackModels = []string{
	"gemini-pro",
	"gemini-1.5-pro",
	"gemini-1.5-flash",
	"gemini-1.0-pro",
}

// Message is one turn of conversation history supplied by the chat widget.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client talks to the Gemini REST API. A client with an empty API key is
// valid and answers every request with a static unavailability notice.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a Gemini client. An empty apiKey is allowed.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  slog.Default().With("component", "chat"),
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// ListModels queries the v1 and v1beta model listings and returns the names
// of models that support content generation, deduplicated, without the
// "models/" prefix. Listing failures are skipped; an empty result is fine.
func (c *Client) ListModels(ctx context.Context) []string {
	var names []string
	seen := make(map[string]bool)

	for _, version := range []string{"v1", "v1beta"} {
		endpoint := fmt.Sprintf("%s/%s/models?key=%s", c.baseURL, version, url.QueryEscape(c.apiKey))

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			continue
		}

		resp, err := c.http.Do(req)
		if err != nil {
			c.logger.Debug("model listing failed", "version", version, "error", err)
			continue
		}

		var listing struct {
			Models []struct {
				Name                       string   `json:"name"`
				SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
			} `json:"models"`
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			continue
		}
		err = json.NewDecoder(resp.Body).Decode(&listing)
		resp.Body.Close()
		if err != nil {
			continue
		}

		for _, m := range listing.Models {
			supported := false
			for _, method := range m.SupportedGenerationMethods {
				if method == "generateContent" {
					supported = true
					break
				}
			}
			if !supported {
				continue
			}

			name := strings.TrimPrefix(m.Name, "models/")
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	return names
}

// Reply generates an assistant response for the user message, giving the
// model the prior conversation turns for context. Discovered models are
// tried first, then the fallback list; the first model that answers wins.
func (c *Client) Reply(ctx context.Context, message string, history []Message) (string, error) {
	if !c.Configured() {
		return unconfiguredReply, nil
	}

	candidates := c.ListModels(ctx)
	for _, fallback := range fallbackModels {
		found := false
		for _, name := range candidates {
			if name == fallback {
				found = true
				break
			}
		}
		if !found {
			candidates = append(candidates, fallback)
		}
	}

	prompt := buildPrompt(message, history)

	var lastErr error
	for _, model := range candidates {
		text, err := c.generate(ctx, model, prompt)
		if err != nil {
			c.logger.Debug("model rejected request", "model", model, "error", err)
			lastErr = err
			continue
		}
		if text == "" {
			text = "I apologize, but I could not generate a response. Please try again."
		}
		return text, nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("%w: last error: %v", ErrNoWorkingModel, lastErr)
	}
	return "", ErrNoWorkingModel
}

// generate calls generateContent on a single model.
func (c *Client) generate(ctx context.Context, model, prompt string) (string, error) {
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, model, url.QueryEscape(c.apiKey))

	body, err := json.Marshal(map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling model %s: %w", model, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("model %s returned %d: %s", model, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model %s returned no candidates", model)
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

// buildPrompt stitches the system prompt, prior turns and the new question
// into a single text prompt.
func buildPrompt(message string, history []Message) string {
	var sb strings.Builder
	sb.WriteString(systemPrompt)
	sb.WriteString("\n")

	for _, turn := range history {
		switch turn.Role {
		case "assistant":
			sb.WriteString("\nAssistant: ")
		default:
			sb.WriteString("\nUser: ")
		}
		sb.WriteString(turn.Content)
	}

	sb.WriteString("\n\nUser Question: ")
	sb.WriteString(message)
	sb.WriteString("\n\nAssistant Response:")
	return sb.String()
}
