// ABOUTME: Tests for the Gemini REST client against a fake upstream
// ABOUTME: Covers discovery, fallback walking, prompt stitching and the unconfigured path

package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeUpstream builds an httptest server mimicking the generative language API.
// modelReplies maps model name to reply text; models absent from the map
// reject generateContent with a 404.
func fakeUpstream(t *testing.T, listed []string, modelReplies map[string]string) *Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/models", func(w http.ResponseWriter, r *http.Request) {
		type model struct {
			Name                       string   `json:"name"`
			SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
		}
		var models []model
		for _, name := range listed {
			models = append(models, model{
				Name:                       "models/" + name,
				SupportedGenerationMethods: []string{"generateContent"},
			})
		}
		json.NewEncoder(w).Encode(map[string]any{"models": models})
	})
	mux.HandleFunc("GET /v1beta/models", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"models": []any{}})
	})
	mux.HandleFunc("POST /v1beta/models/", func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/v1beta/models/")
		name = strings.TrimSuffix(name, ":generateContent")

		reply, ok := modelReplies[name]
		if !ok {
			http.Error(w, fmt.Sprintf("model %s not found", name), http.StatusNotFound)
			return
		}

		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": reply}}}},
			},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewClient("test-key")
	c.baseURL = srv.URL
	c.http = srv.Client()
	return c
}

func TestClient_Unconfigured(t *testing.T) {
	c := NewClient("")

	if c.Configured() {
		t.Error("Configured() should be false without a key")
	}

	reply, err := c.Reply(context.Background(), "hello", nil)
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if !strings.Contains(reply, "currently unavailable") {
		t.Errorf("reply = %q, want static unavailability notice", reply)
	}
}

func TestClient_ListModels(t *testing.T) {
	c := fakeUpstream(t, []string{"gemini-1.5-flash", "gemini-pro"}, nil)

	models := c.ListModels(context.Background())
	if len(models) != 2 {
		t.Fatalf("ListModels() = %v, want 2 models", models)
	}
	if models[0] != "gemini-1.5-flash" || models[1] != "gemini-pro" {
		t.Errorf("ListModels() = %v, want prefix-stripped names", models)
	}
}

func TestClient_ReplyUsesDiscoveredModel(t *testing.T) {
	c := fakeUpstream(t,
		[]string{"gemini-1.5-flash"},
		map[string]string{"gemini-1.5-flash": "Drink more water!"})

	reply, err := c.Reply(context.Background(), "hydration tips?", nil)
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if reply != "Drink more water!" {
		t.Errorf("reply = %q", reply)
	}
}

func TestClient_ReplyWalksFallbacks(t *testing.T) {
	// Discovery returns nothing; only the third fallback model works
	c := fakeUpstream(t, nil, map[string]string{"gemini-1.5-flash": "fallback answer"})

	reply, err := c.Reply(context.Background(), "question", nil)
	if err != nil {
		t.Fatalf("Reply() error = %v", err)
	}
	if reply != "fallback answer" {
		t.Errorf("reply = %q, want answer from fallback model", reply)
	}
}

func TestClient_ReplyAllModelsFail(t *testing.T) {
	c := fakeUpstream(t, nil, nil)

	_, err := c.Reply(context.Background(), "question", nil)
	if err == nil {
		t.Fatal("Reply() should fail when every model rejects the request")
	}
}

func TestBuildPrompt(t *testing.T) {
	history := []Message{
		{Role: "user", Content: "What is a good breakfast?"},
		{Role: "assistant", Content: "Oatmeal with fruit."},
	}

	prompt := buildPrompt("And for lunch?", history)

	if !strings.HasPrefix(prompt, "You are a Health, Diet, Nutrition, and Fitness Assistant.") {
		t.Error("prompt should open with the system instructions")
	}
	if !strings.Contains(prompt, "User: What is a good breakfast?") {
		t.Error("prompt should include prior user turns")
	}
	if !strings.Contains(prompt, "Assistant: Oatmeal with fruit.") {
		t.Error("prompt should include prior assistant turns")
	}
	if !strings.HasSuffix(prompt, "User Question: And for lunch?\n\nAssistant Response:") {
		t.Errorf("prompt should end with the new question, got tail %q", prompt[len(prompt)-60:])
	}

	historyIdx := strings.Index(prompt, "User: What is a good breakfast?")
	questionIdx := strings.Index(prompt, "User Question:")
	if historyIdx > questionIdx {
		t.Error("history should come before the new question")
	}
}
