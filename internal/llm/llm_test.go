package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sant0-9/essaypolish/internal/config"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		wantName string
		wantErr  bool
	}{
		{name: "ollama without key", cfg: config.Config{Provider: "ollama"}, wantName: "ollama"},
		{name: "openai with key", cfg: config.Config{Provider: "openai", APIKey: "k"}, wantName: "openai"},
		{name: "openai without key", cfg: config.Config{Provider: "openai"}, wantErr: true},
		{name: "groq with key", cfg: config.Config{Provider: "groq", APIKey: "k"}, wantName: "groq"},
		{name: "openrouter without key", cfg: config.Config{Provider: "openrouter"}, wantErr: true},
		{name: "anthropic with key", cfg: config.Config{Provider: "anthropic", APIKey: "k"}, wantName: "anthropic"},
		{name: "anthropic without key", cfg: config.Config{Provider: "anthropic"}, wantErr: true},
		{name: "custom with url", cfg: config.Config{Provider: "custom", BaseURL: "http://localhost:9999/v1"}, wantName: "custom"},
		{name: "custom without url", cfg: config.Config{Provider: "custom"}, wantErr: true},
		{name: "unknown", cfg: config.Config{Provider: "nope"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			p, err := NewProvider(&cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider() error: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}

// drain reads a stream until Done, an error, or close
func drain(events <-chan StreamEvent) (string, error) {
	var out strings.Builder
	for ev := range events {
		if ev.Error != nil {
			return out.String(), ev.Error
		}
		out.WriteString(ev.Chunk)
		if ev.Done {
			break
		}
	}
	return out.String(), nil
}

func fakeOpenAI(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/models" {
			if r.Header.Get("Authorization") != "Bearer k" {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprint(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"object":"list","data":[{"id":"test-model","object":"model"}]}`)
			return
		}
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}

		var body struct {
			Model    string `json:"model"`
			Stream   bool   `json:"stream"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if len(body.Messages) != 1 || body.Messages[0].Role != "user" {
			http.Error(w, "expected one user message", http.StatusBadRequest)
			return
		}

		if !body.Stream {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"id":"1","object":"chat.completion","model":%q,`+
				`"choices":[{"index":0,"message":{"role":"assistant","content":"Revised version"},"finish_reason":"stop"}],`+
				`"usage":{"prompt_tokens":10,"completion_tokens":2,"total_tokens":12}}`, body.Model)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		for _, chunk := range []string{"Revised", " version"} {
			fmt.Fprintf(w, "data: {\"id\":\"1\",\"object\":\"chat.completion.chunk\",\"model\":%q,"+
				"\"choices\":[{\"index\":0,\"delta\":{\"content\":%q}}]}\n\n", body.Model, chunk)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
}

func TestOpenAIProviderComplete(t *testing.T) {
	srv := fakeOpenAI(t)
	defer srv.Close()

	p := NewOpenAIProvider("custom", srv.URL+"/v1", "k", "test-model")
	resp, err := p.Complete(context.Background(), NewPromptRequest("", "polish this"))
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if resp.Content != "Revised version" {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.Model != "test-model" {
		t.Errorf("Model = %q, want default model", resp.Model)
	}
	if resp.Usage.TotalTokens != 12 {
		t.Errorf("TotalTokens = %d, want 12", resp.Usage.TotalTokens)
	}
}

func TestOpenAIProviderStream(t *testing.T) {
	srv := fakeOpenAI(t)
	defer srv.Close()

	p := NewOpenAIProvider("custom", srv.URL+"/v1", "k", "test-model")
	events, err := p.Stream(context.Background(), NewPromptRequest("", "polish this"))
	if err != nil {
		t.Fatalf("Stream() error: %v", err)
	}

	got, err := drain(events)
	if err != nil {
		t.Fatalf("stream error: %v", err)
	}
	if got != "Revised version" {
		t.Errorf("streamed %q", got)
	}
}

func TestOpenAIProviderPing(t *testing.T) {
	srv := fakeOpenAI(t)
	defer srv.Close()

	ok := NewOpenAIProvider("custom", srv.URL+"/v1", "k", "test-model")
	if err := ok.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error: %v", err)
	}

	bad := NewOpenAIProvider("custom", srv.URL+"/v1", "wrong", "test-model")
	err := bad.Ping(context.Background())
	if err == nil || !strings.Contains(err.Error(), "invalid API key") {
		t.Errorf("Ping() with bad key = %v, want invalid API key", err)
	}
}

func TestAnthropicParamsSplitsSystem(t *testing.T) {
	p := NewAnthropicProvider("k", "")
	params := p.params(&CompletionRequest{
		Messages: []Message{
			{Role: "system", Content: "be brief"},
			{Role: "user", Content: "polish this"},
		},
		MaxTokens: 100,
	})

	if string(params.Model) != defaultAnthropicModel {
		t.Errorf("Model = %q", params.Model)
	}
	if len(params.System) != 1 || params.System[0].Text != "be brief" {
		t.Errorf("System = %+v", params.System)
	}
	if len(params.Messages) != 1 {
		t.Fatalf("Messages = %d, want 1", len(params.Messages))
	}
	if params.MaxTokens != 100 {
		t.Errorf("MaxTokens = %d", params.MaxTokens)
	}
}

func TestNewPromptRequest(t *testing.T) {
	req := NewPromptRequest("m", "prompt text")
	if req.Model != "m" || len(req.Messages) != 1 {
		t.Fatalf("unexpected request %+v", req)
	}
	if !strings.Contains(req.Messages[0].Content, "prompt text") || req.Messages[0].Role != "user" {
		t.Errorf("unexpected message %+v", req.Messages[0])
	}
}
