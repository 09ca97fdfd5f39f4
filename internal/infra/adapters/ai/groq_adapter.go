package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pkoukk/tiktoken-go"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.AIServiceAdapter = (*GroqAdapter)(nil)

// GroqAdapter implements adapter.AIServiceAdapter against Groq's
// OpenAI-compatible Chat Completions API.
type GroqAdapter struct {
	apiKey string
	base   string // e.g., https://api.groq.com/openai/v1
	model  string
	client *http.Client
}

func NewGroqAdapter(apiKey, baseURL, model string) (*GroqAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("groq api key empty")
	}
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}
	return &GroqAdapter{
		apiKey: apiKey,
		base:   baseURL,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (g *GroqAdapter) ListModels(ctx context.Context) ([]string, error) {
	return []string{g.model}, nil
}

func (g *GroqAdapter) GetModelInfo(model string) (adapter.ModelInfo, error) {
	if model == "" {
		model = g.model
	}
	return adapter.ModelInfo{
		Name:        model,
		Description: "Groq OpenAI-compatible chat model",
		Supports:    []string{"text"},
	}, nil
}

// CountTokens approximates prompt size with the cl100k_base encoding;
// Groq does not expose an exact tokenizer for every hosted model.
func (g *GroqAdapter) CountTokens(ctx context.Context, model string, messages []adapter.Message) (int, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return 0, err
	}
	total := 0
	for _, m := range messages {
		// 4 tokens of per-message chat framing overhead
		total += 4 + len(enc.Encode(m.Content, nil, nil))
	}
	return total, nil
}

func (g *GroqAdapter) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	if model == "" {
		model = g.model
	}

	reqBody := struct {
		Model    string            `json:"model"`
		Messages []adapter.Message `json:"messages"`
	}{Model: model, Messages: messages}

	b, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.base+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("groq http %d", resp.StatusCode)
	}

	var payload struct {
		Choices []struct {
			Message adapter.Message `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	for _, c := range payload.Choices {
		if c.Message.Content != "" {
			return c.Message.Content, nil
		}
	}
	return "", errors.New("groq: empty completion")
}
