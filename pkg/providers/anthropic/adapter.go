package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mckayn10/ai-chat-app/pkg/llm"
	"github.com/mckayn10/ai-chat-app/pkg/resilience"
)

const apiVersion = "2023-06-01"

type Adapter struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	Client    *http.Client
}

func NewAdapter(apiKey, model string) *Adapter {
	return &Adapter{
		APIKey:    apiKey,
		Model:     model,
		BaseURL:   "https://api.anthropic.com/v1",
		MaxTokens: 1024,
		Client:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (a *Adapter) Name() string { return "anthropic" }

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type response struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (a *Adapter) Generate(ctx context.Context, input llm.Context) (llm.Response, error) {
	if strings.TrimSpace(a.APIKey) == "" {
		return llm.Response{}, errors.New("anthropic: api key not configured")
	}
	body, err := a.buildRequest(input)
	if err != nil {
		return llm.Response{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/messages", body)
	if err != nil {
		return llm.Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.APIKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := a.client().Do(req)
	if err != nil {
		return llm.Response{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		raw, _ := io.ReadAll(resp.Body)
		return llm.Response{}, resilience.RateLimitError{Provider: "anthropic", Message: string(raw)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return llm.Response{}, errors.New(string(raw))
	}
	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return llm.Response{}, err
	}
	if len(payload.Content) == 0 {
		return llm.Response{}, errors.New("anthropic: empty content")
	}
	return llm.Response{
		Text:         payload.Content[0].Text,
		FinishReason: payload.StopReason,
		Usage: llm.Usage{
			PromptTokens:     payload.Usage.InputTokens,
			CompletionTokens: payload.Usage.OutputTokens,
			TotalTokens:      payload.Usage.InputTokens + payload.Usage.OutputTokens,
		},
	}, nil
}

// buildRequest lifts role=system messages into the top-level system field,
// which is where the Messages API expects them.
func (a *Adapter) buildRequest(input llm.Context) (*bytes.Buffer, error) {
	req := request{
		Model:     a.Model,
		MaxTokens: a.MaxTokens,
	}
	for _, m := range input.Messages {
		role, _ := m["role"].(string)
		content, _ := m["content"].(string)
		if role == "system" {
			if req.System != "" {
				req.System += "\n\n"
			}
			req.System += content
			continue
		}
		req.Messages = append(req.Messages, message{Role: role, Content: content})
	}
	b, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return bytes.NewBuffer(b), nil
}

func (a *Adapter) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return http.DefaultClient
}

var _ llm.Client = (*Adapter)(nil)
