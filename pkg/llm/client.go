package llm

import "context"

// Context is the prompt material for one completion call: a system message
// carrying the schema description and worked examples, then the utterance.
type Context struct {
	Messages []map[string]any
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

type Response struct {
	Text         string
	Usage        Usage
	FinishReason string
}

// Client produces one completion for a prompt and utterance. Adapters do
// not retry; retry and circuit-breaking policy belong to the caller (see
// Retry and CircuitBreakerClient).
type Client interface {
	Generate(ctx context.Context, input Context) (Response, error)
	Name() string
}

// NewContext builds the standard two-message prompt.
func NewContext(systemPrompt, utterance string) Context {
	return Context{
		Messages: []map[string]any{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": utterance},
		},
	}
}
