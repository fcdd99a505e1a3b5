package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/mckayn10/ai-chat-app/pkg/llm"
)

// Client is a deterministic completion client. Responses can be scripted
// per utterance substring, queued in order, or fixed.
type Client struct {
	mu sync.Mutex

	// ResponseText is returned when nothing else matches.
	ResponseText string
	// ByUtterance maps an utterance substring to a canned response.
	ByUtterance map[string]string
	// Queue is consumed front to back before any other lookup.
	Queue []string
	// Err, when set, fails every call.
	Err error

	// Calls records every utterance seen, newest last.
	Calls []string
}

func NewClient() *Client {
	return &Client{ResponseText: `{"action":"unknown","confidence":0.9}`}
}

func (c *Client) Name() string { return "mock_llm" }

func (c *Client) Generate(ctx context.Context, input llm.Context) (llm.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	utterance := lastUserContent(input)
	c.Calls = append(c.Calls, utterance)
	if c.Err != nil {
		return llm.Response{}, c.Err
	}
	if len(c.Queue) > 0 {
		text := c.Queue[0]
		c.Queue = c.Queue[1:]
		return llm.Response{Text: text}, nil
	}
	for needle, text := range c.ByUtterance {
		if strings.Contains(utterance, needle) {
			return llm.Response{Text: text}, nil
		}
	}
	return llm.Response{Text: c.ResponseText}, nil
}

func lastUserContent(input llm.Context) string {
	for i := len(input.Messages) - 1; i >= 0; i-- {
		if role, _ := input.Messages[i]["role"].(string); role == "user" {
			text, _ := input.Messages[i]["content"].(string)
			return text
		}
	}
	return ""
}

var _ llm.Client = (*Client)(nil)
