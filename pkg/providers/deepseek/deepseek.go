// Package deepseek provides a Completer implementation for the DeepSeek chat
// completions API, which is wire-compatible with the OpenAI format.
package deepseek

import (
	"context"
	"fmt"
	"net/http"

	"github.com/germanamz/kaligpt/pkg/chats/chat"
	"github.com/germanamz/kaligpt/pkg/chats/message"
	"github.com/germanamz/kaligpt/pkg/chats/role"
	"github.com/germanamz/kaligpt/pkg/modeladapter"
)

const (
	// DefaultBaseURL is the base URL for the DeepSeek API (no trailing slash).
	DefaultBaseURL = "https://api.deepseek.com"
	// DefaultModel is the model used when none is configured.
	DefaultModel = "deepseek-chat"

	completionsPath = "/chat/completions"
)

var _ modeladapter.Completer = (*Adapter)(nil)

// Adapter implements modeladapter.Completer for the DeepSeek API.
type Adapter struct {
	modeladapter.ModelAdapter
}

// New creates an Adapter configured for the DeepSeek API.
// A nil client falls back to the default client with a bounded timeout.
func New(baseURL, apiKey, model string, client *http.Client) *Adapter {
	a := &Adapter{
		ModelAdapter: modeladapter.New(baseURL, modeladapter.Auth{Key: apiKey}, client),
	}
	a.Name = model

	return a
}

// Complete sends the full transcript to the chat completions endpoint and
// returns the assistant's reply.
func (a *Adapter) Complete(ctx context.Context, c *chat.Chat) (message.Message, error) {
	req := apiRequest{Model: a.Name}

	c.Each(func(_ int, m message.Message) bool {
		req.Messages = append(req.Messages, apiMessage{
			Role:    m.Role.String(),
			Content: m.Text,
		})
		return true
	})

	var resp apiResponse
	if err := a.PostJSON(ctx, completionsPath, req, &resp); err != nil {
		return message.Message{}, fmt.Errorf("deepseek: %w", err)
	}

	if len(resp.Choices) == 0 {
		return message.Message{}, &modeladapter.ExtractionError{
			Provider: "deepseek",
			Reason:   "empty choices in response",
		}
	}

	reply := resp.Choices[0].Message.Content
	if reply == "" {
		return message.Message{}, &modeladapter.ExtractionError{
			Provider: "deepseek",
			Reason:   "empty message content in response",
		}
	}

	return message.New(role.Assistant, reply), nil
}

type apiRequest struct {
	Model    string       `json:"model"`
	Messages []apiMessage `json:"messages"`
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type apiResponse struct {
	Choices []apiChoice `json:"choices"`
}

type apiChoice struct {
	Message      apiMessage `json:"message"`
	FinishReason string     `json:"finish_reason"`
}
