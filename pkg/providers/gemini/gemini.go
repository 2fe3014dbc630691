// Package gemini provides a Completer implementation for the Google Gemini
// generateContent API.
//
// Two quirks are deliberate and preserved from the behavior this client
// replaces: the API key travels as a URL query parameter rather than a
// header, and only the latest user message is sent — earlier turns are not
// included in the request.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/germanamz/kaligpt/pkg/chats/chat"
	"github.com/germanamz/kaligpt/pkg/chats/message"
	"github.com/germanamz/kaligpt/pkg/chats/role"
	"github.com/germanamz/kaligpt/pkg/modeladapter"
)

const (
	// DefaultBaseURL is the base URL for the Gemini API (no trailing slash).
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultModel is the model used when none is configured.
	DefaultModel = "gemini-pro"
)

var _ modeladapter.Completer = (*Adapter)(nil)

// Adapter implements modeladapter.Completer for the Gemini API.
type Adapter struct {
	modeladapter.ModelAdapter

	apiKey string
}

// New creates an Adapter configured for the Gemini API.
// A nil client falls back to the default client with a bounded timeout.
func New(baseURL, apiKey, model string, client *http.Client) *Adapter {
	// Auth is left empty: the key goes in the query string, not a header.
	a := &Adapter{
		ModelAdapter: modeladapter.New(baseURL, modeladapter.Auth{}, client),
		apiKey:       apiKey,
	}
	a.Name = model

	return a
}

// Complete sends the latest user message to the generateContent endpoint and
// returns the assistant's reply.
func (a *Adapter) Complete(ctx context.Context, c *chat.Chat) (message.Message, error) {
	req := apiRequest{
		Contents: []apiContent{{
			Parts: []apiPart{{Text: c.LastUserText()}},
		}},
	}

	path := fmt.Sprintf("/v1beta/models/%s:generateContent?key=%s", a.Name, url.QueryEscape(a.apiKey))

	var resp apiResponse
	if err := a.PostJSON(ctx, path, req, &resp); err != nil {
		return message.Message{}, fmt.Errorf("gemini: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return message.Message{}, &modeladapter.ExtractionError{
			Provider: "gemini",
			Reason:   "empty candidates in response",
		}
	}

	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == "" {
		return message.Message{}, &modeladapter.ExtractionError{
			Provider: "gemini",
			Reason:   "candidate has no text parts",
		}
	}

	return message.New(role.Assistant, parts[0].Text), nil
}

// --- request types ---

type apiRequest struct {
	Contents []apiContent `json:"contents"`
}

type apiContent struct {
	Parts []apiPart `json:"parts"`
}

type apiPart struct {
	Text string `json:"text"`
}

// --- response types ---

type apiResponse struct {
	Candidates []apiCandidate `json:"candidates"`
}

type apiCandidate struct {
	Content      apiContent `json:"content"`
	FinishReason string     `json:"finishReason"`
}
