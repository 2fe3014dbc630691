// Package providers classifies API keys into provider identifiers and builds
// the matching chat completion adapter. The rule table and the registry are
// fixed at compile time; the adapter for a session is selected exactly once,
// at startup.
package providers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/germanamz/kaligpt/pkg/modeladapter"
	"github.com/germanamz/kaligpt/pkg/providers/deepseek"
	"github.com/germanamz/kaligpt/pkg/providers/gemini"
	"github.com/germanamz/kaligpt/pkg/providers/grok"
	"github.com/germanamz/kaligpt/pkg/providers/openai"
)

// ID identifies a supported LLM provider.
type ID string

const (
	OpenAI   ID = "openai"
	Gemini   ID = "gemini"
	Grok     ID = "grok"
	DeepSeek ID = "deepseek"
	Unknown  ID = "unknown"
)

// Valid reports whether id names a real provider (not Unknown).
func (id ID) Valid() bool {
	switch id {
	case OpenAI, Gemini, Grok, DeepSeek:
		return true
	}
	return false
}

// String returns the underlying string value of the ID.
func (id ID) String() string { return string(id) }

// DisplayName returns a human-readable provider name.
func (id ID) DisplayName() string {
	switch id {
	case OpenAI:
		return "OpenAI"
	case Gemini:
		return "Gemini"
	case Grok:
		return "Grok"
	case DeepSeek:
		return "DeepSeek"
	}
	return "Unknown"
}

// detectRule maps a set of key prefixes to a provider.
type detectRule struct {
	id       ID
	prefixes []string
}

// detectRules is the canonical classification table. Rules are tried in
// order and the first matching prefix wins. Prefixes are case-sensitive and
// mutually exclusive: "gsk_" (Google-style) and "gsk-" (Grok-style) are
// distinct literals.
var detectRules = []detectRule{
	{OpenAI, []string{"sk-"}},
	{Gemini, []string{"AIza", "gsk_"}},
	{Grok, []string{"grok", "groq_", "gsk-", "xapp-"}},
	{DeepSeek, []string{"deepseek-", "dsk-", "ds-"}},
}

// Detect classifies an API key by prefix. It returns Unknown when no rule
// matches. Detect performs no length or validity checks beyond the prefix.
func Detect(key string) ID {
	for _, rule := range detectRules {
		for _, p := range rule.prefixes {
			if strings.HasPrefix(key, p) {
				return rule.id
			}
		}
	}
	return Unknown
}

// ParseID converts a stored provider string back into an ID. Unrecognized
// values map to Unknown.
func ParseID(s string) ID {
	id := ID(strings.ToLower(s))
	if id.Valid() {
		return id
	}
	return Unknown
}

// New builds the adapter for the given provider. The client may be nil, in
// which case adapters fall back to a default client with a bounded timeout.
// Unknown (or any unregistered) provider is an error: chatting without a
// classified key is not allowed.
func New(id ID, apiKey string, client *http.Client) (modeladapter.Completer, error) {
	switch id {
	case OpenAI:
		return openai.New(openai.DefaultBaseURL, apiKey, openai.DefaultModel, client), nil
	case Gemini:
		return gemini.New(gemini.DefaultBaseURL, apiKey, gemini.DefaultModel, client), nil
	case DeepSeek:
		return deepseek.New(deepseek.DefaultBaseURL, apiKey, deepseek.DefaultModel, client), nil
	case Grok:
		return grok.New(), nil
	}
	return nil, fmt.Errorf("providers: unknown provider %q", id)
}
