// Package grok provides an offline stub Completer for xAI's Grok. There is
// no live endpoint to call, so Complete answers with a fixed message and
// never touches the network.
package grok

import (
	"context"

	"github.com/germanamz/kaligpt/pkg/chats/chat"
	"github.com/germanamz/kaligpt/pkg/chats/message"
	"github.com/germanamz/kaligpt/pkg/chats/role"
	"github.com/germanamz/kaligpt/pkg/modeladapter"
)

// UnavailableReply is the fixed response returned for every prompt.
const UnavailableReply = "Grok API not publicly available yet."

var _ modeladapter.Completer = (*Adapter)(nil)

// Adapter is a no-network Completer that always reports Grok as unavailable.
type Adapter struct{}

// New creates the stub adapter.
func New() *Adapter {
	return &Adapter{}
}

// Complete returns the fixed unavailable reply. It never fails and performs
// no network call.
func (a *Adapter) Complete(_ context.Context, _ *chat.Chat) (message.Message, error) {
	return message.New(role.Assistant, UnavailableReply), nil
}
