// Package engine holds the chat session: the transcript plus the completer
// selected for it, and the request/response cycle between them.
package engine

import (
	"context"

	"github.com/germanamz/kaligpt/pkg/chats/chat"
	"github.com/germanamz/kaligpt/pkg/chats/message"
	"github.com/germanamz/kaligpt/pkg/chats/role"
	"github.com/germanamz/kaligpt/pkg/modeladapter"
)

// Session owns a conversation transcript and the completer that answers it.
// It is not safe for concurrent use; the REPL guarantees a single in-flight
// Send at a time.
type Session struct {
	completer modeladapter.Completer
	chat      *chat.Chat
}

// NewSession creates a session around the given completer with an empty
// transcript.
func NewSession(completer modeladapter.Completer) *Session {
	return &Session{
		completer: completer,
		chat:      chat.New(),
	}
}

// Chat exposes the session transcript.
func (s *Session) Chat() *chat.Chat { return s.chat }

// Completer returns the completer answering this session.
func (s *Session) Completer() modeladapter.Completer { return s.completer }

// Send appends text as a user turn, asks the completer for a reply, and on
// success appends the assistant turn and returns it. The user turn is
// appended before the call and stays in the transcript even when the call
// fails; no assistant turn is appended on failure.
func (s *Session) Send(ctx context.Context, text string) (message.Message, error) {
	s.chat.Append(message.New(role.User, text))

	reply, err := s.completer.Complete(ctx, s.chat)
	if err != nil {
		return message.Message{}, err
	}

	s.chat.Append(reply)

	return reply, nil
}

// Reset clears the transcript. Configuration is untouched.
func (s *Session) Reset() {
	s.chat.Reset()
}
