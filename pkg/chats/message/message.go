// Package message defines the value type for a single conversation turn.
package message

import "github.com/germanamz/kaligpt/pkg/chats/role"

// Message is one turn in a conversation. The zero value is an empty,
// role-less message.
type Message struct {
	Role role.Role
	Text string
}

// New creates a message with the given role and text.
func New(r role.Role, text string) Message {
	return Message{Role: r, Text: text}
}

// IsZero reports whether the message carries no role and no text.
func (m Message) IsZero() bool {
	return m.Role == "" && m.Text == ""
}
