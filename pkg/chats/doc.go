// Package chats groups the conversation model: roles, messages, and the
// Chat transcript container.
package chats
