package deepseek_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/germanamz/kaligpt/pkg/chats/chat"
	"github.com/germanamz/kaligpt/pkg/chats/message"
	"github.com/germanamz/kaligpt/pkg/chats/role"
	"github.com/germanamz/kaligpt/pkg/modeladapter"
	"github.com/germanamz/kaligpt/pkg/providers/deepseek"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *deepseek.Adapter {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return deepseek.New(srv.URL, "deepseek-test-key", "deepseek-chat", nil)
}

func TestComplete_SimpleText(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer deepseek-test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "deepseek-chat", req["model"])

		msgs, ok := req["messages"].([]any)
		require.True(t, ok)
		require.Len(t, msgs, 1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hi"}}]}`))
	})

	msg, err := adapter.Complete(context.Background(), chat.New(message.New(role.User, "hello")))
	require.NoError(t, err)

	assert.Equal(t, role.Assistant, msg.Role)
	assert.Equal(t, "hi", msg.Text)
}

func TestComplete_EmptyChoices(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := adapter.Complete(context.Background(), chat.New(message.New(role.User, "hi")))

	var extractionErr *modeladapter.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, "deepseek", extractionErr.Provider)
}

func TestComplete_EmptyContent(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":""}}]}`))
	})

	_, err := adapter.Complete(context.Background(), chat.New(message.New(role.User, "hi")))
	require.Error(t, err)

	var extractionErr *modeladapter.ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, "deepseek", extractionErr.Provider)
}

func TestComplete_HTTPError(t *testing.T) {
	adapter := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("slow down"))
	})

	_, err := adapter.Complete(context.Background(), chat.New(message.New(role.User, "hi")))

	var statusErr *modeladapter.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.Status)
}
