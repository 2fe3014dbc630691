package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/kaligpt/pkg/chats/chat"
	"github.com/germanamz/kaligpt/pkg/chats/message"
	"github.com/germanamz/kaligpt/pkg/chats/role"
	"github.com/germanamz/kaligpt/pkg/configstore"
	"github.com/germanamz/kaligpt/pkg/engine"
	"github.com/germanamz/kaligpt/pkg/providers"
	"github.com/germanamz/kaligpt/pkg/providers/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyInput(t *testing.T) {
	tests := []struct {
		in       string
		wantKind inputKind
		wantText string
	}{
		{"", inputEmpty, ""},
		{"   ", inputEmpty, ""},
		{"/exit", inputExit, ""},
		{"/quit", inputExit, ""},
		{"exit", inputExit, ""},
		{"quit", inputExit, ""},
		{"/EXIT", inputExit, ""},
		{"QUIT", inputExit, ""},
		{"/reset", inputReset, ""},
		{"/Reset", inputReset, ""},
		{"/clear", inputClear, ""},
		{"hello", inputChat, "hello"},
		{"  hello world  ", inputChat, "hello world"},
		{"exit the building", inputChat, "exit the building"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			kind, text := classifyInput(tt.in)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantText, text)
		})
	}
}

type fakeCompleter struct {
	reply string
	err   error
}

func (f *fakeCompleter) Complete(_ context.Context, _ *chat.Chat) (message.Message, error) {
	if f.err != nil {
		return message.Message{}, f.err
	}
	return message.New(role.Assistant, f.reply), nil
}

func testModel(fc *fakeCompleter) chatModel {
	sess := engine.NewSession(fc)
	cfg := configstore.Config{
		APIKey:   "sk-abc123",
		Provider: providers.OpenAI,
		UserName: "You",
		BotName:  "KaliGPT",
	}
	return newChatModel(sess, cfg)
}

func submit(t *testing.T, m chatModel, line string) (chatModel, tea.Cmd) {
	t.Helper()

	m.input.SetValue(line)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	next, ok := updated.(chatModel)
	require.True(t, ok)

	return next, cmd
}

func TestSubmitEntersSendingState(t *testing.T) {
	m := testModel(&fakeCompleter{reply: "hi"})

	m, cmd := submit(t, m, "hello")
	assert.Equal(t, stateSending, m.state)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.input.Value())
}

func TestInputIgnoredWhileSending(t *testing.T) {
	m := testModel(&fakeCompleter{reply: "hi"})
	m, _ = submit(t, m, "hello")

	// Keystrokes while a request is in flight go nowhere.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m = updated.(chatModel)
	assert.Empty(t, m.input.Value())
}

func TestSendCompleteReturnsToIdle(t *testing.T) {
	m := testModel(&fakeCompleter{reply: "hi"})
	m, _ = submit(t, m, "hello")

	updated, _ := m.Update(sendCompleteMsg{reply: message.New(role.Assistant, "hi")})
	m = updated.(chatModel)

	assert.Equal(t, stateIdle, m.state)
}

func TestSendSuccessAppendsBothTurns(t *testing.T) {
	m := testModel(&fakeCompleter{reply: "hi"})
	m, _ = submit(t, m, "hello")

	msg := sendCmd(m.sess, "hello")()
	complete, ok := msg.(sendCompleteMsg)
	require.True(t, ok)
	require.NoError(t, complete.err)
	assert.Equal(t, "hi", complete.reply.Text)

	msgs := m.sess.Chat().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, role.User, msgs[0].Role)
	assert.Equal(t, "hello", msgs[0].Text)
	assert.Equal(t, role.Assistant, msgs[1].Role)
	assert.Equal(t, "hi", msgs[1].Text)
}

func TestSendFailureKeepsUserTurnOnly(t *testing.T) {
	m := testModel(&fakeCompleter{err: errors.New("boom")})
	m, _ = submit(t, m, "hello")

	msg := sendCmd(m.sess, "hello")()
	complete, ok := msg.(sendCompleteMsg)
	require.True(t, ok)
	require.Error(t, complete.err)

	updated, _ := m.Update(complete)
	m = updated.(chatModel)

	// Back to idle, accepting new input; user turn retained, no assistant turn.
	assert.Equal(t, stateIdle, m.state)
	msgs := m.sess.Chat().Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, role.User, msgs[0].Role)
}

func TestResetClearsTranscriptOnly(t *testing.T) {
	m := testModel(&fakeCompleter{reply: "hi"})

	_, err := m.sess.Send(context.Background(), "hello")
	require.NoError(t, err)
	require.Equal(t, 2, m.sess.Chat().Len())

	cfgBefore := m.cfg

	m, _ = submit(t, m, "/reset")
	assert.Equal(t, 0, m.sess.Chat().Len())
	assert.Equal(t, stateIdle, m.state)
	assert.Equal(t, cfgBefore, m.cfg)
}

func TestExitQuits(t *testing.T) {
	m := testModel(&fakeCompleter{reply: "hi"})

	m, cmd := submit(t, m, "/exit")
	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestCtrlCQuits(t *testing.T) {
	m := testModel(&fakeCompleter{reply: "hi"})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = updated.(chatModel)

	assert.True(t, m.quitting)
	assert.NotNil(t, cmd)
}

func TestEmptyInputDoesNothing(t *testing.T) {
	m := testModel(&fakeCompleter{reply: "hi"})

	m, cmd := submit(t, m, "   ")
	assert.Equal(t, stateIdle, m.state)
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.sess.Chat().Len())
}

// Full cycle against a mocked OpenAI endpoint: detection, request, reply.
func TestScenario_OpenAIHello(t *testing.T) {
	require.Equal(t, providers.OpenAI, providers.Detect("sk-abc123"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hi"}}]}`))
	}))
	t.Cleanup(srv.Close)

	sess := engine.NewSession(openai.New(srv.URL, "sk-abc123", openai.DefaultModel, nil))
	m := newChatModel(sess, configstore.Config{UserName: "You", BotName: "KaliGPT"})

	m.input.SetValue("hello")
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(chatModel)
	require.Equal(t, stateSending, m.state)

	msg := sendCmd(m.sess, "hello")()
	complete := msg.(sendCompleteMsg)
	require.NoError(t, complete.err)
	assert.Equal(t, "hi", complete.reply.Text)

	msgs := sess.Chat().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "hello", msgs[0].Text)
	assert.Equal(t, "hi", msgs[1].Text)
}
