package main

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/kaligpt/pkg/chats/message"
	"github.com/germanamz/kaligpt/pkg/configstore"
	"github.com/germanamz/kaligpt/pkg/engine"
)

// maxErrorDisplay caps error lines printed to the scrollback.
const maxErrorDisplay = 300

// appState represents the chat loop state machine. Input is disabled while a
// request is in flight, so at most one send is ever outstanding.
type appState int

const (
	stateIdle appState = iota
	stateSending
)

// inputKind classifies a submitted line.
type inputKind int

const (
	inputEmpty inputKind = iota
	inputExit
	inputReset
	inputClear
	inputChat
)

// classifyInput recognizes control commands, case-insensitively. Anything
// else non-empty is a chat prompt.
func classifyInput(s string) (inputKind, string) {
	trimmed := strings.TrimSpace(s)

	switch strings.ToLower(trimmed) {
	case "":
		return inputEmpty, ""
	case "/exit", "/quit", "exit", "quit":
		return inputExit, ""
	case "/reset":
		return inputReset, ""
	case "/clear":
		return inputClear, ""
	}

	return inputChat, trimmed
}

// sendCompleteMsg reports the outcome of a provider call.
type sendCompleteMsg struct {
	reply message.Message
	err   error
}

// chatModel is the root bubbletea model for the chat loop.
type chatModel struct {
	sess     *engine.Session
	cfg      configstore.Config
	input    textinput.Model
	spin     spinner.Model
	state    appState
	width    int
	quitting bool
}

func newChatModel(sess *engine.Session, cfg configstore.Config) chatModel {
	ti := textinput.New()
	ti.Placeholder = "Type a message..."
	ti.Prompt = cfg.UserName + " > "
	ti.PromptStyle = userPrefixStyle
	ti.CharLimit = 0
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))

	return chatModel{
		sess:  sess,
		cfg:   cfg,
		input: ti,
		spin:  sp,
		state: stateIdle,
		width: 100,
	}
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		initMarkdownRenderer(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.state != stateSending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case sendCompleteMsg:
		return m.handleSendComplete(msg)
	}

	return m, nil
}

func (m chatModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.farewell()
	}

	// One request in flight at a time: typing is disabled while sending.
	if m.state == stateSending {
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		return m.handleSubmit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) handleSubmit() (tea.Model, tea.Cmd) {
	kind, text := classifyInput(m.input.Value())

	switch kind {
	case inputEmpty:
		return m, nil

	case inputExit:
		return m.farewell()

	case inputReset:
		m.sess.Reset()
		m.input.Reset()
		return m, tea.Println(dimStyle.Render("Conversation reset."))

	case inputClear:
		m.input.Reset()
		return m, tea.ClearScreen
	}

	m.state = stateSending
	m.input.Reset()
	m.input.Blur()

	userLine := userPrefixStyle.Render(m.cfg.UserName+" > ") + text

	return m, tea.Batch(
		tea.Println(userLine),
		m.spin.Tick,
		sendCmd(m.sess, text),
	)
}

func (m chatModel) handleSendComplete(msg sendCompleteMsg) (tea.Model, tea.Cmd) {
	m.state = stateIdle

	cmds := []tea.Cmd{m.input.Focus()}

	if msg.err != nil {
		line := errorStyle.Render("error: " + truncate(msg.err.Error(), maxErrorDisplay))
		cmds = append(cmds, tea.Println(line))
		return m, tea.Batch(cmds...)
	}

	reply := botPrefixStyle.Render(m.cfg.BotName+" >") + "\n" + renderMarkdown(msg.reply.Text)
	cmds = append(cmds, tea.Println(reply))

	return m, tea.Batch(cmds...)
}

func (m chatModel) farewell() (tea.Model, tea.Cmd) {
	m.quitting = true

	return m, tea.Sequence(
		tea.Println(dimStyle.Render("Goodbye!")),
		tea.Quit,
	)
}

func (m chatModel) View() string {
	if m.quitting {
		return ""
	}

	if m.state == stateSending {
		return m.spin.View() + dimStyle.Render(" Waiting for "+m.cfg.BotName+"...")
	}

	return m.input.View()
}

// sendCmd performs the provider call off the update loop. The session itself
// is only touched by this one command until sendCompleteMsg arrives.
func sendCmd(sess *engine.Session, text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := sess.Send(context.Background(), text)
		return sendCompleteMsg{reply: reply, err: err}
	}
}
