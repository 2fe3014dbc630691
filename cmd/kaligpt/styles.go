package main

import "github.com/charmbracelet/lipgloss"

var (
	colorMuted  = lipgloss.Color("8")
	colorAccent = lipgloss.Color("4")
	colorError  = lipgloss.Color("1")
	colorBot    = lipgloss.Color("5")
)

// Centralized style definitions for the chat loop.
var (
	userPrefixStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	botPrefixStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorBot)
	dimStyle        = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle      = lipgloss.NewStyle().Foreground(colorError)
	spinnerStyle    = lipgloss.NewStyle().Foreground(colorBot)
)
