package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/kaligpt/pkg/configstore"
	"github.com/germanamz/kaligpt/pkg/engine"
	"github.com/germanamz/kaligpt/pkg/providers"
)

func main() {
	// Handle subcommands before flag parsing.
	if len(os.Args) > 1 && os.Args[1] == "reset" {
		if err := runReset(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		return
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: kaligpt [flags]\n       kaligpt reset\n\nFlags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n  reset   Delete the saved configuration\n")
	}

	envFile := flag.String("env", ".env", "path to .env file (ignored if missing)")
	flag.Parse()

	if err := loadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runReset() error {
	store, err := configstore.Default()
	if err != nil {
		return err
	}

	if err := store.Delete(); err != nil {
		return err
	}

	fmt.Println("Saved configuration deleted.")

	return nil
}

func run() error {
	store, err := configstore.Default()
	if err != nil {
		return err
	}

	cfg, err := loadOrSetup(store)
	if err != nil {
		return err
	}

	adapter, err := providers.New(cfg.Provider, cfg.APIKey, nil)
	if err != nil {
		return err
	}

	sess := engine.NewSession(adapter)

	initMarkdownRenderer(0)

	fmt.Printf("%s is ready! Type /exit to quit, /reset to start over, /clear to clear the screen.\n\n",
		cfg.BotName)

	p := tea.NewProgram(newChatModel(sess, cfg))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run chat: %w", err)
	}

	return nil
}

// loadOrSetup loads the saved configuration or, when it is absent or
// corrupt, runs the interactive setup. A corrupt file is reported and then
// treated as absent.
func loadOrSetup(store *configstore.Store) (configstore.Config, error) {
	cfg, err := store.Load()
	if err == nil {
		return cfg, nil
	}

	var parseErr *configstore.ParseError
	switch {
	case errors.As(err, &parseErr):
		fmt.Fprintf(os.Stderr, "warning: %v; running setup again\n", parseErr)
	case os.IsNotExist(err):
		// First run.
	default:
		return configstore.Config{}, fmt.Errorf("load config: %w", err)
	}

	return runSetup(store)
}
