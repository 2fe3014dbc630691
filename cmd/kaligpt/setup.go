package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/germanamz/kaligpt/pkg/configstore"
	"github.com/germanamz/kaligpt/pkg/providers"
)

// apiKeyEnvVar supplies the API key directly, bypassing the key prompt.
const apiKeyEnvVar = "KALIGPT_API_KEY"

// resolveAPIKey reads the key from the environment. A non-empty value means
// the setup form skips the key prompt entirely.
func resolveAPIKey() (string, bool) {
	key := strings.TrimSpace(os.Getenv(apiKeyEnvVar))
	return key, key != ""
}

// setupFields builds the form fields for setup. The key prompt is omitted
// when the key already came from the environment.
func setupFields(key, userName, botName *string, haveKey bool) []huh.Field {
	var fields []huh.Field

	if !haveKey {
		fields = append(fields, huh.NewInput().
			Title("API key").
			Description("OpenAI / Gemini / Grok / DeepSeek").
			EchoMode(huh.EchoModePassword).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("enter an API key")
				}
				return nil
			}).
			Value(key))
	}

	return append(fields,
		huh.NewInput().Title("Your name").Value(userName),
		huh.NewInput().Title("Bot name").Value(botName),
	)
}

// finishSetup classifies the collected key and persists the configuration.
// An unclassifiable key aborts setup with an error; the caller exits nonzero.
func finishSetup(store *configstore.Store, key, userName, botName string) (configstore.Config, error) {
	key = strings.TrimSpace(key)

	id := providers.Detect(key)
	if id == providers.Unknown {
		return configstore.Config{}, fmt.Errorf("could not detect a provider for that API key; supported key prefixes belong to OpenAI, Gemini, Grok and DeepSeek")
	}

	cfg := configstore.Config{
		APIKey:   key,
		Provider: id,
		UserName: strings.TrimSpace(userName),
		BotName:  strings.TrimSpace(botName),
	}
	if cfg.UserName == "" {
		cfg.UserName = "You"
	}
	if cfg.BotName == "" {
		cfg.BotName = "KaliGPT"
	}

	if err := store.Save(cfg); err != nil {
		return configstore.Config{}, err
	}

	fmt.Printf("API key for %s saved.\n", id.DisplayName())

	return cfg, nil
}

// runSetup collects the API key and display names, classifies the key, and
// persists the resulting configuration.
func runSetup(store *configstore.Store) (configstore.Config, error) {
	key, haveKey := resolveAPIKey()
	userName := "You"
	botName := "KaliGPT"

	form := huh.NewForm(huh.NewGroup(setupFields(&key, &userName, &botName, haveKey)...))
	if err := form.Run(); err != nil {
		return configstore.Config{}, fmt.Errorf("setup aborted: %w", err)
	}

	return finishSetup(store, key, userName, botName)
}
