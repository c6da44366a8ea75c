package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// config holds user preferences loaded from ~/.config/cliq/config.toml.
// Every field has a zero-value default, so a missing file is not an error.
// Command-line flags take precedence over config values.
type config struct {
	// AllowShadowing permits redefining a name; the last definition wins.
	AllowShadowing bool `toml:"allow_shadowing"`

	// MaxMembers caps the size of normal forms during evaluation.
	MaxMembers int `toml:"max_members"`

	// Layout selects the Graphviz engine for svg/png rendering.
	Layout string `toml:"layout"`

	// RedisURL enables a Redis-backed cache for the serve command.
	RedisURL string `toml:"redis_url"`

	// HistoryFile overrides the REPL history location.
	HistoryFile string `toml:"history_file"`
}

// loadConfig reads the user configuration file. A missing file returns the
// zero config; a malformed file is an error so typos do not silently
// disable settings.
func loadConfig() (config, error) {
	var cfg config

	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
