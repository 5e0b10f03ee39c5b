// Package settings loads the user-settings file naming which currencies
// and stocks the reports should track.
package settings

import (
	"encoding/json"
	"errors"
	"os"

	"finlens/internal/core"
)

// Settings is the parsed user configuration.
type Settings struct {
	UserCurrencies []string
	UserStocks     []string
}

// Load reads and parses the settings file. A missing file or malformed
// content is a ConfigError, never a silent empty default: a key that is
// present with an empty list means "track nothing" and is valid, a key
// that is absent is a configuration mistake.
func Load(path string) (Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, &core.ConfigError{Path: path, Reason: "settings file not found", Err: err}
		}
		return Settings{}, &core.ConfigError{Path: path, Reason: "cannot read settings file", Err: err}
	}

	// Pointers distinguish an absent key from a present empty list.
	var parsed struct {
		UserCurrencies *[]string `json:"user_currencies"`
		UserStocks     *[]string `json:"user_stocks"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Settings{}, &core.ConfigError{Path: path, Reason: "malformed settings JSON", Err: err}
	}
	if parsed.UserCurrencies == nil {
		return Settings{}, &core.ConfigError{Path: path, Reason: "missing user_currencies key"}
	}
	if parsed.UserStocks == nil {
		return Settings{}, &core.ConfigError{Path: path, Reason: "missing user_stocks key"}
	}

	return Settings{
		UserCurrencies: *parsed.UserCurrencies,
		UserStocks:     *parsed.UserStocks,
	}, nil
}
