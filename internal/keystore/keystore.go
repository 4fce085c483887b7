// Package keystore persists the RapidAPI credential between runs.
// The key is stored in ~/.config/horoscopes/credentials.toml by default.
package keystore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultPath = "~/.config/horoscopes/credentials.toml"

type credentials struct {
	APIKey string `toml:"api_key"`
}

// DefaultPath returns the default credentials file path.
func DefaultPath() string {
	return defaultPath
}

// Load returns the stored API key. A missing file yields an empty key and
// no error.
func Load(path string) (string, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read credentials: %w", err)
	}

	var creds credentials
	if err := toml.Unmarshal(data, &creds); err != nil {
		return "", fmt.Errorf("parse credentials: %w", err)
	}

	return strings.TrimSpace(creds.APIKey), nil
}

// Save stores apiKey, creating directories as needed. The file is only
// readable by the current user.
func Save(path, apiKey string) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}

	data, err := toml.Marshal(credentials{APIKey: strings.TrimSpace(apiKey)})
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}

	return nil
}

// Clear removes the stored key. Clearing a missing file is not an error.
func Clear(path string) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}

	if err := os.Remove(resolved); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// Mask hides all but the last four characters of apiKey.
func Mask(apiKey string) string {
	if apiKey == "" {
		return "(not set)"
	}
	if len(apiKey) <= 4 {
		return strings.Repeat("*", len(apiKey))
	}
	return strings.Repeat("*", len(apiKey)-4) + apiKey[len(apiKey)-4:]
}

func resolvePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = defaultPath
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
