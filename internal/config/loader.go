package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const appDirName = "wscycle"

// DefaultConfigPath returns $XDG_CONFIG_HOME/wscycle/config.yaml, falling
// back to ~/.config.
func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDirName, "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", appDirName, "config.yaml"), nil
}

// DefaultJournalPath returns $XDG_DATA_HOME/wscycle/journal.db, falling back
// to ~/.local/share.
func DefaultJournalPath() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appDirName, "journal.db"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", appDirName, "journal.db"), nil
}

// Load reads the configuration from the standard location, applies
// environment overrides and validates the result.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	if err := LoadFromEnv(cfg); err != nil {
		return nil, err
	}
	if err := finish(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath reads and validates the file at path. A missing file yields
// the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	if err := finish(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	exists, err := pathExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := decodeStrictYAML(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// finish fills derived defaults and validates.
func finish(cfg *Config, path string) error {
	if cfg.Journal.Enabled && cfg.Journal.Path == "" {
		p, err := DefaultJournalPath()
		if err != nil {
			return err
		}
		cfg.Journal.Path = p
	}
	if err := cfg.Validate(); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			if exists, _ := pathExists(path); exists {
				ve.File = path
			}
		}
		return err
	}
	return nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", path, err)
}
