package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mwronski/ttvchat/pkg/validation"
	"github.com/spf13/viper"
)

// Config stores the persistent client state. All fields are optional; an
// empty string means unset.
type Config struct {
	// Channel is the Twitch channel to join.
	Channel string `mapstructure:"channel"`
	// OAuth is the captured OAuth access token, stored without the
	// "oauth:" prefix.
	OAuth string `mapstructure:"oauth"`
	// Nick is the IRC nick. When unset an anonymous justinfan nick is used.
	Nick string `mapstructure:"nick"`
}

// Default returns a Config with every field unset.
func Default() *Config {
	return &Config{}
}

// DefaultPath returns the default state file location,
// $HOME/.ttvchat/state.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return filepath.Join(home, ".ttvchat", "state.json"), nil
}

// Load loads the state from the JSON file at filePath.
// A missing file surfaces as an error wrapping os.ErrNotExist; callers fall
// back to Default().
func Load(filePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filePath)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}

	return config, nil
}

// Save writes the state as JSON to filePath, creating parent directories as
// needed.
func (c *Config) Save(filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.Set("channel", c.Channel)
	v.Set("oauth", c.OAuth)
	v.Set("nick", c.Nick)

	if err := v.WriteConfigAs(filePath); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// SetInitialChannel takes the channel from the first command line argument,
// when one is present and valid. args is os.Args shaped: args[0] is the
// program name.
func (c *Config) SetInitialChannel(args []string) error {
	if len(args) < 2 {
		return nil
	}

	channel := args[1]
	if err := validation.ValidateChannel(channel); err != nil {
		return err
	}

	c.Channel = channel

	return nil
}
