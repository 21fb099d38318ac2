// Package credential provides the API key used against the completions endpoint.
package credential

import (
	"context"
	"errors"
	"os"
	"strings"
)

// SettingName is the name of the setting which holds the API key
const SettingName = "chatGPT.apiKey"

// EnvOverride takes precedence over the config file, when non-blank
const EnvOverride = "OPENAI_API_KEY"

// ErrMissingCredential is returned both when the setting is absent and when it's blank
var ErrMissingCredential = errors.New("credential missing or blank")

// Provider of the API key
type Provider interface {
	Get(ctx context.Context) (string, error)
}

// Validate trims raw and returns ErrMissingCredential if nothing remains
func Validate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrMissingCredential
	}
	return trimmed, nil
}

// ConfigProvider reads the key from the loaded config file, with EnvOverride taking precedence
type ConfigProvider struct {
	Value  string
	getenv func(string) string
}

func NewConfigProvider(value string) *ConfigProvider {
	return &ConfigProvider{
		Value:  value,
		getenv: os.Getenv,
	}
}

func (c *ConfigProvider) Get(_ context.Context) (string, error) {
	if c.getenv != nil {
		if key, err := Validate(c.getenv(EnvOverride)); err == nil {
			return key, nil
		}
	}
	return Validate(c.Value)
}

// Static always returns the same value. Useful for hosts which resolve the key up front.
type Static string

func (s Static) Get(_ context.Context) (string, error) {
	return Validate(string(s))
}
