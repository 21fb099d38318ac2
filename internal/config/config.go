// Package config holds the file configuration of mathobj.
package config

import (
	"fmt"

	"github.com/baalimago/mathobj/internal/credential"
	"github.com/baalimago/mathobj/internal/inference"
	"github.com/baalimago/mathobj/internal/render"
	"github.com/baalimago/mathobj/internal/utils"
)

const FileName = "mathobjConfig.json"

type Configurations struct {
	APIKey      string        `json:"chatGPT.apiKey"`
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	URL         string        `json:"url"`
	Compiler    string        `json:"compiler"`
	Output      render.Output `json:"output"`
	NoOpen      bool          `json:"noOpen"`
}

var Default = Configurations{
	APIKey:      "",
	Model:       inference.Default.Model,
	Temperature: inference.Default.Temperature,
	URL:         inference.Default.URL,
	Compiler:    render.DefaultCompiler,
	Output: render.Output{
		Dir:    "",
		Prefix: "mathobj",
	},
}

// Load the configuration in configDir, creating it with defaults if it's missing
func Load(configDir string) (Configurations, error) {
	conf, err := utils.LoadConfigFromFile(configDir, FileName, nil, &Default)
	if err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}
	return conf, nil
}

// Client returns an inference client set up from the configuration
func (c Configurations) Client() *inference.Client {
	client := &inference.Client{
		Model:       c.Model,
		Temperature: c.Temperature,
		URL:         c.URL,
	}
	client.Setup()
	return client
}

// Credentials returns a provider for the configured API key, which the environment may override
func (c Configurations) Credentials() credential.Provider {
	return credential.NewConfigProvider(c.APIKey)
}
