package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	providerGemini = "gemini"
	providerClaude = "claude"

	defaultGeminiModel = "gemini-2.0-flash"
	defaultClaudeModel = "claude-sonnet-4-20250514"
	defaultTemperature = 0.1

	defaultSearchEndpoint = "https://api.duckduckgo.com/"
	defaultSearchTimeout  = 10

	// FormatJSON writes roadmaps as indented JSON.
	FormatJSON = "json"
	// FormatYAML writes roadmaps as YAML.
	FormatYAML = "yaml"
)

// ErrMissingCredential is returned when the selected provider has no API key.
var ErrMissingCredential = errors.New("missing API key")

// Config represents the application configuration.
type Config struct {
	Provider        string        `json:"provider"`
	GoogleAPIKey    string        `json:"google_api_key,omitempty"`
	AnthropicAPIKey string        `json:"anthropic_api_key,omitempty"`
	Temperature     *float64      `json:"temperature,omitempty"`
	Models          ModelsConfig  `json:"models,omitempty"`
	Search          SearchConfig  `json:"search"`
	Defaults        DefaultConfig `json:"defaults"`
}

// ModelsConfig holds the model name per provider.
type ModelsConfig struct {
	Gemini string `json:"gemini,omitempty"`
	Claude string `json:"claude,omitempty"`
}

// SearchConfig holds search service settings.
type SearchConfig struct {
	Endpoint       string `json:"endpoint"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputDir string `json:"output_dir"`
	Format    string `json:"format"`
}

// DefaultPath returns $HOME/.interview-roadmap/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".interview-roadmap", "config.json")
	return path, err
}

// Load reads configuration from file, a .env file and the environment, in
// increasing order of precedence. The config file is optional unless its
// path was given explicitly.
func Load(configPath string) (cfg Config, err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = json.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	case os.IsNotExist(err) && configPath == "":
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'interview-roadmap init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	// A missing .env is fine; variables already set in the process win.
	_ = godotenv.Load()

	cfg.applyEnv()
	cfg.applyDefaults()

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

func (c *Config) applyEnv() {
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		c.GoogleAPIKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.AnthropicAPIKey = v
	}
	if v := os.Getenv("ROADMAP_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("ROADMAP_MODEL"); v != "" {
		if c.ProviderName() == providerClaude {
			c.Models.Claude = v
		} else {
			c.Models.Gemini = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Provider == "" {
		c.Provider = providerGemini
	}
	if c.Search.Endpoint == "" {
		c.Search.Endpoint = defaultSearchEndpoint
	}
	if c.Search.TimeoutSeconds <= 0 {
		c.Search.TimeoutSeconds = defaultSearchTimeout
	}
	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = "."
	}
	if c.Defaults.Format == "" {
		c.Defaults.Format = FormatJSON
	}
}

// ProviderName returns the normalized provider name.
func (c *Config) ProviderName() (name string) {
	name = strings.ToLower(strings.TrimSpace(c.Provider))
	if name == "" {
		name = providerGemini
	}
	return name
}

// APIKey returns the credential for the selected provider.
func (c *Config) APIKey() (key string) {
	if c.ProviderName() == providerClaude {
		key = c.AnthropicAPIKey
		return key
	}
	key = c.GoogleAPIKey
	return key
}

// Model returns the model for the selected provider, or its default.
func (c *Config) Model() (model string) {
	if c.ProviderName() == providerClaude {
		model = c.Models.Claude
		if model == "" {
			model = defaultClaudeModel
		}
		return model
	}
	model = c.Models.Gemini
	if model == "" {
		model = defaultGeminiModel
	}
	return model
}

// GetTemperature returns the sampling temperature or its default.
func (c *Config) GetTemperature() (temperature float64) {
	temperature = defaultTemperature
	if c.Temperature != nil {
		temperature = *c.Temperature
	}
	return temperature
}

// CredentialHint tells the user where to obtain the missing key.
func (c *Config) CredentialHint() (hint string) {
	if c.ProviderName() == providerClaude {
		hint = "Set ANTHROPIC_API_KEY in your environment or .env file.\n   Get it from: https://console.anthropic.com/settings/keys"
		return hint
	}
	hint = "Set GOOGLE_API_KEY in your environment or .env file.\n   Get it from: https://aistudio.google.com/app/apikey"
	return hint
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() (err error) {
	switch c.ProviderName() {
	case providerGemini, providerClaude:
	default:
		err = errors.Errorf("invalid provider '%s': must be '%s' or '%s'", c.Provider, providerGemini, providerClaude)
		return err
	}

	if c.APIKey() == "" {
		err = errors.Wrapf(ErrMissingCredential, "no API key for provider %s", c.ProviderName())
		return err
	}

	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		err = errors.Errorf("temperature %.2f out of range [0, 2]", *c.Temperature)
		return err
	}

	switch c.Defaults.Format {
	case "", FormatJSON, FormatYAML:
	default:
		err = errors.Errorf("invalid format '%s': must be '%s' or '%s'", c.Defaults.Format, FormatJSON, FormatYAML)
		return err
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (path string, err error) {
	path = configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return path, err
		}
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return path, err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return path, err
	}

	temperature := defaultTemperature
	defaultConfig := Config{
		Provider:     providerGemini,
		GoogleAPIKey: "",
		Temperature:  &temperature,
		Models: ModelsConfig{
			Gemini: defaultGeminiModel,
			Claude: defaultClaudeModel,
		},
		Search: SearchConfig{
			Endpoint:       defaultSearchEndpoint,
			TimeoutSeconds: defaultSearchTimeout,
		},
		Defaults: DefaultConfig{
			OutputDir: ".",
			Format:    FormatJSON,
		},
	}

	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return path, err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return path, err
	}

	return path, err
}
