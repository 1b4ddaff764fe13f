package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	OpenAIAPIKey     string `json:"openai_api_key"`
	Model            string `json:"model,omitempty"`
	ReportsDir       string `json:"reports_dir,omitempty"`
	ChunkTokens      int    `json:"chunk_tokens,omitempty"`
	RequirementsFile string `json:"requirements_file,omitempty"`
}

// GetModel returns the scoring model or the default if not specified.
func (c *Config) GetModel() (model string) {
	if c.Model != "" {
		model = c.Model
		return model
	}
	model = "gpt-4"
	return model
}

// GetChunkTokens returns the per-chunk token budget or the default if not
// specified.
func (c *Config) GetChunkTokens() (tokens int) {
	if c.ChunkTokens > 0 {
		tokens = c.ChunkTokens
		return tokens
	}
	tokens = 2000
	return tokens
}

// Load reads configuration from file with environment variable overrides.
func Load(configPath string) (cfg Config, err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return cfg, err
		}
		path = filepath.Join(homeDir, ".policyaudit", "config.json")
	}

	// Read config file
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Errorf("config file not found: %s (run 'policyaudit init' to create)", path)
			return cfg, err
		}
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	// Parse JSON
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}

	// Override with environment variable if set
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		cfg.OpenAIAPIKey = apiKey
	}

	// Validate required fields
	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() (err error) {
	if c.OpenAIAPIKey == "" {
		err = errors.New("openai_api_key is required (set in config or OPENAI_API_KEY env var)")
		return err
	}

	// Check custom requirements file exists when configured
	if c.RequirementsFile != "" {
		_, err = os.Stat(c.RequirementsFile)
		if os.IsNotExist(err) {
			err = errors.Errorf("requirements file not found: %s", c.RequirementsFile)
			return err
		}
		err = nil
	}

	// Set default reports_dir if not specified
	if c.ReportsDir == "" {
		c.ReportsDir = "./reports"
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return err
		}
		path = filepath.Join(homeDir, ".policyaudit", "config.json")
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	// Create default config
	defaultConfig := Config{
		OpenAIAPIKey: "sk-...",
		Model:        "gpt-4",
		ReportsDir:   "./reports",
		ChunkTokens:  2000,
	}

	// Write to file
	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
