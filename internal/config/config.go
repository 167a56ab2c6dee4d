package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Settings  SettingsConfig   `mapstructure:"settings"`
	Registry  RegistryConfig   `mapstructure:"registry"`
	Providers []ProviderConfig `mapstructure:"providers"`
}

type SettingsConfig struct {
	// Path of the JSONC settings document this tool edits.
	Path string `mapstructure:"path"`
	// DefaultMaxTokens is the requested token limit for resolved models;
	// individual models may declare a tighter cap.
	DefaultMaxTokens int `mapstructure:"default_max_tokens"`
}

type RegistryConfig struct {
	URL string `mapstructure:"url"`
}

type ProviderConfig struct {
	Name   string `mapstructure:"name"`
	APIURL string `mapstructure:"api_url"`
	APIKey string `mapstructure:"api_key"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig() (*Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("settings.path", defaultSettingsPath())
	v.SetDefault("settings.default_max_tokens", 8192)
	v.SetDefault("registry.url", "https://openrouter.ai/api/v1/models")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	// Resolve API keys declared as ENV:VAR_NAME indirections.
	for i, p := range cfg.Providers {
		if strings.HasPrefix(p.APIKey, "ENV:") {
			envVar := strings.TrimPrefix(p.APIKey, "ENV:")
			val := os.Getenv(envVar)
			if val == "" {
				val = v.GetString(envVar)
			}
			cfg.Providers[i].APIKey = val
		}
	}

	return &cfg, nil
}

// Provider returns the configured provider with the given name.
func (c *Config) Provider(name string) (ProviderConfig, bool) {
	for _, p := range c.Providers {
		if p.Name == name {
			return p, true
		}
	}
	return ProviderConfig{}, false
}

func defaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "settings.json"
	}
	return filepath.Join(home, ".config", "model-config-kit", "settings.json")
}
