package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Gpt     GptConfig     `mapstructure:"gpt"`
	Archive ArchiveConfig `mapstructure:"archive"`
}

type ServerConfig struct {
	ListenAddress  string `mapstructure:"listen_address"`
	WorkerPoolSize int    `mapstructure:"worker_pool_size"`
}

type GptConfig struct {
	ApiUrl string `mapstructure:"api_url"`
	ApiKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type ArchiveConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// Load reads configuration from the environment. GPT_API_URL, GPT_API_KEY
// and GPT_MODEL have no defaults and must be set.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("server.listen_address", ":8080")
	v.SetDefault("server.worker_pool_size", 120)
	v.SetDefault("gpt.api_url", "")
	v.SetDefault("gpt.api_key", "")
	v.SetDefault("gpt.model", "")
	v.SetDefault("archive.enabled", true)
	v.SetDefault("archive.dir", "stories")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.Gpt.ApiUrl == "" {
		return nil, fmt.Errorf("GPT_API_URL must be set")
	}
	if cfg.Gpt.ApiKey == "" {
		return nil, fmt.Errorf("GPT_API_KEY must be set")
	}
	if cfg.Gpt.Model == "" {
		return nil, fmt.Errorf("GPT_MODEL must be set")
	}

	return &cfg, nil
}
