package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds toxguard service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Model   ModelConfig   `yaml:"model"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"` // HTTP listen address, e.g. ":8080"
}

type ModelConfig struct {
	Dir       string  `yaml:"dir"`       // directory with model.onnx + vocab.txt
	SeqLen    int     `yaml:"seq_len"`   // 0 = use tokenizer config's model_max_length
	Threshold float32 `yaml:"threshold"` // default policy threshold for /v1/analyze
}

type LoggingConfig struct {
	// TextLevel controls how much user text may appear in logs:
	// none | snippet
	TextLevel string `yaml:"text_level"`
}

// Load reads configuration from a YAML file.
// If the file doesn't exist, it returns a default config and no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Model: ModelConfig{
			Dir:       "models/toxguard",
			Threshold: 0.5,
		},
		Logging: LoggingConfig{
			TextLevel: "snippet",
		},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Model.Dir == "" {
		cfg.Model.Dir = "models/toxguard"
	}
	if cfg.Model.Threshold == 0 {
		cfg.Model.Threshold = 0.5
	}
	if cfg.Logging.TextLevel == "" {
		cfg.Logging.TextLevel = "snippet"
	}
}
