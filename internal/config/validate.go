package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the loaded config for required fields and safe values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return errors.New("server.addr must be set")
	}

	if strings.TrimSpace(cfg.Model.Dir) == "" {
		return errors.New("model.dir must be set")
	}
	if cfg.Model.SeqLen < 0 {
		return fmt.Errorf("model.seq_len must not be negative, got %d", cfg.Model.SeqLen)
	}
	if cfg.Model.Threshold <= 0 || cfg.Model.Threshold >= 1 {
		return fmt.Errorf("model.threshold must be in (0, 1), got %v", cfg.Model.Threshold)
	}

	switch cfg.Logging.TextLevel {
	case "none", "snippet":
	default:
		return fmt.Errorf("logging.text_level must be none or snippet, got %q", cfg.Logging.TextLevel)
	}

	return nil
}
