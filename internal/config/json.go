package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// JsonConfig is the on-disk shape of the configuration file.
type JsonConfig struct {
	DataFile   string `json:"data_file"`
	HashScheme string `json:"hash_scheme"`
	LogLevel   string `json:"log_level"`
	LogFormat  string `json:"log_format"`
}

// parseJSON overlays cfg with the non-empty values found in path.
func parseJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	overlay(&cfg.DataFile, jc.DataFile)
	overlay(&cfg.HashScheme, jc.HashScheme)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogFormat, jc.LogFormat)
	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
