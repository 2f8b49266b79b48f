package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/cryptox"
	"github.com/GiovannaDuccini08/Sistema-CRUD/internal/logging"
)

// EnvDataFile names the environment variable that overrides the data file path.
const EnvDataFile = "USERCRUD_DATA_FILE"

// Config holds runtime settings for the registry.
type Config struct {
	DataFile   string
	HashScheme string
	LogLevel   string
	LogFormat  string
}

// LoadDefaults populates c with the defaults.
func (c *Config) LoadDefaults() {
	c.DataFile = "usuarios.json"
	c.HashScheme = cryptox.SchemeSHA256
	c.LogLevel = "warn"
	c.LogFormat = logging.FormatText
}

// Load applies defaults, then the JSON file at configFile (if not empty),
// then the environment read through getenv.
func Load(configFile string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if configFile != "" {
		if err := parseJSON(cfg, configFile); err != nil {
			return nil, err
		}
	}

	parseEnv(cfg, getenv)
	return cfg, nil
}

func parseEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		return
	}
	if v := strings.TrimSpace(getenv(EnvDataFile)); v != "" {
		cfg.DataFile = v
	}
}

// Validate rejects settings the program cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return errors.New("data file path is empty")
	}
	if _, err := cryptox.NewHasher(c.HashScheme); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
