package config

import "github.com/spf13/pflag"

// Flags binds the configuration flags to a flag set. Resolve reads them
// after parsing and applies only the ones the user actually set.
type Flags struct {
	fs *pflag.FlagSet

	ConfigFile string
	DataFile   string
	HashScheme string
	LogLevel   string
	LogFormat  string
}

// RegisterFlags adds the configuration flags to fs.
//
//	--config string      path to a JSON config file
//	--data-file string   path to the users JSON file
//	--hash string        password hash scheme: sha256 or bcrypt
//	--log-level string   debug, info, warn or error
//	--log-format string  text or json
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}

	var d Config
	d.LoadDefaults()

	fs.StringVarP(&f.ConfigFile, "config", "c", "", "path to a JSON config file")
	fs.StringVarP(&f.DataFile, "data-file", "f", d.DataFile, "path to the users JSON file (env: "+EnvDataFile+")")
	fs.StringVar(&f.HashScheme, "hash", d.HashScheme, "password hash scheme: sha256 or bcrypt")
	fs.StringVar(&f.LogLevel, "log-level", d.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&f.LogFormat, "log-format", d.LogFormat, "log format: text or json")

	return f
}

// Resolve builds the final Config: defaults, JSON file, environment, then
// the flags that were set on the command line.
func (f *Flags) Resolve(getenv func(string) string) (*Config, error) {
	cfg, err := Load(f.ConfigFile, getenv)
	if err != nil {
		return nil, err
	}

	if f.fs.Changed("data-file") {
		cfg.DataFile = f.DataFile
	}
	if f.fs.Changed("hash") {
		cfg.HashScheme = f.HashScheme
	}
	if f.fs.Changed("log-level") {
		cfg.LogLevel = f.LogLevel
	}
	if f.fs.Changed("log-format") {
		cfg.LogFormat = f.LogFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
