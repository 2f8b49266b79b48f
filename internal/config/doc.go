// Package config loads runtime configuration for the user registry CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with --config.
//  3. Environment: USERCRUD_DATA_FILE.
//  4. Command-line flags, which override earlier values.
//
// # JSON schema
//
//	{
//	  "data_file": "usuarios.json",
//	  "hash_scheme": "sha256",
//	  "log_level": "warn",
//	  "log_format": "text"
//	}
//
// Keys that are absent or empty keep the value from the previous source.
package config
