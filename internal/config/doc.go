// Package config loads runtime configuration for the dbkeeper console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   path of the store file
//	-p string   path of the credential file
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Every key is optional; missing keys keep the earlier value:
//
//	{
//	  "store_path": "database.db",
//	  "credential_path": "password.txt",
//	  "log_level": "warn",
//	  "log_format": "text"
//	}
//
// Environment variables are not consulted.
package config
