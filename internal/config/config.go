package config

import (
	"os"

	"github.com/dmitrijs2005/dbkeeper/internal/common"
)

// Config holds runtime settings for the dbkeeper console.
//
// Fields:
//   - StorePath: the flat record file, created if missing.
//   - CredentialPath: file whose first 16 bytes are the admin secret.
//   - LogLevel / LogFormat: diagnostics written to stderr.
type Config struct {
	StorePath      string
	CredentialPath string
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with defaults matching the working-directory
// layout the tool has always used.
func (c *Config) LoadDefaults() {
	c.StorePath = common.DefaultStorePath
	c.CredentialPath = common.DefaultCredentialPath
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// Load builds a Config from args (without the program name): defaults,
// then the JSON file if one is named, then flags. Malformed input panics.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}

// LoadConfig is Load applied to the process arguments.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}
