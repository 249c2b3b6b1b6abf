package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/dbkeeper/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	StorePath      string `json:"store_path"`
	CredentialPath string `json:"credential_path"`
	LogLevel       string `json:"log_level"`
	LogFormat      string `json:"log_format"`
}

// parseJson overlays cfg with the non-empty values of the JSON file named by
// -c/-config in args. Without such a flag it does nothing. Read or unmarshal
// errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.StorePath, jc.StorePath)
	overlay(&cfg.CredentialPath, jc.CredentialPath)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogFormat, jc.LogFormat)
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
