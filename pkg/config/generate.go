package config

import (
	"bytes"

	"github.com/pelletier/go-toml/v2"
)

// DefaultsContent returns the embedded defaults file, comments included
func DefaultsContent() string {
	return string(defaultConfig)
}

// Marshal renders cfg as TOML
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
