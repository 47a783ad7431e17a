// Package config loads the checker configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config selects which post-processing checks run on a flattened system.
type Config struct {
	// Checks lists enabled check names; the special name "all" enables
	// every check.
	Checks []string `toml:"checks"`
}

// Default returns the configuration used when no file is present: all
// checks enabled.
func Default() Config {
	return Config{Checks: []string{"all"}}
}

// Enabled reports whether the named check should run.
func (c Config) Enabled(name string) bool {
	for _, el := range c.Checks {
		if el == "all" || el == name {
			return true
		}
	}
	return false
}

// Parse decodes a configuration file. A missing file is not an error and
// yields the default configuration.
func Parse(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("when decoding %s: %w", path, err)
	}
	if len(meta.Undecoded()) > 0 {
		return Config{}, fmt.Errorf("%s: unknown option %s", path, meta.Undecoded()[0])
	}
	return cfg, nil
}
