// Package config loads the optional TOML run-configuration file
// cmd/mcs51run accepts alongside its command-line flags.
// Everything here is additive to process arguments: an empty path is not
// an error, since every setting it can hold also has a built-in default
// (see Default). A path naming a file that cannot be read or decoded is.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Run holds the settings a TOML config file may override. Command line
// flags always take precedence when both are supplied; see cmd/mcs51run.
type Run struct {
	CyclesPerSecond int    `toml:"cycles_per_second"`
	InstructionLog  int    `toml:"instruction_log_depth"`
	HexFile         string `toml:"hex_file"`
}

// Default returns the built-in settings used when no config file is given.
func Default() Run {
	return Run{
		CyclesPerSecond: 1000000,
		InstructionLog:  40,
	}
}

// Load reads and decodes the TOML file at path, starting from Default() so
// a partial file only overrides the fields it mentions.
func Load(path string) (Run, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config.Load(%q): %w", path, err)
	}
	return cfg, nil
}
