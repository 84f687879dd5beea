package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the optional config file looked up in the working directory.
const FileName = ".ansireport.yml"

// DefaultLogFile is used when neither an argument nor the config file names a log.
const DefaultLogFile = "/var/log/ansible/ansible.log"

const (
	// ColorAuto enables color when stdout is a terminal.
	ColorAuto = "auto"
	// ColorAlways forces color output.
	ColorAlways = "always"
	// ColorNever disables color output.
	ColorNever = "never"
)

// Config captures CLI options sourced from config files or flags.
type Config struct {
	LogFile string `yaml:"log_file"`
	Color   string `yaml:"color"`
	Verbose bool   `yaml:"verbose"`

	// DistinctExitCodes reports unreadable logs with exit status 2 instead of 1.
	DistinctExitCodes bool `yaml:"distinct_exit_codes"`
}

// Default returns the baseline configuration used when no flags or config file specify values.
func Default() Config {
	return Config{
		LogFile: DefaultLogFile,
		Color:   ColorAuto,
	}
}

// Load reads .ansireport.yml from dir when present. Missing files are ignored.
func Load(dir string) (Config, error) {
	cfg := Default()
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	cfg = merge(cfg, fileCfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func merge(base, override Config) Config {
	out := base

	if override.LogFile != "" {
		out.LogFile = override.LogFile
	}
	if override.Color != "" {
		out.Color = override.Color
	}
	if override.Verbose {
		out.Verbose = true
	}
	if override.DistinctExitCodes {
		out.DistinctExitCodes = true
	}

	return out
}

// Validate rejects unsupported option values.
func (c Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return fmt.Errorf("unsupported color mode %q (auto|always|never)", c.Color)
	}
}

// ApplyFlags mutates cfg by applying values from CLI flags when they are present.
func ApplyFlags(cfg *Config, flags FlagValues) {
	if flags.Color.Set {
		cfg.Color = flags.Color.Value
	}
	if flags.Verbose.Set {
		cfg.Verbose = flags.Verbose.Value
	}
	if flags.DistinctExitCodes.Set {
		cfg.DistinctExitCodes = flags.DistinctExitCodes.Value
	}
}

// ResolveLogFile picks the log path: a positional argument wins over the
// configured path.
func ResolveLogFile(cfg Config, args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if cfg.LogFile != "" {
		return cfg.LogFile
	}
	return DefaultLogFile
}

// FlagValues captures CLI flag state with knowledge of whether each flag was set explicitly.
type FlagValues struct {
	Color             StringFlag
	Verbose           BoolFlag
	DistinctExitCodes BoolFlag
}

// StringFlag represents a string flag and whether it was set.
type StringFlag struct {
	Value string
	Set   bool
}

// BoolFlag represents a bool flag and whether it was set.
type BoolFlag struct {
	Value bool
	Set   bool
}
