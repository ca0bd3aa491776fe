/*
Package config manages the TOML config for the autocomplete engines, the
IPC server, the interactive CLI and the benchmark runner.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/autocomplete/internal/utils"
	"github.com/bastiangx/autocomplete/pkg/suggest"
	"github.com/charmbracelet/log"
)

// FileName is the config file name inside the config directory
const FileName = "config.toml"

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the entire config structure
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Server ServerConfig `toml:"server"`
	Corpus CorpusConfig `toml:"corpus"`
	CLI    CliConfig    `toml:"cli"`
	Bench  BenchConfig  `toml:"bench"`
}

// EngineConfig selects the autocomplete engine.
type EngineConfig struct {
	Kind      string `toml:"kind"`
	MaxPrefix int    `toml:"max_prefix"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxLimit     int `toml:"max_limit"`
	MinPrefix    int `toml:"min_prefix"`
	MaxPrefix    int `toml:"max_prefix"`
	DefaultLimit int `toml:"default_limit"`
}

// CorpusConfig points at the weighted term corpus.
type CorpusConfig struct {
	Path string `toml:"path"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit    int  `toml:"default_limit"`
	DefaultMinLen   int  `toml:"default_min_len"`
	DefaultMaxLen   int  `toml:"default_max_len"`
	DefaultNoFilter bool `toml:"default_no_filter"`
}

// BenchConfig drives the benchmark runner.
type BenchConfig struct {
	Prefixes []string `toml:"prefixes"`
	K        int      `toml:"k"`
	Repeat   int      `toml:"repeat"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Kind:      string(suggest.KindBinarySearch),
			MaxPrefix: suggest.DefaultMaxPrefix,
		},
		Server: ServerConfig{
			MaxLimit:     64,
			MinPrefix:    0,
			MaxPrefix:    60,
			DefaultLimit: 10,
		},
		Corpus: CorpusConfig{
			Path: "data/words.txt",
		},
		CLI: CliConfig{
			DefaultLimit:    10,
			DefaultMinLen:   1,
			DefaultMaxLen:   60,
			DefaultNoFilter: false,
		},
		Bench: BenchConfig{
			Prefixes: []string{"", "a", "b", "th", "ne", "qu", "zz"},
			K:        10,
			Repeat:   100,
		},
	}
}

// Validate rejects values no component can run with
func (c *Config) Validate() error {
	if _, err := suggest.ParseKind(c.Engine.Kind); err != nil {
		return fmt.Errorf("%w: engine.kind: %w", ErrInvalidConfig, err)
	}
	if c.Engine.MaxPrefix < 1 {
		return fmt.Errorf("%w: engine.max_prefix must be at least 1, got %d", ErrInvalidConfig, c.Engine.MaxPrefix)
	}
	checks := []struct {
		name  string
		value int
	}{
		{"server.max_limit", c.Server.MaxLimit},
		{"server.min_prefix", c.Server.MinPrefix},
		{"server.max_prefix", c.Server.MaxPrefix},
		{"server.default_limit", c.Server.DefaultLimit},
		{"cli.default_limit", c.CLI.DefaultLimit},
		{"cli.default_min_len", c.CLI.DefaultMinLen},
		{"cli.default_max_len", c.CLI.DefaultMaxLen},
		{"bench.k", c.Bench.K},
		{"bench.repeat", c.Bench.Repeat},
	}
	for _, check := range checks {
		if check.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidConfig, check.name, check.value)
		}
	}
	if c.Server.MinPrefix > c.Server.MaxPrefix {
		return fmt.Errorf("%w: server.min_prefix %d exceeds server.max_prefix %d", ErrInvalidConfig, c.Server.MinPrefix, c.Server.MaxPrefix)
	}
	return nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	resolver, err := utils.NewPathResolver()
	if err != nil {
		return "", err
	}
	return resolver.GetConfigPath(FileName), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/autocomplete/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}
	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file over the defaults.
// A file that fails typed decoding is recovered section by section.
// The result is validated.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		config = tryPartialParse(configPath)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return config, nil
}

// tryPartialParse keeps every well-typed value it can find
func tryPartialParse(configPath string) *Config {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config
	}

	if section, ok := utils.ExtractSection(tempConfig, "engine"); ok {
		extractEngineConfig(section, &config.Engine)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "corpus"); ok {
		if val, ok := utils.ExtractString(section, "path"); ok {
			config.Corpus.Path = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	if section, ok := utils.ExtractSection(tempConfig, "bench"); ok {
		extractBenchConfig(section, &config.Bench)
	}
	return config
}

func extractEngineConfig(data map[string]any, engine *EngineConfig) {
	if val, ok := utils.ExtractString(data, "kind"); ok {
		engine.Kind = val
	}
	if val, ok := utils.ExtractInt64(data, "max_prefix"); ok {
		engine.MaxPrefix = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_prefix"); ok {
		server.MinPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		server.DefaultLimit = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "default_min_len"); ok {
		cli.DefaultMinLen = val
	}
	if val, ok := utils.ExtractInt64(data, "default_max_len"); ok {
		cli.DefaultMaxLen = val
	}
	if val, ok := utils.ExtractBool(data, "default_no_filter"); ok {
		cli.DefaultNoFilter = val
	}
}

func extractBenchConfig(data map[string]any, bench *BenchConfig) {
	if val, ok := utils.ExtractStrings(data, "prefixes"); ok {
		bench.Prefixes = val
	}
	if val, ok := utils.ExtractInt64(data, "k"); ok {
		bench.K = val
	}
	if val, ok := utils.ExtractInt64(data, "repeat"); ok {
		bench.Repeat = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "built-in defaults"
	}
	return utils.AbsPath(configPath)
}

// SaveConfig saves into a TOML file, creating its directory
func SaveConfig(config *Config, configPath string) error {
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		return err
	}
	return utils.SaveTOMLFile(config, configPath)
}
