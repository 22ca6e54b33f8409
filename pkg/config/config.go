/*
Package config manages TOML config for searchkit.
*/
package config

import (
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/quillboard/searchkit/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Search  SearchConfig  `toml:"search"`
	Journal JournalConfig `toml:"journal"`
}

// SearchConfig has suggestion pipeline options.
type SearchConfig struct {
	DebounceMs           int  `toml:"debounce_ms"`
	LatencyMs            int  `toml:"latency_ms"`
	MaxSuggestions       int  `toml:"max_suggestions"`
	EnableAdvancedSearch bool `toml:"enable_advanced_search"`
}

// JournalConfig holds recent-search history options.
type JournalConfig struct {
	MaxEntries int    `toml:"max_entries"`
	StorePath  string `toml:"store_path"` // SQLite file; empty means per-key files
	StoreDir   string `toml:"store_dir"`  // directory for the file store
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	dataDir := utils.DefaultDataDir()
	return &Config{
		Search: SearchConfig{
			DebounceMs:           300,
			LatencyMs:            300,
			MaxSuggestions:       8,
			EnableAdvancedSearch: true,
		},
		Journal: JournalConfig{
			MaxEntries: 5,
			StorePath:  "",
			StoreDir:   dataDir,
		},
	}
}

// DefaultConfigPath returns the default location of config.toml.
func DefaultConfigPath() string {
	return filepath.Join(utils.DefaultDataDir(), "config.toml")
}

// InitConfig loads config from file or creates default if missing.
// Any failure degrades to builtin defaults; config never stops startup.
func InitConfig(configPath string) *Config {
	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	configDir := filepath.Dir(configPath)
	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig()
	}
	if !utils.FileExists(configPath) {
		cfg := DefaultConfig()
		if err := Save(cfg, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
		} else {
			log.Debugf("Created default config file at: %s", configPath)
		}
		return cfg
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig()
	}
	log.Debugf("Loaded config from: %s", configPath)
	return cfg
}

// Load reads a TOML file over the defaults, so missing keys keep their
// default values.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, cfg); err != nil {
		return nil, err
	}
	return cfg.validated(), nil
}

// Save writes the config into a TOML file.
func Save(cfg *Config, configPath string) error {
	return utils.SaveTOMLFile(cfg, configPath)
}

// validated clamps nonsense values back to defaults rather than failing.
func (c *Config) validated() *Config {
	def := DefaultConfig()
	if c.Search.DebounceMs <= 0 {
		c.Search.DebounceMs = def.Search.DebounceMs
	}
	if c.Search.LatencyMs < 0 {
		c.Search.LatencyMs = def.Search.LatencyMs
	}
	if c.Search.MaxSuggestions <= 0 {
		c.Search.MaxSuggestions = def.Search.MaxSuggestions
	}
	if c.Journal.MaxEntries <= 0 {
		c.Journal.MaxEntries = def.Journal.MaxEntries
	}
	if c.Journal.StoreDir == "" {
		c.Journal.StoreDir = def.Journal.StoreDir
	}
	return c
}
