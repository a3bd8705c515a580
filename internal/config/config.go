package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultLogLevel    = "info"
	DefaultBranch      = "main"
	DefaultRecordsPath = "data/records.csv"
	DefaultRosterPath  = "data/machines.csv"
	DefaultDBFileName  = ".floorlog.db"

	configFileName  = ".floorlog.toml"
	configDirEnvKey = "FLOORLOG_CONFIG_DIR"
)

// RemoteConfig addresses the versioned blob store: a repository branch
// holding the two table files. The write token is not stored here; it comes
// from the FLOORLOG_TOKEN environment variable.
type RemoteConfig struct {
	APIURL      string `toml:"api_url"`
	Owner       string `toml:"owner"`
	Repo        string `toml:"repo"`
	Branch      string `toml:"branch"`
	RecordsPath string `toml:"records_path"`
	RosterPath  string `toml:"roster_path"`
}

// Config defines runtime configuration for floorlog.
type Config struct {
	LogLevel string       `toml:"log_level"`
	DBPath   string       `toml:"db_path"`
	Remote   RemoteConfig `toml:"remote"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		DBPath:   "",
		Remote: RemoteConfig{
			Branch:      DefaultBranch,
			RecordsPath: DefaultRecordsPath,
			RosterPath:  DefaultRosterPath,
		},
	}
}

// RemoteConfigured reports whether a remote blob endpoint is addressed.
// The store implementation is chosen from this exactly once at startup.
func (c *Config) RemoteConfigured() bool {
	return c.Remote.Owner != "" && c.Remote.Repo != ""
}

// Load reads config from the config file and applies env overrides.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return nil, err
	}
	if err := loadFileIfExists(path, &cfg); err != nil {
		return nil, err
	}

	if dbPath := os.Getenv("FLOORLOG_DB"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if owner := os.Getenv("FLOORLOG_OWNER"); owner != "" {
		cfg.Remote.Owner = owner
	}
	if repo := os.Getenv("FLOORLOG_REPO"); repo != "" {
		cfg.Remote.Repo = repo
	}
	if branch := os.Getenv("FLOORLOG_BRANCH"); branch != "" {
		cfg.Remote.Branch = branch
	}

	if cfg.DBPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.DBPath = filepath.Join(home, DefaultDBFileName)
		}
	}
	if cfg.Remote.Branch == "" {
		cfg.Remote.Branch = DefaultBranch
	}
	if cfg.Remote.RecordsPath == "" {
		cfg.Remote.RecordsPath = DefaultRecordsPath
	}
	if cfg.Remote.RosterPath == "" {
		cfg.Remote.RosterPath = DefaultRosterPath
	}

	return &cfg, nil
}

// Path returns the config file location: FLOORLOG_CONFIG_DIR when set,
// otherwise the user home directory.
func Path() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(configDirEnvKey)); dir != "" {
		return filepath.Join(dir, configFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

func loadFileIfExists(path string, cfg *Config) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

var allowedKeys = []string{
	"log_level",
	"db_path",
	"remote.api_url",
	"remote.owner",
	"remote.repo",
	"remote.branch",
	"remote.records_path",
	"remote.roster_path",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "log_level":
		return c.LogLevel, nil
	case "db_path":
		return c.DBPath, nil
	case "remote.api_url":
		return c.Remote.APIURL, nil
	case "remote.owner":
		return c.Remote.Owner, nil
	case "remote.repo":
		return c.Remote.Repo, nil
	case "remote.branch":
		return c.Remote.Branch, nil
	case "remote.records_path":
		return c.Remote.RecordsPath, nil
	case "remote.roster_path":
		return c.Remote.RosterPath, nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := setNestedKey(data, strings.Split(key, "."), strings.TrimSpace(value)); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

func setNestedKey(data map[string]any, parts []string, value any) error {
	if len(parts) == 0 {
		return fmt.Errorf("invalid config key")
	}
	if len(parts) == 1 {
		data[parts[0]] = value
		return nil
	}
	childRaw, ok := data[parts[0]]
	if !ok {
		child := map[string]any{}
		data[parts[0]] = child
		return setNestedKey(child, parts[1:], value)
	}
	child, ok := childRaw.(map[string]any)
	if !ok {
		return fmt.Errorf("cannot set nested key %q", strings.Join(parts, "."))
	}
	return setNestedKey(child, parts[1:], value)
}
