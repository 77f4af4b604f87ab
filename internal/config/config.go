// Package config provides thread-safe configuration management for safefs.
// Values come from a dotenv style file (KEY=value lines), SAFEFS_ prefixed
// environment variables and bound command-line flags, resolved through viper
// with flags taking precedence over the environment, then the file, then the
// Defaults table. Saves are atomic.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/zoro11031/safefs/internal/common"
)

// Config manages safefs settings with thread-safe operations
type Config struct {
	filePath string
	v        *viper.Viper
	data     map[string]string // values stored in the file
	loaded   bool              // Track if configuration has been loaded from disk
	mu       sync.RWMutex
}

// DefaultPath returns ~/.safefs.conf, or a path in the working directory
// when no home directory is known.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".safefs.conf"
	}
	return filepath.Join(home, ".safefs.conf")
}

// New creates a new Config instance. An empty filePath selects DefaultPath.
func New(filePath string) *Config {
	if filePath == "" {
		filePath = DefaultPath()
	}

	v := viper.New()
	v.SetConfigFile(filePath)
	v.SetConfigType("env")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	for key, value := range Defaults {
		v.SetDefault(key, value)
	}

	return &Config{
		filePath: filePath,
		v:        v,
		data:     make(map[string]string),
	}
}

// ensureLoaded loads configuration data from disk once before read operations.
// This method must only be called while holding c.mu.Lock.
func (c *Config) ensureLoaded() error {
	if c.loaded {
		return nil
	}
	return c.load()
}

// Load reads configuration from file. A missing file is not an error.
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

func (c *Config) load() error {
	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read config file %s: %w", c.filePath, err)
		}
	}

	c.data = make(map[string]string)
	for _, key := range c.v.AllKeys() {
		if c.v.InConfig(key) {
			c.data[strings.ToUpper(key)] = c.v.GetString(key)
		}
	}
	c.loaded = true
	return nil
}

// Save writes the file-backed values using an atomic write pattern so a
// failed write never leaves a truncated config behind.
func (c *Config) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save()
}

func (c *Config) save() error {
	dir := filepath.Dir(c.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// viper picks the encoder from the extension, so the temp file ends in .env
	tmpFile, err := os.CreateTemp(dir, ".safefs.conf.tmp-*.env")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath) // Cleanup on error
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	out := viper.New()
	for key, value := range c.data {
		out.Set(key, value)
	}
	if err := out.WriteConfigAs(tmpPath); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		return fmt.Errorf("failed to set permissions on temp file: %w", err)
	}

	if err := os.Rename(tmpPath, c.filePath); err != nil {
		return fmt.Errorf("failed to rename temp file to config: %w", err)
	}
	return nil
}

// Get retrieves a resolved value (thread-safe)
func (c *Config) Get(key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(); err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	if !c.v.IsSet(key) {
		return "", fmt.Errorf("config key not found: %s", key)
	}
	return c.v.GetString(key), nil
}

// GetOrDefault retrieves a value or returns defaultValue if the key is set
// nowhere, not even in the Defaults table (thread-safe)
func (c *Config) GetOrDefault(key, defaultValue string) string {
	value, err := c.Get(key)
	if err != nil {
		return defaultValue
	}
	return value
}

// GetBool resolves a boolean setting. Unparseable values are an error.
func (c *Config) GetBool(key string) (bool, error) {
	value, err := c.Get(key)
	if err != nil {
		return false, err
	}
	b, err := common.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("config key %s: %w", key, err)
	}
	return b, nil
}

// Set validates and stores a value in the config file (thread-safe)
// Existing configuration is loaded first to prevent data loss
func (c *Config) Set(key, value string) error {
	key = strings.ToUpper(strings.TrimSpace(key))
	validate, known := Validators[key]
	if !known {
		return fmt.Errorf("unknown config key: %s", key)
	}
	if err := validate(value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(); err != nil {
		return fmt.Errorf("failed to load existing config before set: %w", err)
	}
	c.data[key] = value
	if err := c.save(); err != nil {
		return err
	}
	return c.load()
}

// GetAll returns every known key with its resolved value (thread-safe)
func (c *Config) GetAll() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureLoaded(); err != nil {
		return map[string]string{}
	}
	result := make(map[string]string)
	for _, key := range c.v.AllKeys() {
		result[strings.ToUpper(key)] = c.v.GetString(key)
	}
	return result
}

// Keys returns the known keys in sorted order.
func (c *Config) Keys() []string {
	all := c.GetAll()
	keys := make([]string, 0, len(all))
	for key := range all {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// BindFlags lets the flags named in FlagNames override their keys. Flags
// that are not defined on flags are skipped.
func (c *Config) BindFlags(flags *pflag.FlagSet) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, name := range FlagNames {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := c.v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// FilePath returns the configuration file path
func (c *Config) FilePath() string {
	return c.filePath
}
