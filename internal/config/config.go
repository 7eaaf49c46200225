package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dshills/linemark/internal/config/loader"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "LINEMARK_"

type layerID int

const (
	layerDefaults layerID = iota
	layerFile
	layerEnv
	layerFlags
	layerCount
)

// Config holds the layered configuration.
type Config struct {
	mu sync.RWMutex

	layers [layerCount]map[string]any

	fs   loader.FileSystem
	path string
	env  loader.Loader

	// configErrors stores type problems found by section accessors.
	configErrors map[string]error
}

// Option configures a Config instance.
type Option func(*Config)

// WithFile sets the config file to load. The format follows the extension.
func WithFile(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFS sets the file system the config file is read from.
func WithFS(fs loader.FileSystem) Option {
	return func(c *Config) {
		c.fs = fs
	}
}

// WithEnvLoader replaces the environment loader. A nil loader disables
// the environment layer.
func WithEnvLoader(l loader.Loader) Option {
	return func(c *Config) {
		c.env = l
	}
}

// New creates a Config holding only the defaults.
func New(opts ...Option) *Config {
	c := &Config{
		fs:  loader.DefaultFS(),
		env: loader.NewEnvLoader(EnvPrefix),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.layers[layerDefaults] = defaultConfig()
	return c
}

// Load reads the config file (if one is set) and the environment.
// A missing file is not an error.
func (c *Config) Load(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.path != "" {
		f, err := loader.NewFile(c.fs, c.path)
		if err != nil {
			return err
		}
		data, err := f.Load()
		if err != nil {
			return err
		}
		c.layers[layerFile] = data
	}

	if c.env != nil {
		data, err := c.env.Load()
		if err != nil {
			return fmt.Errorf("loading environment: %w", err)
		}
		c.layers[layerEnv] = data
	}

	c.configErrors = nil
	return nil
}

// Path returns the config file path, if any.
func (c *Config) Path() string {
	return c.path
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getPath(c.mergedLocked(), path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Want: "string", Got: typeName(v)}
	}
	return s, nil
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Want: "bool", Got: typeName(v)}
	}
	return b, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case uint64:
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Want: "int", Got: typeName(v)}
	}
}

// Set sets a value in the flags layer, above every other source.
func (c *Config) Set(path string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.layers[layerFlags] == nil {
		c.layers[layerFlags] = make(map[string]any)
	}
	return setPath(c.layers[layerFlags], path, value)
}

// Merged returns a copy of the merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mergedLocked()
}

func (c *Config) mergedLocked() map[string]any {
	merged := make(map[string]any)
	for _, layer := range c.layers {
		merged = loader.DeepMerge(merged, loader.Clone(layer))
	}
	return merged
}

// Discover returns the first config file found in dir, then in the user
// config directory. It returns "" when there is none.
func Discover(fs loader.FileSystem, dir string) string {
	var candidates []string
	for _, name := range []string{".linemark.toml", ".linemark.yaml", ".linemark.yml"} {
		candidates = append(candidates, filepath.Join(dir, name))
	}
	if userDir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(userDir, "linemark", "config.toml"),
			filepath.Join(userDir, "linemark", "config.yaml"),
		)
	}
	for _, p := range candidates {
		if _, err := fs.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"logging": map[string]any{
			"level": "info",
		},
		"highlight": map[string]any{
			"language": "",
			"theme":    "default",
		},
		"brackets": map[string]any{
			"adjacency": "after",
		},
		"editor": map[string]any{
			"currentLine": true,
		},
	}
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	current := any(m)
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = cm[part]; !ok {
			return nil, false
		}
	}
	return current, true
}

// setPath sets a value in a nested map using a dot-separated path.
func setPath(m map[string]any, path string, value any) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return ErrInvalidPath
	}

	current := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part]
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		nextMap, ok := next.(map[string]any)
		if !ok {
			return ErrInvalidPath
		}
		current = nextMap
	}

	current[parts[len(parts)-1]] = value
	return nil
}

// splitPath splits a dot-separated path into non-empty parts.
func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, ".") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case int, int64, uint64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
