// Package config loads the scormkit CLI configuration from a YAML or JSON file
// and SCORMKIT_* environment variables.
package config

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/scormkit/pkg/session"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SCORMKIT_"

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// ErrInvalidConfig is returned for configuration values that cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the CLI configuration.
type Config struct {
	Session session.Config `mapstructure:"session"`
	Storage Storage        `mapstructure:"storage"`
	Bridge  Bridge         `mapstructure:"bridge"`
}

// Storage selects and configures the fallback storage.
type Storage struct {
	Driver    string `mapstructure:"driver"`
	Dir       string `mapstructure:"dir"`
	Namespace string `mapstructure:"namespace"`

	// EncryptionKey is a base64 AES-256 key; empty disables encryption.
	EncryptionKey string `mapstructure:"encryptionKey"`

	Redis Redis `mapstructure:"redis"`
}

// Redis configures the redis storage driver.
type Redis struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Bridge configures the HTTP bridge.
type Bridge struct {
	// Addr is the listen address of `scormkit serve`.
	Addr string `mapstructure:"addr"`
	// URL is the bridge `scormkit run` connects to; empty runs without an LMS.
	URL string `mapstructure:"url"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Session: session.Config{Version: session.DefaultVersion},
		Storage: Storage{
			Driver: DriverMemory,
			Dir:    filepath.Join(".scormkit", "storage"),
			Redis: Redis{
				Addr:   "localhost:6379",
				Prefix: "scormkit:storage:",
			},
		},
		Bridge: Bridge{Addr: ":8080"},
	}
}

// Load reads path (YAML unless it ends in .json) over the defaults, then
// applies environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := readFile(path)
		if err != nil {
			return cfg, err
		}
		if err := decode(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverFile, DriverRedis:
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}
	if c.Storage.EncryptionKey != "" {
		if _, err := c.Storage.Key(); err != nil {
			return err
		}
	}
	return nil
}

// Key decodes the encryption key.
func (s Storage) Key() ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(s.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: encryption key is not base64: %v", ErrInvalidConfig, err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("%w: encryption key must be 32 bytes, got %d", ErrInvalidConfig, len(key))
	}
	return key, nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	raw := make(map[string]any)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return raw, nil
}

func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// applyEnv overrides cfg from SCORMKIT_* variables.
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"VERSION":        &cfg.Session.Version,
		"STORE":          &cfg.Storage.Driver,
		"STORAGE_DIR":    &cfg.Storage.Dir,
		"NAMESPACE":      &cfg.Storage.Namespace,
		"ENCRYPTION_KEY": &cfg.Storage.EncryptionKey,
		"REDIS_ADDR":     &cfg.Storage.Redis.Addr,
		"REDIS_PASSWORD": &cfg.Storage.Redis.Password,
		"REDIS_PREFIX":   &cfg.Storage.Redis.Prefix,
		"ADDR":           &cfg.Bridge.Addr,
		"LMS_URL":        &cfg.Bridge.URL,
	}
	for name, dst := range str {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}

	flags := map[string]**bool{
		"DEBUG":                    &cfg.Session.Debug,
		"HANDLE_EXIT_MODE":         &cfg.Session.HandleExitMode,
		"HANDLE_COMPLETION_STATUS": &cfg.Session.HandleCompletionStatus,
	}
	for name, dst := range flags {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s: %v", ErrInvalidConfig, EnvPrefix, name, err)
		}
		*dst = session.Bool(b)
	}

	if v, ok := lookup(EnvPrefix + "REDIS_DB"); ok {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sREDIS_DB: %v", ErrInvalidConfig, EnvPrefix, err)
		}
		cfg.Storage.Redis.DB = db
	}
	if v, ok := lookup(EnvPrefix + "REDIS_TTL"); ok {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %sREDIS_TTL: %v", ErrInvalidConfig, EnvPrefix, err)
		}
		cfg.Storage.Redis.TTL = ttl
	}
	return nil
}
