package session

import (
	"fmt"

	"github.com/aretw0/scormkit/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// DefaultVersion is the dialect selected by Configure when none is given.
const DefaultVersion = "1.2"

// Config is the configuration surface of the session manager.
// Unset fields take their defaults: version "1.2" and every flag true.
type Config struct {
	Version                string `json:"version,omitempty" yaml:"version,omitempty" mapstructure:"version"`
	HandleExitMode         *bool  `json:"handleExitMode,omitempty" yaml:"handleExitMode,omitempty" mapstructure:"handleExitMode"`
	HandleCompletionStatus *bool  `json:"handleCompletionStatus,omitempty" yaml:"handleCompletionStatus,omitempty" mapstructure:"handleCompletionStatus"`
	Debug                  *bool  `json:"debug,omitempty" yaml:"debug,omitempty" mapstructure:"debug"`
}

// settings is a Config with defaults applied.
type settings struct {
	dialect                *domain.Dialect
	handleExitMode         bool
	handleCompletionStatus bool
	debug                  bool
}

func defaultSettings() settings {
	return settings{
		handleExitMode:         true,
		handleCompletionStatus: true,
		debug:                  true,
	}
}

func (c Config) resolve() (settings, error) {
	s := defaultSettings()

	version := c.Version
	if version == "" {
		version = DefaultVersion
	}
	d, err := domain.ParseDialect(version)
	if err != nil {
		return s, err
	}
	s.dialect = d

	if c.HandleExitMode != nil {
		s.handleExitMode = *c.HandleExitMode
	}
	if c.HandleCompletionStatus != nil {
		s.handleCompletionStatus = *c.HandleCompletionStatus
	}
	if c.Debug != nil {
		s.debug = *c.Debug
	}
	return s, nil
}

// ConfigFromMap decodes a loosely typed options map such as
// {"version": 2004, "debug": "false"} into a Config.
func ConfigFromMap(m map[string]any) (Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return cfg, err
	}
	if err := dec.Decode(m); err != nil {
		return cfg, fmt.Errorf("invalid session options: %w", err)
	}
	return cfg, nil
}

// Bool returns a pointer to b, for filling optional Config flags.
func Bool(b bool) *bool {
	return &b
}
