package session

import (
	"testing"

	"github.com/aretw0/scormkit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	s, err := Config{}.resolve()
	require.NoError(t, err)
	assert.Equal(t, domain.SCORM12, s.dialect)
	assert.True(t, s.handleExitMode)
	assert.True(t, s.handleCompletionStatus)
	assert.True(t, s.debug)
}

func TestConfig_Overrides(t *testing.T) {
	s, err := Config{
		Version:                "2004",
		HandleExitMode:         Bool(false),
		HandleCompletionStatus: Bool(false),
		Debug:                  Bool(false),
	}.resolve()
	require.NoError(t, err)
	assert.Equal(t, domain.SCORM2004, s.dialect)
	assert.False(t, s.handleExitMode)
	assert.False(t, s.handleCompletionStatus)
	assert.False(t, s.debug)
}

func TestConfigFromMap(t *testing.T) {
	cfg, err := ConfigFromMap(map[string]any{
		"version":        2004,
		"handleExitMode": "false",
		"debug":          true,
	})
	require.NoError(t, err)
	assert.Equal(t, "2004", cfg.Version)
	require.NotNil(t, cfg.HandleExitMode)
	assert.False(t, *cfg.HandleExitMode)
	assert.Nil(t, cfg.HandleCompletionStatus)
	require.NotNil(t, cfg.Debug)
	assert.True(t, *cfg.Debug)

	_, err = ConfigFromMap(map[string]any{"verison": "1.2"})
	assert.Error(t, err, "unknown keys are rejected")
}

func TestParseCode(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"101", 101},
		{" 201 ", 201},
		{"401 undefined element", 401},
		{"", UnknownErrorCode},
		{"abc", UnknownErrorCode},
		{"-", UnknownErrorCode},
	}
	for _, tt := range tests {
		if got := parseCode(tt.in); got != tt.want {
			t.Errorf("parseCode(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
