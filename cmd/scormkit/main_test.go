package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/scormkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "scormkit version "+scormkit.Version+"\n", execute(t, "version"))
}

func TestStorageLifecycle(t *testing.T) {
	dir := t.TempDir()
	script := dir + "/script.txt"
	require.NoError(t, writeFile(script, "location 3\nsuspend {\"name\":\"ada\"}\n"))

	execute(t, "run", script, "--headless", "--store", "file", "--storage-dir", dir, "--session", "learner-1")

	ls := execute(t, "storage", "ls", "--store", "file", "--storage-dir", dir)
	assert.Equal(t, "learner-1\n", ls)

	inspect := execute(t, "storage", "inspect", "learner-1", "--store", "file", "--storage-dir", dir, "--redact", "^suspend_data$")
	assert.Contains(t, inspect, "| bookmark | `3` |")
	assert.Contains(t, inspect, "| suspend_data | `***` |")
	assert.Contains(t, inspect, "suspend_data_str")

	rm := execute(t, "storage", "rm", "learner-1", "--store", "file", "--storage-dir", dir)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(rm), "learner-1"))

	assert.Empty(t, execute(t, "storage", "ls", "--store", "file", "--storage-dir", dir))
}
