package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/scormkit/internal/config"
	"github.com/aretw0/scormkit/pkg/adapters/file"
	"github.com/aretw0/scormkit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSession_AgainstBridge(t *testing.T) {
	h, lms, err := NewBridgeHandler(ServeOptions{Version: "1.2"})
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	defer srv.Close()

	cfg := config.Default()
	cfg.Bridge.URL = srv.URL

	var out bytes.Buffer
	err = RunSession(context.Background(), RunOptions{
		Config:   cfg,
		Headless: true,
		Script:   strings.NewReader("connect\nlocation 5\nscore 70\ncomplete\nterminate\n"),
		Output:   &out,
	})
	require.NoError(t, err)

	assert.Equal(t, "connected=true version=1.2\nok\nok\nok\nok\n", out.String())
	status, _ := lms.Committed("cmi.core.lesson_status")
	assert.Equal(t, domain.StatusCompleted, status)
	loc, _ := lms.Committed("cmi.core.lesson_location")
	assert.Equal(t, "5", loc)
}

func TestRunSession_StandaloneUsesFileStorage(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = config.DriverFile
	cfg.Storage.Dir = t.TempDir()

	var out bytes.Buffer
	err := RunSession(context.Background(), RunOptions{
		Config:    cfg,
		Namespace: "offline",
		Headless:  true,
		Script:    strings.NewReader(`location 8 {"step":8}` + "\n"),
		Output:    &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out.String())

	items, err := file.New(cfg.Storage.Dir, "offline").Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "8", items[domain.KeyBookmark])
	assert.Equal(t, `{~step~:8}`, items[domain.KeySuspendDataStr])
	assert.Equal(t, `{"step":8}`, items[domain.KeySuspendData])
}

func TestRunSession_HeadlessScriptError(t *testing.T) {
	err := RunSession(context.Background(), RunOptions{
		Config:   config.Default(),
		Headless: true,
		Script:   strings.NewReader("fly\n"),
		Output:   &bytes.Buffer{},
	})
	assert.Error(t, err)
}
