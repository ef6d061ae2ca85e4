package cli

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/scormkit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBridgeHandler(t *testing.T) {
	h, lms, err := NewBridgeHandler(ServeOptions{Version: "2004", LearnerName: "Ada", LearnerID: "ada"})
	require.NoError(t, err)
	assert.Equal(t, domain.SCORM2004, lms.Dialect())

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/Initialize", "application/json", strings.NewReader(`{"args":[""]}`))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `scormkit_api_calls_total{method="Initialize",outcome="ok"} 1`)
	assert.Contains(t, string(body), "go_goroutines")

	resp, err = http.Get(srv.URL + "/info")
	require.NoError(t, err)
	defer resp.Body.Close()
	info, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(info), `"binding":"API_1484_11"`)
}

func TestNewBridgeHandler_UnknownVersion(t *testing.T) {
	_, _, err := NewBridgeHandler(ServeOptions{Version: "3.0"})
	assert.ErrorIs(t, err, domain.ErrUnknownDialect)
}
