package http_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	bridge "github.com/aretw0/scormkit/pkg/adapters/http"
	"github.com/aretw0/scormkit/pkg/adapters/memory"
	"github.com/aretw0/scormkit/pkg/domain"
	"github.com/aretw0/scormkit/pkg/locator"
	"github.com/aretw0/scormkit/pkg/session"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCall(t *testing.T) {
	lms := memory.NewLMS(domain.SCORM12)
	h := bridge.NewHandler(lms)

	w := post(t, h, "/api/LMSInitialize", `{"args":[""]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":"true"}`, w.Body.String())

	w = post(t, h, "/api/LMSSetValue", `{"args":["cmi.core.lesson_location","3"]}`)
	assert.JSONEq(t, `{"result":"true"}`, w.Body.String())

	v, _ := lms.Value("cmi.core.lesson_location")
	assert.Equal(t, "3", v)
}

func TestCall_EmptyBody(t *testing.T) {
	h := bridge.NewHandler(memory.NewLMS(domain.SCORM12))

	w := post(t, h, "/api/LMSGetLastError", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":"0"}`, w.Body.String())
}

func TestCall_UnknownMethodAnswersNull(t *testing.T) {
	h := bridge.NewHandler(memory.NewLMS(domain.SCORM12))

	w := post(t, h, "/api/Nope", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":null}`, w.Body.String())
}

func TestCall_InvalidBody(t *testing.T) {
	h := bridge.NewHandler(memory.NewLMS(domain.SCORM12))

	w := post(t, h, "/api/LMSInitialize", `{"args":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthInfoAndCORS(t *testing.T) {
	h := bridge.NewHandler(memory.NewLMS(domain.SCORM12), bridge.WithInfo("dialect", "1.2"))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/info", nil))
	assert.JSONEq(t, `{"app":"scormkit-bridge","dialect":"1.2"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/LMSInitialize", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsMountedOnlyWhenConfigured(t *testing.T) {
	plain := bridge.NewHandler(memory.NewLMS(domain.SCORM12))
	w := httptest.NewRecorder()
	plain.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	withMetrics := bridge.NewHandler(memory.NewLMS(domain.SCORM12), bridge.WithMetricsHandler(promhttp.Handler()))
	w = httptest.NewRecorder()
	withMetrics.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClient_DrivesSessionOverBridge(t *testing.T) {
	lms := memory.NewLMS(domain.SCORM2004)
	srv := httptest.NewServer(bridge.NewHandler(lms))
	defer srv.Close()

	api := bridge.NewClient(srv.URL + "/")
	m := session.NewManager(locator.Fixed{API: api, Dialect: domain.SCORM2004})

	require.True(t, m.Initialize().Success)
	require.True(t, m.Set("cmi.location", "9"))
	require.True(t, m.Terminate())

	loc, _ := lms.Committed("cmi.location")
	assert.Equal(t, "9", loc)
	assert.True(t, lms.Terminated())
}

func TestClient_UnreachableAnswersNil(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	api := bridge.NewClient(srv.URL, bridge.WithHTTPClient(&http.Client{Timeout: time.Second}))
	assert.Nil(t, api.Invoke("Initialize", ""))
}

func TestClient_NonOKAnswersNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	assert.Nil(t, bridge.NewClient(srv.URL).Invoke("Initialize", ""))
}

func TestSubscribeEvents(t *testing.T) {
	srv := httptest.NewServer(bridge.NewHandler(memory.NewLMS(domain.SCORM12)))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	lines := bufio.NewScanner(resp.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, "event: ping", lines.Text())

	body, _ := json.Marshal(bridge.CallRequest{Args: []string{""}})
	callResp, err := http.Post(srv.URL+"/api/LMSInitialize", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	callResp.Body.Close()

	var event bridge.CallEvent
	for lines.Scan() {
		if data, ok := strings.CutPrefix(lines.Text(), "data: "); ok && data != "connected" {
			require.NoError(t, json.Unmarshal([]byte(data), &event))
			break
		}
	}
	assert.Equal(t, "LMSInitialize", event.Method)
	assert.Equal(t, "true", event.Result)
}

func TestStreamManager(t *testing.T) {
	sm := bridge.NewStreamManager()
	ch, cancel := sm.Subscribe()
	assert.Equal(t, 1, sm.Subscribers())

	sm.Broadcast("hello")
	assert.Equal(t, "hello", <-ch)

	cancel()
	cancel()
	assert.Equal(t, 0, sm.Subscribers())
	_, open := <-ch
	assert.False(t, open)
}
