package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toastline-dev/toastline/pkg/server"
	"github.com/toastline-dev/toastline/pkg/theme"
	"github.com/toastline-dev/toastline/pkg/toast"
	"github.com/toastline-dev/toastline/pkg/toaster"
)

func newTestServer(t *testing.T) (*toaster.Toaster, *httptest.Server) {
	t.Helper()

	tr := toaster.New()
	srv := server.New(tr, server.Config{Theme: theme.Default()})
	ts := httptest.NewServer(srv.Router())

	t.Cleanup(func() {
		ts.Close()
		srv.Close()
		tr.Close()
	})
	return tr, ts
}

func postToast(t *testing.T, ts *httptest.Server, body string) toast.ID {
	t.Helper()

	resp, err := http.Post(ts.URL+"/toasts", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID toast.ID `json:"id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotEmpty(t, created.ID)
	return created.ID
}

func TestCreateAndList(t *testing.T) {
	tr, ts := newTestServer(t)

	id := postToast(t, ts, `{"message":"deploy finished","level":"success","expiry_ms":0}`)

	got, ok := tr.Store().Get(id)
	require.True(t, ok)
	assert.Equal(t, "deploy finished", got.Message)
	assert.Equal(t, toast.LevelSuccess, got.Level)
	assert.False(t, got.Expires())

	resp, err := http.Get(ts.URL + "/toasts")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed struct {
		Toasts []toast.Toast `json:"toasts"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	require.Len(t, listed.Toasts, 1)
	assert.Equal(t, id, listed.Toasts[0].ID)
}

func TestCreateValidation(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/toasts", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/toasts", "application/json", strings.NewReader(`not json`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDismissEndpoint(t *testing.T) {
	tr, ts := newTestServer(t)

	id := postToast(t, ts, `{"message":"bye","expiry_ms":0}`)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/toasts/"+string(id), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, ok := tr.Store().Get(id)
	assert.False(t, ok)

	// Dismissing an unknown toast is still a 204.
	req, err = http.NewRequest(http.MethodDelete, ts.URL+"/toasts/nope", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestClearEndpoint(t *testing.T) {
	tr, ts := newTestServer(t)

	postToast(t, ts, `{"message":"a","expiry_ms":0}`)
	postToast(t, ts, `{"message":"b","expiry_ms":0,"dismissable":false}`)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/toasts", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.Equal(t, 0, tr.Store().Len())
}

func TestIndexServesRegions(t *testing.T) {
	_, ts := newTestServer(t)

	postToast(t, ts, `{"message":"hello index","expiry_ms":0}`)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "hello index")
	assert.Contains(t, html, "toastline-region")
	assert.Contains(t, html, "@keyframes toastline-progress")
}

func TestLiveSnapshots(t *testing.T) {
	_, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	type snapshot struct {
		Positions map[toast.Position][]toast.Toast `json:"positions"`
		HTML      map[toast.Position]string        `json:"html"`
	}

	readSnap := func() snapshot {
		var snap snapshot
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		require.NoError(t, conn.ReadJSON(&snap))
		return snap
	}

	// Initial snapshot arrives on connect, before any toast exists.
	snap := readSnap()
	assert.Empty(t, snap.Positions[toast.BottomLeft])

	id := postToast(t, ts, `{"message":"live update","expiry_ms":0}`)

	snap = readSnap()
	require.Len(t, snap.Positions[toast.BottomLeft], 1)
	assert.Equal(t, id, snap.Positions[toast.BottomLeft][0].ID)
	assert.Contains(t, snap.HTML[toast.BottomLeft], "live update")
}

func TestMetricsRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := server.NewMetrics(reg)

	tr := toaster.New(toaster.WithMetrics(m))
	defer tr.Close()

	tr.Info("one")
	tr.Success("two")
	id := tr.Toast(toast.New("three").WithNoExpiry())
	tr.Dismiss(id)
	tr.Clear()

	families, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		total := 0.0
		for _, metric := range mf.GetMetric() {
			if metric.GetCounter() != nil {
				total += metric.GetCounter().GetValue()
			}
			if metric.GetGauge() != nil {
				total += metric.GetGauge().GetValue()
			}
		}
		values[mf.GetName()] = total
	}

	assert.Equal(t, 3.0, values["toastline_toasts_shown_total"])
	assert.Equal(t, 1.0, values["toastline_toasts_dismissed_total"])
	assert.Equal(t, 2.0, values["toastline_toasts_cleared_total"])
	assert.Equal(t, 0.0, values["toastline_toasts_expired_total"])
	assert.Equal(t, 0.0, values["toastline_toasts_active"])
}
