package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kipkorir-dev/procpulse-agent/config"
)

const statFixture = "cpu  7969864 6735 1633028 43336958 48613 180 5043\n" +
	"cpu0 2036657 3176 538690 40502503 48123 180 4562\n" +
	"cpu1 1895483 1224 350858 947119 194 0 244\n" +
	"intr 146577520\n"

// newTestServer wires a server against fixture proc data.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()
	statPath := filepath.Join(dir, "stat")
	require.NoError(t, os.WriteFile(statPath, []byte(statFixture), 0o644))

	procDir := filepath.Join(dir, "proc")
	require.NoError(t, os.Mkdir(procDir, 0o755))
	for _, name := range []string{"1", "42", "acpi"} {
		require.NoError(t, os.Mkdir(filepath.Join(procDir, name), 0o755))
	}

	cfg := config.LoadWithDefaults()
	cfg.ProcStatPath = statPath
	cfg.ProcDir = procDir

	return New(cfg)
}

func doRequest(srv *Server, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(srv, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestGetCPUTimes(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(srv, "/api/cpu/times", "test-api-key")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Times struct {
			User  uint64 `json:"user"`
			Idle  uint64 `json:"idle"`
			Steal uint64 `json:"steal"`
		} `json:"times"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, uint64(7969864), body.Times.User)
	assert.Equal(t, uint64(43336958), body.Times.Idle)
	assert.Equal(t, uint64(0), body.Times.Steal)
}

func TestGetPerCPUTimes(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(srv, "/api/cpu/times/percpu", "test-api-key")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Cores int `json:"cores"`
		Times []struct {
			User uint64 `json:"user"`
		} `json:"times"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Cores)
	require.Len(t, body.Times, 2)
	assert.Equal(t, uint64(2036657), body.Times[0].User)
	assert.Equal(t, uint64(1895483), body.Times[1].User)
}

func TestGetCPUUsage(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(srv, "/api/cpu/usage?interval=10ms", "test-api-key")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Interval    string    `json:"interval"`
		UsageTotal  float64   `json:"usage_total"`
		UsagePerCPU []float64 `json:"usage_per_cpu"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "10ms", body.Interval)
	// Fixture counters never advance, so usage reads as zero.
	assert.Equal(t, float64(0), body.UsageTotal)
	assert.Len(t, body.UsagePerCPU, 2)
}

func TestGetCPUUsageBadInterval(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(srv, "/api/cpu/usage?interval=never", "test-api-key")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPids(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(srv, "/api/processes/pids", "test-api-key")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Pids  []int32 `json:"pids"`
		Total int     `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []int32{1, 42}, body.Pids)
	assert.Equal(t, 2, body.Total)
}

func TestMetricsRequireAuth(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{
		"/api/cpu/times",
		"/api/cpu/times/percpu",
		"/api/cpu/usage",
		"/api/processes/pids",
		"/api/host",
		"/api/memory",
		"/api/load",
	} {
		w := doRequest(srv, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestUnreadableStatSourceReportsError(t *testing.T) {
	cfg := config.LoadWithDefaults()
	cfg.ProcStatPath = filepath.Join(t.TempDir(), "missing")
	cfg.ProcDir = t.TempDir()
	srv := New(cfg)

	w := doRequest(srv, "/api/cpu/times", "test-api-key")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
