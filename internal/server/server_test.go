package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type healthFunc func(ctx context.Context) bool

func (f healthFunc) Healthy(ctx context.Context) bool {
	return f(ctx)
}

func newTestServer(healthy bool) (*Server, *Status, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	status := NewStatus("reindex")
	srv := NewServer(&Config{Port: "0"}, healthFunc(func(context.Context) bool { return healthy }), status, reg)
	return srv, status, reg
}

func serve(srv *Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServer_Health(t *testing.T) {
	srv, _, _ := newTestServer(true)
	rec := serve(srv, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	srv, _, _ = newTestServer(false)
	rec = serve(srv, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_Status(t *testing.T) {
	srv, status, _ := newTestServer(true)

	var snap Snapshot
	rec := serve(srv, "/status")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, PhasePending, snap.Phase)
	assert.Equal(t, "reindex", snap.Recipe)

	status.Start()
	status.Finish(3, 250, nil)
	rec = serve(srv, "/status")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, PhaseFinished, snap.Phase)
	assert.Equal(t, int64(3), snap.Batches)
	assert.Equal(t, int64(250), snap.Records)
	assert.False(t, snap.StartedAt.IsZero())
}

func TestStatus_Failed(t *testing.T) {
	status := NewStatus("reindex")
	status.Start()
	status.Finish(1, 2, errors.New("search rejected"))

	snap := status.Snapshot()
	assert.Equal(t, PhaseFailed, snap.Phase)
	assert.Equal(t, "search rejected", snap.Error)
}

func TestServer_Metrics(t *testing.T) {
	srv, _, reg := newTestServer(true)
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "elastictea_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Add(2)

	rec := serve(srv, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "elastictea_test_total 2"))
}

func TestServer_NotFound(t *testing.T) {
	srv, _, _ := newTestServer(true)
	rec := serve(srv, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		port    string
		want    string
		enabled bool
		wantErr bool
	}{
		{name: "default", port: "", want: defaultPort, enabled: true},
		{name: "custom", port: "8081", want: "8081", enabled: true},
		{name: "disabled", port: "off", want: "off"},
		{name: "not a number", port: "http", wantErr: true},
		{name: "out of range", port: "70000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STATUS_PORT", tt.port)
			cfg, err := LoadConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Port)
			assert.Equal(t, tt.enabled, cfg.Enabled())
		})
	}
}
