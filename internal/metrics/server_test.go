package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goran-ethernal/CertIndexor/internal/logger"
	"github.com/goran-ethernal/CertIndexor/pkg/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestServer_Handler(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	cfg.ApplyDefaults()

	LastProcessedBlockSet(42)
	ts := httptest.NewServer(NewServer(cfg, logger.NewNopLogger()).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "certindexor_last_processed_block 42")
}

func TestServer_StartStop(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true, ListenAddress: "127.0.0.1:0"}
	cfg.ApplyDefaults()

	s := NewServer(cfg, logger.NewNopLogger())
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
}

func TestServer_Disabled(t *testing.T) {
	s := NewServer(&config.MetricsConfig{}, logger.NewNopLogger())
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
}

func TestComponentHealthSet(t *testing.T) {
	ComponentHealthSet("indexer", true)
	require.InDelta(t, 1, testutil.ToFloat64(ComponentHealth.WithLabelValues("indexer")), 0)

	ComponentHealthSet("indexer", false)
	require.InDelta(t, 0, testutil.ToFloat64(ComponentHealth.WithLabelValues("indexer")), 0)
}
