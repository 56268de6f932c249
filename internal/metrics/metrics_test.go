package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/subspace-wallet/internal/mocks"
	"github.com/dtroode/subspace-wallet/internal/model"
)

func TestWallet_Counters(t *testing.T) {
	w := New()

	w.KeyOperation(model.KeyOpAdd, false)
	w.KeyOperation(model.KeyOpOpen, true)
	w.KeyOperation(model.KeyOpOpen, true)
	w.RecordOperation(model.RecordOpAdd)
	w.ContractUsage(300, 1)

	assert.Equal(t, 1.0, testutil.ToFloat64(w.keyOps.WithLabelValues("add", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(w.keyOps.WithLabelValues("open", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(w.recordOps.WithLabelValues("add")))
	assert.Equal(t, 300.0, testutil.ToFloat64(w.spaceUsed))
	assert.Equal(t, 1.0, testutil.ToFloat64(w.recordsNum))

	// usage may go negative
	w.ContractUsage(-60, 0)
	assert.Equal(t, -60.0, testutil.ToFloat64(w.spaceUsed))
}

func TestServer_ServesRegistry(t *testing.T) {
	w := New()
	w.RecordOperation(model.RecordOpRemove)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	sec := mocks.NewSecurityLayer(t)
	sec.On("Listen", "tcp", "127.0.0.1:0").Return(ln, nil)

	s := NewServer("127.0.0.1:0", w.Registry())
	served := make(chan error, 1)
	go func() { served <- s.Start(sec) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `wallet_record_operations_total{op="remove"} 1`))

	require.NoError(t, s.Stop(context.Background()))
	assert.NoError(t, <-served)
}
