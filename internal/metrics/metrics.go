package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dtroode/subspace-wallet/internal/model"
)

const namespace = "wallet"

var _ model.WalletMetrics = (*Wallet)(nil)

// Wallet exports wallet counters and gauges on its own registry.
type Wallet struct {
	registry   *prometheus.Registry
	keyOps     *prometheus.CounterVec
	recordOps  *prometheus.CounterVec
	spaceUsed  prometheus.Gauge
	recordsNum prometheus.Gauge
}

// New creates the collectors and registers them with Go runtime and process collectors.
func New() *Wallet {
	w := &Wallet{
		registry: prometheus.NewRegistry(),
		keyOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "key_operations_total",
			Help:      "Key chain operations by kind and result.",
		}, []string{"op", "result"}),
		recordOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_operations_total",
			Help:      "Record changes applied to the contract.",
		}, []string{"op"}),
		spaceUsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "contract",
			Name:      "space_used",
			Help:      "Space charged to the contract, replication included.",
		}),
		recordsNum: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "contract",
			Name:      "records",
			Help:      "Record ids indexed by the contract.",
		}),
	}

	w.registry.MustRegister(
		w.keyOps,
		w.recordOps,
		w.spaceUsed,
		w.recordsNum,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return w
}

// Registry returns the registry holding the wallet collectors.
func (w *Wallet) Registry() *prometheus.Registry {
	return w.registry
}

func (w *Wallet) KeyOperation(op model.KeyOp, failed bool) {
	result := "ok"
	if failed {
		result = "error"
	}
	w.keyOps.WithLabelValues(string(op), result).Inc()
}

func (w *Wallet) RecordOperation(op model.RecordOp) {
	w.recordOps.WithLabelValues(string(op)).Inc()
}

func (w *Wallet) ContractUsage(spaceUsed int64, records int) {
	w.spaceUsed.Set(float64(spaceUsed))
	w.recordsNum.Set(float64(records))
}
