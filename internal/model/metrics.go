package model

// KeyOp names a key chain operation reported to metrics.
type KeyOp string

const (
	KeyOpAdd    KeyOp = "add"
	KeyOpOpen   KeyOp = "open"
	KeyOpRemove KeyOp = "remove"
)

// WalletMetrics receives counters and gauges from the wallet services.
type WalletMetrics interface {
	// KeyOperation counts a key chain operation; failed is true when it returned an error.
	KeyOperation(op KeyOp, failed bool)
	// RecordOperation counts an applied contract record change.
	RecordOperation(op RecordOp)
	// ContractUsage reports the current accounting of the loaded contract.
	ContractUsage(spaceUsed int64, records int)
}
