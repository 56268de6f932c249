package model

// RecordOp names a contract record mutation.
type RecordOp string

const (
	RecordOpAdd    RecordOp = "add"
	RecordOpUpdate RecordOp = "update"
	RecordOpRemove RecordOp = "remove"
)

// RecordChange is one record mutation applied to the loaded contract.
// Size is the raw record size for add and remove and the signed delta for update.
type RecordChange struct {
	Op   RecordOp
	ID   string
	Size int64
}

// Validate rejects changes without a record id or with an unknown op.
func (c RecordChange) Validate() error {
	if c.ID == "" {
		return ErrInvalidOptions
	}
	switch c.Op {
	case RecordOpAdd, RecordOpUpdate, RecordOpRemove:
		return nil
	default:
		return ErrInvalidOptions
	}
}
