package model

import (
	"crypto"
	"encoding/json"
	"slices"
)

// ContractSchemaVersion is the current version of the persisted contract document.
const ContractSchemaVersion = 1

// ContractOptions are the negotiated terms of a storage contract.
// ID equals the id of the contract key.
type ContractOptions struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Passphrase        string `json:"passphrase"`
	TTL               int64  `json:"ttl"` // milliseconds
	ReplicationFactor int64  `json:"replicationFactor"`
	SpaceReserved     int64  `json:"spaceReserved"`
	CreatedAt         int64  `json:"createdAt"`
	ContractSig       string `json:"contractSig"`
}

// ContractState is the local usage accounting of a contract.
type ContractState struct {
	FundingTx   string    `json:"fundingTx"`
	SpaceUsed   int64     `json:"spaceUsed"`
	UpdatedAt   int64     `json:"updatedAt"`
	RecordIndex RecordSet `json:"recordIndex"`
}

// Clone returns a deep copy of the state.
func (s ContractState) Clone() ContractState {
	s.RecordIndex = s.RecordIndex.Clone()
	return s
}

// ContractBundle is a fully formed contract handed over by the negotiation flow.
type ContractBundle struct {
	Options ContractOptions
	State   ContractState
	Key     Key
}

// CreateContractOptions are the terms used to grow a contract locally.
type CreateContractOptions struct {
	Name              string
	Email             string
	Passphrase        string
	TTL               int64
	ReplicationFactor int64
	SpaceReserved     int64
}

// Validate checks the options needed to allocate a contract key.
func (o CreateContractOptions) Validate() error {
	if o.Passphrase == "" || o.ReplicationFactor <= 0 {
		return ErrInvalidOptions
	}
	return nil
}

// PublicContract is the network-shareable view of a contract.
type PublicContract struct {
	ID                string
	TTL               int64
	ReplicationFactor int64
	SpaceReserved     int64
	CreatedAt         int64
	ContractSig       string
}

// PrivateContract is the local view of a contract, including secret material.
type PrivateContract struct {
	ID                string
	Name              string
	Email             string
	Passphrase        string
	TTL               int64
	ReplicationFactor int64
	SpaceReserved     int64
	SpaceUsed         int64
	CreatedAt         int64
	UpdatedAt         int64
	ContractSig       string
	FundingTx         string
	RecordIndex       []string
	PublicKey         string
	PrivateKey        string
	Handle            crypto.Signer
}

// RecordSet is a set of record ids. It is encoded as a sorted JSON array.
type RecordSet map[string]struct{}

// NewRecordSet builds a set from ids, dropping duplicates.
func NewRecordSet(ids ...string) RecordSet {
	s := make(RecordSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id. Adding a present id is a no-op.
func (s RecordSet) Add(id string) {
	s[id] = struct{}{}
}

// Remove deletes id if present.
func (s RecordSet) Remove(id string) {
	delete(s, id)
}

// Has reports whether id is in the set.
func (s RecordSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members in ascending order.
func (s RecordSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Clone returns an independent copy.
func (s RecordSet) Clone() RecordSet {
	c := make(RecordSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

func (s RecordSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

func (s *RecordSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewRecordSet(ids...)
	return nil
}
