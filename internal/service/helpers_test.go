package service

import (
	"testing"

	"github.com/dtroode/subspace-wallet/internal/keyprovider"
	"github.com/dtroode/subspace-wallet/internal/model"
	"github.com/dtroode/subspace-wallet/internal/testutil"
)

// cheap Argon2 parameters keep key operations fast in tests
var testKDF = keyprovider.KDFParams{Time: 1, MemKiB: 64, Threads: 1}

func newTestProvider() *keyprovider.Ed25519 {
	return keyprovider.New(testKDF)
}

func newTestChain(t *testing.T, storage model.Storage) *KeyChain {
	t.Helper()
	return NewKeyChain(newTestProvider(), storage, nil, testutil.MakeNoopLogger())
}

var testProfileOptions = model.ProfileOptions{
	Name:       "alice",
	Email:      "alice@example.com",
	Passphrase: "correct horse",
}

var testContractOptions = model.CreateContractOptions{
	Name:              "alice",
	Email:             "alice@example.com",
	Passphrase:        "contract-pass",
	TTL:               86_400_000,
	ReplicationFactor: 3,
	SpaceReserved:     1 << 30,
}
