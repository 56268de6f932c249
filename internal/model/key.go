package model

import "crypto"

// KeyType tags which entity owns a key.
type KeyType string

const (
	// KeyTypeProfile marks the key bound to the wallet profile.
	KeyTypeProfile KeyType = "profile"
	// KeyTypeContract marks the key bound to a storage contract.
	KeyTypeContract KeyType = "contract"
)

// Key is a keypair held by the key chain.
//
// ID is always derived from Public by the key provider and is never
// supplied by callers. Handle is the decrypted private key; it only exists
// after the key was opened and is never persisted.
type Key struct {
	ID        string        `json:"id"`
	Type      KeyType       `json:"type"`
	CreatedAt int64         `json:"createdAt"`
	Public    string        `json:"public"`
	Private   string        `json:"private"`
	Handle    crypto.Signer `json:"-"`
}

// IsOpen reports whether the key carries a decrypted handle.
func (k Key) IsOpen() bool {
	return k.Handle != nil
}

// KeyPair is public and private key material as produced by a KeyProvider.
type KeyPair struct {
	Public  string
	Private string
}

// KeyProvider generates, identifies and decrypts keypairs.
type KeyProvider interface {
	// GenerateKeys creates a fresh keypair whose private material is sealed under passphrase.
	GenerateKeys(name, email, passphrase string) (KeyPair, error)
	// Hash derives the identifier of public key material.
	Hash(public string) string
	// OpenPrivateKey decrypts private material. Fails with ErrWrongPassphrase.
	OpenPrivateKey(private, passphrase string) (crypto.Signer, error)
	// RecoveryPhrase encodes an opened private key as a mnemonic.
	RecoveryPhrase(handle crypto.Signer) (string, error)
	// KeysFromPhrase rebuilds a keypair from a mnemonic, sealing it under passphrase.
	KeysFromPhrase(phrase, passphrase string) (KeyPair, error)
}
