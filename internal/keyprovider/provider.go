// Package keyprovider implements model.KeyProvider with Ed25519 keypairs
// whose seeds are sealed under a passphrase with Argon2id and XChaCha20-Poly1305.
package keyprovider

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/blake2b"

	"github.com/dtroode/subspace-wallet/internal/model"
)

var _ model.KeyProvider = (*Ed25519)(nil)

// Ed25519 is the default key provider.
type Ed25519 struct {
	kdf KDFParams
}

// New creates an Ed25519 provider sealing private keys with the given KDF cost.
func New(kdf KDFParams) *Ed25519 {
	return &Ed25519{kdf: kdf.normalized()}
}

// GenerateKeys creates a random keypair. name and email are accepted for
// interface compatibility with providers that embed identity in the key.
func (p *Ed25519) GenerateKeys(_, _, passphrase string) (model.KeyPair, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return model.KeyPair{}, fmt.Errorf("%w: %v", model.ErrGeneration, err)
	}
	defer zeroBytes(seed)

	return p.sealSeed(seed, passphrase)
}

// Hash returns the base58 BLAKE2b-256 digest of public key material.
func (p *Ed25519) Hash(public string) string {
	h := blake2b.Sum256([]byte(public))
	return base58.Encode(h[:])
}

// OpenPrivateKey decrypts a sealed seed and rebuilds the private key.
func (p *Ed25519) OpenPrivateKey(private, passphrase string) (crypto.Signer, error) {
	seed, err := Open(passphrase, []byte(private))
	if err != nil {
		if errors.Is(err, errAuthFailed) || errors.Is(err, errInvalid) {
			return nil, fmt.Errorf("%w: %v", model.ErrWrongPassphrase, err)
		}
		return nil, err
	}
	defer zeroBytes(seed)

	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: unexpected seed size %d", model.ErrWrongPassphrase, len(seed))
	}
	return ed25519.NewKeyFromSeed(seed), nil
}

// RecoveryPhrase encodes the seed of an opened key as a 24-word BIP-39 mnemonic.
func (p *Ed25519) RecoveryPhrase(handle crypto.Signer) (string, error) {
	priv, ok := handle.(ed25519.PrivateKey)
	if !ok || len(priv) != ed25519.PrivateKeySize {
		return "", fmt.Errorf("unsupported private key type %T", handle)
	}
	phrase, err := bip39.NewMnemonic(priv.Seed())
	if err != nil {
		return "", fmt.Errorf("failed to encode mnemonic: %w", err)
	}
	return phrase, nil
}

// KeysFromPhrase rebuilds the keypair encoded by RecoveryPhrase.
func (p *Ed25519) KeysFromPhrase(phrase, passphrase string) (model.KeyPair, error) {
	seed, err := bip39.EntropyFromMnemonic(phrase)
	if err != nil {
		return model.KeyPair{}, fmt.Errorf("%w: invalid mnemonic: %v", model.ErrInvalidImport, err)
	}
	defer zeroBytes(seed)

	if len(seed) != ed25519.SeedSize {
		return model.KeyPair{}, fmt.Errorf("%w: mnemonic encodes %d bytes", model.ErrInvalidImport, len(seed))
	}
	return p.sealSeed(seed, passphrase)
}

func (p *Ed25519) sealSeed(seed []byte, passphrase string) (model.KeyPair, error) {
	if passphrase == "" {
		return model.KeyPair{}, fmt.Errorf("%w: passphrase is required", model.ErrGeneration)
	}

	priv := ed25519.NewKeyFromSeed(seed)
	defer zeroBytes(priv)
	pub := priv.Public().(ed25519.PublicKey)

	sealed, err := Seal(p.kdf, passphrase, seed)
	if err != nil {
		return model.KeyPair{}, fmt.Errorf("%w: %v", model.ErrGeneration, err)
	}

	return model.KeyPair{
		Public:  base58.Encode(pub),
		Private: string(sealed),
	}, nil
}
