package keyprovider

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	envelopeVersion = 1
	envelopeKDF     = "argon2id"
	saltSize        = 16

	// Upper bounds for KDF costs read back from an envelope.
	maxKDFTime    = 64
	maxKDFMemKiB  = 1 << 20
	maxKDFThreads = 64

	maxCachedKeys = 16
)

var (
	errAuthFailed = errors.New("envelope authentication failed")
	errInvalid    = errors.New("envelope is invalid")
)

// KDFParams are the Argon2id cost parameters used when sealing.
type KDFParams struct {
	Time    uint32
	MemKiB  uint32
	Threads uint8
}

// DefaultKDFParams are used when no parameters are configured.
var DefaultKDFParams = KDFParams{Time: 2, MemKiB: 64 * 1024, Threads: 1}

func (p KDFParams) normalized() KDFParams {
	if p.Time == 0 {
		p.Time = DefaultKDFParams.Time
	}
	if p.MemKiB == 0 {
		p.MemKiB = DefaultKDFParams.MemKiB
	}
	if p.Threads == 0 {
		p.Threads = DefaultKDFParams.Threads
	}
	return p
}

func (p KDFParams) valid() bool {
	return p.Time > 0 && p.Time <= maxKDFTime &&
		p.MemKiB > 0 && p.MemKiB <= maxKDFMemKiB &&
		p.Threads > 0 && p.Threads <= maxKDFThreads
}

// Envelope is a passphrase-sealed secret. The KDF parameters travel with
// the ciphertext so that opening does not depend on current configuration.
type Envelope struct {
	Version     uint32 `json:"version"`
	KDF         string `json:"kdf"`
	KDFTime     uint32 `json:"kdf_time"`
	KDFMemoryKB uint32 `json:"kdf_memory_kb"`
	KDFThreads  uint8  `json:"kdf_threads"`
	Salt        []byte `json:"salt"`
	Nonce       []byte `json:"nonce"`
	Ciphertext  []byte `json:"ciphertext"`
}

func (e Envelope) params() KDFParams {
	return KDFParams{Time: e.KDFTime, MemKiB: e.KDFMemoryKB, Threads: e.KDFThreads}
}

var deriveKey = func(passphrase string, salt []byte, p KDFParams) []byte {
	return argon2.IDKey([]byte(passphrase), salt, p.Time, p.MemKiB, p.Threads, chacha20poly1305.KeySize)
}

// Seal encrypts plaintext under passphrase and returns the JSON envelope.
func Seal(params KDFParams, passphrase string, plaintext []byte) ([]byte, error) {
	params = params.normalized()
	if !params.valid() {
		return nil, fmt.Errorf("kdf parameters out of range: %+v", params)
	}

	salt, err := newSalt()
	if err != nil {
		return nil, err
	}
	key := deriveKey(passphrase, salt, params)
	defer zeroBytes(key)

	return sealWithKey(key, salt, params, plaintext)
}

// Open decrypts a JSON envelope produced by Seal.
func Open(passphrase string, data []byte) ([]byte, error) {
	env, err := parseEnvelope(data)
	if err != nil {
		return nil, err
	}

	key := deriveKey(passphrase, env.Salt, env.params())
	defer zeroBytes(key)

	return openWithKey(key, env)
}

// Sealer seals many values under one passphrase. The key is derived once
// for the sealer's own salt; keys for other salts met while opening are
// cached after the first derivation.
type Sealer struct {
	params     KDFParams
	passphrase string
	salt       []byte

	mu   sync.Mutex
	keys map[sealerCacheKey][]byte
}

type sealerCacheKey struct {
	salt   string
	params KDFParams
}

func NewSealer(params KDFParams, passphrase string) (*Sealer, error) {
	params = params.normalized()
	if !params.valid() {
		return nil, fmt.Errorf("kdf parameters out of range: %+v", params)
	}
	salt, err := newSalt()
	if err != nil {
		return nil, err
	}

	s := &Sealer{
		params:     params,
		passphrase: passphrase,
		salt:       salt,
		keys:       make(map[sealerCacheKey][]byte),
	}
	s.keys[sealerCacheKey{salt: string(salt), params: params}] = deriveKey(passphrase, salt, params)
	return s, nil
}

func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	return sealWithKey(s.key(s.salt, s.params), s.salt, s.params, plaintext)
}

func (s *Sealer) Open(data []byte) ([]byte, error) {
	env, err := parseEnvelope(data)
	if err != nil {
		return nil, err
	}
	return openWithKey(s.key(env.Salt, env.params()), env)
}

func (s *Sealer) key(salt []byte, params KDFParams) []byte {
	ck := sealerCacheKey{salt: string(salt), params: params}

	s.mu.Lock()
	defer s.mu.Unlock()

	if key, ok := s.keys[ck]; ok {
		return key
	}
	// Foreign salts come from entries sealed by earlier processes.
	if len(s.keys) >= maxCachedKeys {
		own := sealerCacheKey{salt: string(s.salt), params: s.params}
		ownKey := s.keys[own]
		s.keys = map[sealerCacheKey][]byte{own: ownKey}
	}
	key := deriveKey(s.passphrase, salt, params)
	s.keys[ck] = key
	return key
}

func newSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to read salt: %w", err)
	}
	return salt, nil
}

func parseEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, errInvalid
	}
	if env.Version != envelopeVersion || env.KDF != envelopeKDF || !env.params().valid() {
		return Envelope{}, errInvalid
	}
	if len(env.Salt) != saltSize || len(env.Nonce) != chacha20poly1305.NonceSizeX {
		return Envelope{}, errInvalid
	}
	return env, nil
}

func sealWithKey(key, salt []byte, params KDFParams, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to read nonce: %w", err)
	}

	env := Envelope{
		Version:     envelopeVersion,
		KDF:         envelopeKDF,
		KDFTime:     params.Time,
		KDFMemoryKB: params.MemKiB,
		KDFThreads:  params.Threads,
		Salt:        salt,
		Nonce:       nonce,
		Ciphertext:  aead.Seal(nil, nonce, plaintext, nil),
	}
	return json.Marshal(env)
}

func openWithKey(key []byte, env Envelope) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	plaintext, err := aead.Open(nil, env.Nonce, env.Ciphertext, nil)
	if err != nil {
		return nil, errAuthFailed
	}
	return plaintext, nil
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
