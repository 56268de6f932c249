package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dtroode/subspace-wallet/internal/logger"
	"github.com/dtroode/subspace-wallet/internal/model"
)

var errUnsupportedContractVersion = errors.New("unsupported contract schema version")

// contractDocument is the persisted form of the contract entry.
type contractDocument struct {
	Version int                   `json:"version"`
	Options model.ContractOptions `json:"options"`
	State   model.ContractState   `json:"state"`
}

// storedContract decodes every known revision of the contract entry.
// Revisions before the version field carried the contract id as txId.
type storedContract struct {
	Version int `json:"version"`
	Options struct {
		model.ContractOptions
		TxID string `json:"txId"`
	} `json:"options"`
	State model.ContractState `json:"state"`
}

// migrate upgrades a stored contract to the current schema. It reports
// whether anything changed.
func (s storedContract) migrate() (contractDocument, bool, error) {
	doc := contractDocument{
		Version: model.ContractSchemaVersion,
		Options: s.Options.ContractOptions,
		State:   s.State,
	}
	if doc.State.RecordIndex == nil {
		doc.State.RecordIndex = model.NewRecordSet()
	}

	switch s.Version {
	case model.ContractSchemaVersion:
		return doc, false, nil
	case 0:
		if doc.Options.ID == "" {
			doc.Options.ID = s.Options.TxID
		}
		if doc.Options.ID == "" {
			return contractDocument{}, false, errors.New("contract entry has neither id nor txId")
		}
		return doc, true, nil
	default:
		return contractDocument{}, false, fmt.Errorf("%w: %d", errUnsupportedContractVersion, s.Version)
	}
}

type loadedContract struct {
	options model.ContractOptions
	state   model.ContractState
	key     model.Key
}

// ContractLedger holds the storage contract of the wallet and its usage accounting.
// Mutators are serialized by mu.
type ContractLedger struct {
	mu       sync.Mutex
	contract *loadedContract

	chain   *KeyChain
	storage model.Storage
	logger  *logger.Logger
}

func NewContractLedger(chain *KeyChain, storage model.Storage, logger *logger.Logger) *ContractLedger {
	return &ContractLedger{
		chain:   chain,
		storage: storage,
		logger:  logger,
	}
}

// Exists reports whether a contract is loaded.
func (l *ContractLedger) Exists() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.contract != nil
}

// Create grows a contract locally, allocating a fresh contract key.
func (l *ContractLedger) Create(ctx context.Context, opts model.CreateContractOptions) (model.PrivateContract, error) {
	if err := opts.Validate(); err != nil {
		return model.PrivateContract{}, fmt.Errorf("contract options: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.contract != nil {
		return model.PrivateContract{}, fmt.Errorf("contract: %w", model.ErrAlreadyExists)
	}

	id, err := l.chain.AddKey(ctx, model.KeyTypeContract, opts.Name, opts.Email, opts.Passphrase, nil)
	if err != nil {
		return model.PrivateContract{}, fmt.Errorf("failed to add contract key: %w", err)
	}

	key, err := l.chain.OpenKey(ctx, id, opts.Passphrase)
	if err != nil {
		return model.PrivateContract{}, fmt.Errorf("failed to open contract key: %w", err)
	}

	now := model.NowMillis()
	l.contract = &loadedContract{
		options: model.ContractOptions{
			ID:                id,
			Name:              opts.Name,
			Email:             opts.Email,
			Passphrase:        opts.Passphrase,
			TTL:               opts.TTL,
			ReplicationFactor: opts.ReplicationFactor,
			SpaceReserved:     opts.SpaceReserved,
			CreatedAt:         now,
		},
		state: model.ContractState{
			UpdatedAt:   now,
			RecordIndex: model.NewRecordSet(),
		},
		key: key,
	}

	if err := l.save(ctx); err != nil {
		return model.PrivateContract{}, fmt.Errorf("failed to save contract: %w", err)
	}

	l.logger.Info("Contract: contract created", "id", id)

	return l.private(), nil
}

// Store adopts a contract assembled by the negotiation flow. The bundled key
// is imported into the key chain. contractSig and fundingTx are trusted as given.
func (l *ContractLedger) Store(ctx context.Context, bundle model.ContractBundle) (model.PublicContract, error) {
	if bundle.Key.Public == "" || bundle.Key.Private == "" {
		return model.PublicContract{}, fmt.Errorf("%w: contract key material is incomplete", model.ErrInvalidImport)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.contract != nil {
		return model.PublicContract{}, fmt.Errorf("contract: %w", model.ErrAlreadyExists)
	}

	options := bundle.Options
	keyID := l.chain.KeyID(bundle.Key.Public)
	if options.ID == "" {
		options.ID = keyID
	}
	if options.ID != keyID {
		return model.PublicContract{}, fmt.Errorf("%w: contract id %s does not match key %s", model.ErrInvalidImport, options.ID, keyID)
	}

	key, err := l.chain.ImportKey(ctx, model.KeyTypeContract, model.KeyPair{Public: bundle.Key.Public, Private: bundle.Key.Private}, options.Passphrase)
	if err != nil {
		return model.PublicContract{}, fmt.Errorf("failed to import contract key: %w", err)
	}

	state := bundle.State.Clone()
	if state.RecordIndex == nil {
		state.RecordIndex = model.NewRecordSet()
	}

	l.contract = &loadedContract{options: options, state: state, key: key}

	if err := l.save(ctx); err != nil {
		return model.PublicContract{}, fmt.Errorf("failed to save contract: %w", err)
	}

	l.logger.Info("Contract: contract stored", "id", options.ID)

	return l.public(), nil
}

// AddRecord indexes id and charges size times the replication factor.
// Capacity is not checked against spaceReserved.
func (l *ContractLedger) AddRecord(ctx context.Context, id string, size int64) (model.ContractState, error) {
	return l.mutate(ctx, func(c *loadedContract) {
		c.state.RecordIndex.Add(id)
		c.state.SpaceUsed += size * c.options.ReplicationFactor
	})
}

// UpdateRecord applies a signed size delta. It does not require id to be indexed.
func (l *ContractLedger) UpdateRecord(ctx context.Context, _ string, sizeDelta int64) (model.ContractState, error) {
	return l.mutate(ctx, func(c *loadedContract) {
		c.state.SpaceUsed += sizeDelta * c.options.ReplicationFactor
	})
}

// RemoveRecord unindexes id and releases size times the replication factor.
// spaceUsed is not clamped and may go negative.
func (l *ContractLedger) RemoveRecord(ctx context.Context, id string, size int64) (model.ContractState, error) {
	return l.mutate(ctx, func(c *loadedContract) {
		c.state.RecordIndex.Remove(id)
		c.state.SpaceUsed -= size * c.options.ReplicationFactor
	})
}

func (l *ContractLedger) mutate(ctx context.Context, apply func(c *loadedContract)) (model.ContractState, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.contract == nil {
		return model.ContractState{}, fmt.Errorf("contract: %w", model.ErrNotFound)
	}

	apply(l.contract)
	l.contract.state.UpdatedAt = model.NowMillis()

	if err := l.save(ctx); err != nil {
		return model.ContractState{}, fmt.Errorf("failed to save contract: %w", err)
	}

	return l.contract.state.Clone(), nil
}

// Public returns the network-shareable view of the loaded contract.
func (l *ContractLedger) Public() (model.PublicContract, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.contract == nil {
		return model.PublicContract{}, fmt.Errorf("contract: %w", model.ErrNotFound)
	}
	return l.public(), nil
}

// Private returns the local view of the loaded contract, key material included.
func (l *ContractLedger) Private() (model.PrivateContract, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.contract == nil {
		return model.PrivateContract{}, fmt.Errorf("contract: %w", model.ErrNotFound)
	}
	return l.private(), nil
}

// Save persists options and state of the loaded contract.
func (l *ContractLedger) Save(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.contract == nil {
		return fmt.Errorf("contract: %w", model.ErrNotFound)
	}
	return l.save(ctx)
}

// Load reads the persisted contract, migrating older revisions, and reopens
// its key. It reports false when no contract is persisted.
func (l *ContractLedger) Load(ctx context.Context) (bool, error) {
	var stored storedContract
	found, err := getJSON(ctx, l.storage, model.StorageKeyContract, &stored)
	if err != nil {
		return false, fmt.Errorf("failed to load contract: %w", err)
	}
	if !found {
		return false, nil
	}

	doc, migrated, err := stored.migrate()
	if err != nil {
		l.logger.Error("Contract: failed to migrate persisted contract",
			"version", stored.Version,
			"error", err.Error())
		return false, fmt.Errorf("failed to migrate contract: %w", err)
	}

	key, err := l.chain.OpenKey(ctx, doc.Options.ID, doc.Options.Passphrase)
	if err != nil {
		return false, fmt.Errorf("failed to open contract key: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.contract = &loadedContract{options: doc.Options, state: doc.State, key: key}

	if migrated {
		if err := l.save(ctx); err != nil {
			return false, fmt.Errorf("failed to save migrated contract: %w", err)
		}
		l.logger.Info("Contract: migrated persisted contract",
			"id", doc.Options.ID,
			"from_version", stored.Version,
			"to_version", model.ContractSchemaVersion)
	}

	return true, nil
}

// Clear removes the contract key and the persisted entry.
func (l *ContractLedger) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.contract == nil {
		return fmt.Errorf("contract: %w", model.ErrNotFound)
	}

	id := l.contract.options.ID
	if err := l.chain.RemoveKey(ctx, id); err != nil {
		return fmt.Errorf("failed to remove contract key: %w", err)
	}

	l.contract = nil

	if err := deleteEntry(ctx, l.storage, model.StorageKeyContract); err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}

	l.logger.Info("Contract: contract cleared", "id", id)

	return nil
}

func (l *ContractLedger) save(ctx context.Context) error {
	return putJSON(ctx, l.storage, model.StorageKeyContract, contractDocument{
		Version: model.ContractSchemaVersion,
		Options: l.contract.options,
		State:   l.contract.state,
	})
}

func (l *ContractLedger) public() model.PublicContract {
	o := l.contract.options
	return model.PublicContract{
		ID:                o.ID,
		TTL:               o.TTL,
		ReplicationFactor: o.ReplicationFactor,
		SpaceReserved:     o.SpaceReserved,
		CreatedAt:         o.CreatedAt,
		ContractSig:       o.ContractSig,
	}
}

func (l *ContractLedger) private() model.PrivateContract {
	o, s, k := l.contract.options, l.contract.state, l.contract.key
	return model.PrivateContract{
		ID:                o.ID,
		Name:              o.Name,
		Email:             o.Email,
		Passphrase:        o.Passphrase,
		TTL:               o.TTL,
		ReplicationFactor: o.ReplicationFactor,
		SpaceReserved:     o.SpaceReserved,
		SpaceUsed:         s.SpaceUsed,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
		ContractSig:       o.ContractSig,
		FundingTx:         s.FundingTx,
		RecordIndex:       s.RecordIndex.IDs(),
		PublicKey:         k.Public,
		PrivateKey:        k.Private,
		Handle:            k.Handle,
	}
}
