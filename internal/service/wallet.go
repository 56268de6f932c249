package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dtroode/subspace-wallet/internal/logger"
	"github.com/dtroode/subspace-wallet/internal/model"
)

// Wallet composes the key chain, the profile and the contract ledger over one storage.
type Wallet struct {
	chain    *KeyChain
	profile  *Profile
	contract *ContractLedger

	provider model.KeyProvider
	tokens   model.TokenManager
	metrics  model.WalletMetrics
	logger   *logger.Logger
}

func NewWallet(
	storage model.Storage,
	provider model.KeyProvider,
	tokens model.TokenManager,
	metrics model.WalletMetrics,
	logger *logger.Logger,
) *Wallet {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	chain := NewKeyChain(provider, storage, metrics, logger)
	return &Wallet{
		chain:    chain,
		profile:  NewProfile(chain, storage, logger),
		contract: NewContractLedger(chain, storage, logger),
		provider: provider,
		tokens:   tokens,
		metrics:  metrics,
		logger:   logger,
	}
}

// KeyChain exposes the underlying key chain.
func (w *Wallet) KeyChain() *KeyChain {
	return w.chain
}

// Init loads persisted state and bootstraps a profile from opts when none was persisted.
// Profile and contract are loaded concurrently once the key chain is loaded.
func (w *Wallet) Init(ctx context.Context, opts model.ProfileOptions) (model.ProfileView, error) {
	w.logger.Debug("Wallet service: initializing")

	if err := w.chain.Load(ctx); err != nil {
		return model.ProfileView{}, err
	}

	var profileFound, contractFound bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profileFound, err = w.profile.Load(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		contractFound, err = w.contract.Load(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		w.logger.Error("Wallet service: failed to load wallet", "error", err.Error())
		return model.ProfileView{}, err
	}

	if contractFound {
		w.reportUsage()
	}

	if profileFound {
		w.logger.Info("Wallet service: wallet loaded", "contract", contractFound)
		return w.profile.View()
	}

	view, err := w.profile.Create(ctx, opts)
	if err != nil {
		w.logger.Error("Wallet service: failed to bootstrap profile", "error", err.Error())
		return model.ProfileView{}, fmt.Errorf("failed to bootstrap profile: %w", err)
	}

	w.logger.Info("Wallet service: profile bootstrapped", "id", view.ID)

	return view, nil
}

// CreateProfile creates the wallet profile. It fails with ErrAlreadyExists when one is present.
func (w *Wallet) CreateProfile(ctx context.Context, opts model.ProfileOptions) (model.ProfileView, error) {
	if w.profile.Exists() {
		return model.ProfileView{}, fmt.Errorf("profile: %w", model.ErrAlreadyExists)
	}
	return w.profile.Create(ctx, opts)
}

// RestoreProfile creates the wallet profile from a recovery phrase.
func (w *Wallet) RestoreProfile(ctx context.Context, opts model.ProfileOptions, phrase string) (model.ProfileView, error) {
	if w.profile.Exists() {
		return model.ProfileView{}, fmt.Errorf("profile: %w", model.ErrAlreadyExists)
	}
	if err := opts.Validate(); err != nil {
		return model.ProfileView{}, fmt.Errorf("profile options: %w", err)
	}

	pair, err := w.provider.KeysFromPhrase(phrase, opts.Passphrase)
	if err != nil {
		w.logger.Warn("Wallet service: failed to restore keys from phrase")
		return model.ProfileView{}, fmt.Errorf("failed to restore keys: %w", err)
	}

	view, err := w.profile.Restore(ctx, opts, pair)
	if err != nil {
		return model.ProfileView{}, err
	}

	w.logger.Info("Wallet service: profile restored", "id", view.ID)

	return view, nil
}

// Profile returns the loaded profile.
func (w *Wallet) Profile() (model.ProfileView, error) {
	return w.profile.View()
}

// RecoveryPhrase returns the mnemonic of the opened profile key.
func (w *Wallet) RecoveryPhrase() (string, error) {
	view, err := w.profile.View()
	if err != nil {
		return "", err
	}
	if view.Handle == nil {
		return "", fmt.Errorf("profile key %s is not open: %w", view.ID, model.ErrWrongPassphrase)
	}

	phrase, err := w.provider.RecoveryPhrase(view.Handle)
	if err != nil {
		return "", fmt.Errorf("failed to build recovery phrase: %w", err)
	}
	return phrase, nil
}

// Unlock checks passphrase against the profile key and issues an access token.
func (w *Wallet) Unlock(ctx context.Context, passphrase string) (model.Session, error) {
	view, err := w.profile.View()
	if err != nil {
		return model.Session{}, err
	}

	if _, err := w.chain.OpenKey(ctx, view.ID, passphrase); err != nil {
		w.logger.Warn("Wallet service: unlock rejected", "id", view.ID)
		return model.Session{}, err
	}

	token, expiresAt, err := w.tokens.GenerateAccessToken(view.ID)
	if err != nil {
		w.logger.Error("Wallet service: failed to issue access token",
			"id", view.ID,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	return model.Session{
		ProfileID:   view.ID,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// Authorize resolves an access token to the id of the loaded profile.
func (w *Wallet) Authorize(token string) (string, error) {
	profileID, err := w.tokens.ParseAccessToken(token)
	if err != nil {
		return "", err
	}

	view, err := w.profile.View()
	if err != nil {
		return "", err
	}
	if view.ID != profileID {
		return "", model.ErrTokenMismatch
	}
	return profileID, nil
}

// CreateContract grows a contract locally.
func (w *Wallet) CreateContract(ctx context.Context, opts model.CreateContractOptions) (model.PrivateContract, error) {
	contract, err := w.contract.Create(ctx, opts)
	if err != nil {
		return model.PrivateContract{}, err
	}
	w.metrics.ContractUsage(contract.SpaceUsed, len(contract.RecordIndex))
	return contract, nil
}

// StoreContract adopts a contract produced by the negotiation flow.
func (w *Wallet) StoreContract(ctx context.Context, bundle model.ContractBundle) (model.PublicContract, error) {
	contract, err := w.contract.Store(ctx, bundle)
	if err != nil {
		w.logger.Error("Wallet service: failed to store contract", "error", err.Error())
		return model.PublicContract{}, err
	}
	w.reportUsage()
	return contract, nil
}

// PublicContract returns the network-shareable view of the contract.
func (w *Wallet) PublicContract() (model.PublicContract, error) {
	return w.contract.Public()
}

// PrivateContract returns the local view of the contract.
func (w *Wallet) PrivateContract() (model.PrivateContract, error) {
	return w.contract.Private()
}

func (w *Wallet) AddRecord(ctx context.Context, id string, size int64) error {
	_, err := w.ApplyRecordChange(ctx, model.RecordChange{Op: model.RecordOpAdd, ID: id, Size: size})
	return err
}

func (w *Wallet) UpdateRecord(ctx context.Context, id string, sizeDelta int64) error {
	_, err := w.ApplyRecordChange(ctx, model.RecordChange{Op: model.RecordOpUpdate, ID: id, Size: sizeDelta})
	return err
}

func (w *Wallet) RemoveRecord(ctx context.Context, id string, size int64) error {
	_, err := w.ApplyRecordChange(ctx, model.RecordChange{Op: model.RecordOpRemove, ID: id, Size: size})
	return err
}

// ApplyRecordChange applies one record mutation to the loaded contract and
// returns the resulting state.
func (w *Wallet) ApplyRecordChange(ctx context.Context, change model.RecordChange) (model.ContractState, error) {
	var (
		state model.ContractState
		err   error
	)
	switch change.Op {
	case model.RecordOpAdd:
		state, err = w.contract.AddRecord(ctx, change.ID, change.Size)
	case model.RecordOpUpdate:
		state, err = w.contract.UpdateRecord(ctx, change.ID, change.Size)
	case model.RecordOpRemove:
		state, err = w.contract.RemoveRecord(ctx, change.ID, change.Size)
	default:
		return model.ContractState{}, fmt.Errorf("record op %q: %w", change.Op, model.ErrInvalidOptions)
	}
	if err != nil {
		w.logger.Error("Wallet service: failed to apply record change",
			"op", change.Op,
			"record", change.ID,
			"error", err.Error())
		return model.ContractState{}, err
	}

	w.metrics.RecordOperation(change.Op)
	w.metrics.ContractUsage(state.SpaceUsed, len(state.RecordIndex))

	return state, nil
}

// Clear removes profile and contract concurrently, then the key chain.
// Absent entities are skipped.
func (w *Wallet) Clear(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	if w.profile.Exists() {
		g.Go(func() error { return w.profile.Clear(gctx) })
	}
	if w.contract.Exists() {
		g.Go(func() error { return w.contract.Clear(gctx) })
	}
	if err := g.Wait(); err != nil {
		w.logger.Error("Wallet service: failed to clear wallet", "error", err.Error())
		return err
	}

	if err := w.chain.Clear(ctx); err != nil {
		w.logger.Error("Wallet service: failed to clear key chain", "error", err.Error())
		return err
	}

	w.metrics.ContractUsage(0, 0)
	w.logger.Info("Wallet service: wallet cleared")

	return nil
}

func (w *Wallet) reportUsage() {
	contract, err := w.contract.Private()
	if err != nil {
		return
	}
	w.metrics.ContractUsage(contract.SpaceUsed, len(contract.RecordIndex))
}
