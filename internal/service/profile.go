package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/dtroode/subspace-wallet/internal/logger"
	"github.com/dtroode/subspace-wallet/internal/model"
)

// Profile holds the single human identity of the wallet.
// Mutators are serialized by mu.
type Profile struct {
	mu   sync.Mutex
	user *model.User
	key  model.Key

	chain   *KeyChain
	storage model.Storage
	logger  *logger.Logger
}

func NewProfile(chain *KeyChain, storage model.Storage, logger *logger.Logger) *Profile {
	return &Profile{
		chain:   chain,
		storage: storage,
		logger:  logger,
	}
}

// Exists reports whether a profile is loaded.
func (p *Profile) Exists() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.user != nil
}

// Create allocates a profile key and persists a new profile.
func (p *Profile) Create(ctx context.Context, opts model.ProfileOptions) (model.ProfileView, error) {
	return p.create(ctx, opts, nil)
}

// Restore creates a profile bound to imported key material.
func (p *Profile) Restore(ctx context.Context, opts model.ProfileOptions, pair model.KeyPair) (model.ProfileView, error) {
	if pair.Public == "" || pair.Private == "" {
		return model.ProfileView{}, fmt.Errorf("%w: both public and private material are required", model.ErrInvalidImport)
	}
	return p.create(ctx, opts, &pair)
}

func (p *Profile) create(ctx context.Context, opts model.ProfileOptions, pair *model.KeyPair) (model.ProfileView, error) {
	if err := opts.Validate(); err != nil {
		return model.ProfileView{}, fmt.Errorf("profile options: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.user != nil {
		return model.ProfileView{}, fmt.Errorf("profile: %w", model.ErrAlreadyExists)
	}

	id, err := p.chain.AddKey(ctx, model.KeyTypeProfile, opts.Name, opts.Email, opts.Passphrase, pair)
	if err != nil {
		return model.ProfileView{}, fmt.Errorf("failed to add profile key: %w", err)
	}

	key, err := p.chain.OpenKey(ctx, id, opts.Passphrase)
	if err != nil {
		return model.ProfileView{}, fmt.Errorf("failed to open profile key: %w", err)
	}

	p.user = &model.User{
		ID:         id,
		Name:       opts.Name,
		Email:      opts.Email,
		Passphrase: opts.Passphrase,
		CreatedAt:  model.NowMillis(),
	}
	p.key = key

	if err := p.save(ctx); err != nil {
		return model.ProfileView{}, fmt.Errorf("failed to save profile: %w", err)
	}

	p.logger.Info("Profile: profile created", "id", id)

	return p.view(), nil
}

// View returns the loaded profile or ErrNotFound.
func (p *Profile) View() (model.ProfileView, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.user == nil {
		return model.ProfileView{}, fmt.Errorf("profile: %w", model.ErrNotFound)
	}
	return p.view(), nil
}

// Save persists the user record.
func (p *Profile) Save(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.user == nil {
		return fmt.Errorf("profile: %w", model.ErrNotFound)
	}
	return p.save(ctx)
}

// Load reads the persisted user record and reopens its key.
// It reports false when no profile is persisted.
func (p *Profile) Load(ctx context.Context) (bool, error) {
	var user model.User
	found, err := getJSON(ctx, p.storage, model.StorageKeyUser, &user)
	if err != nil {
		return false, fmt.Errorf("failed to load profile: %w", err)
	}
	if !found {
		return false, nil
	}

	key, err := p.chain.OpenKey(ctx, user.ID, user.Passphrase)
	if err != nil {
		p.logger.Error("Profile: failed to open key of persisted profile",
			"id", user.ID,
			"error", err.Error())
		return false, fmt.Errorf("failed to open profile key: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.user = &user
	p.key = key

	return true, nil
}

// Clear removes the profile key and the persisted record.
func (p *Profile) Clear(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.user == nil {
		return fmt.Errorf("profile: %w", model.ErrNotFound)
	}

	if err := p.chain.RemoveKey(ctx, p.user.ID); err != nil {
		return fmt.Errorf("failed to remove profile key: %w", err)
	}

	id := p.user.ID
	p.user = nil
	p.key = model.Key{}

	if err := deleteEntry(ctx, p.storage, model.StorageKeyUser); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	p.logger.Info("Profile: profile cleared", "id", id)

	return nil
}

func (p *Profile) save(ctx context.Context) error {
	return putJSON(ctx, p.storage, model.StorageKeyUser, p.user)
}

func (p *Profile) view() model.ProfileView {
	return model.ProfileView{
		ID:         p.user.ID,
		Name:       p.user.Name,
		Email:      p.user.Email,
		Passphrase: p.user.Passphrase,
		CreatedAt:  p.user.CreatedAt,
		PublicKey:  p.key.Public,
		PrivateKey: p.key.Private,
		Handle:     p.key.Handle,
	}
}
