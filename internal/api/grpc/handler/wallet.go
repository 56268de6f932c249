package handler

import (
	"context"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/subspace-wallet/internal/api/grpc/walletv1"
	"github.com/dtroode/subspace-wallet/internal/logger"
	"github.com/dtroode/subspace-wallet/internal/model"
)

// WalletService is the wallet behaviour exposed over gRPC.
type WalletService interface {
	CreateProfile(ctx context.Context, opts model.ProfileOptions) (model.ProfileView, error)
	RestoreProfile(ctx context.Context, opts model.ProfileOptions, phrase string) (model.ProfileView, error)
	Unlock(ctx context.Context, passphrase string) (model.Session, error)
	Profile() (model.ProfileView, error)
	PublicContract() (model.PublicContract, error)
	PrivateContract() (model.PrivateContract, error)
	StoreContract(ctx context.Context, bundle model.ContractBundle) (model.PublicContract, error)
	ApplyRecordChange(ctx context.Context, change model.RecordChange) (model.ContractState, error)
	Clear(ctx context.Context) error
}

var _ walletv1.WalletServer = (*Wallet)(nil)

// Wallet handles the wallet.v1.Wallet gRPC endpoints.
type Wallet struct {
	walletService  WalletService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewWallet(walletService WalletService, contextManager model.ContextManager, logger *logger.Logger) *Wallet {
	return &Wallet{
		walletService:  walletService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// CreateProfile creates the wallet profile. It only succeeds while the
// wallet holds no profile, for example after Clear.
func (h *Wallet) CreateProfile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in createProfileRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, handleError(err)
	}

	view, err := h.walletService.CreateProfile(ctx, model.ProfileOptions{
		Name:       in.Name,
		Email:      in.Email,
		Passphrase: in.Passphrase,
	})
	if err != nil {
		h.logger.Warn("Wallet handler: create profile failed", "error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Wallet handler: profile created", "profile_id", view.ID)

	return h.respond(toProfileResponse(view))
}

// RestoreProfile recreates the wallet profile from its recovery phrase.
func (h *Wallet) RestoreProfile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in restoreProfileRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, handleError(err)
	}
	if in.RecoveryPhrase == "" {
		return nil, handleError(model.ErrInvalidImport)
	}

	view, err := h.walletService.RestoreProfile(ctx, model.ProfileOptions{
		Name:       in.Name,
		Email:      in.Email,
		Passphrase: in.Passphrase,
	}, in.RecoveryPhrase)
	if err != nil {
		h.logger.Warn("Wallet handler: restore profile failed", "error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Wallet handler: profile restored", "profile_id", view.ID)

	return h.respond(toProfileResponse(view))
}

// Unlock checks the passphrase and returns an access token.
func (h *Wallet) Unlock(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in unlockRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, handleError(err)
	}
	if in.Passphrase == "" {
		return nil, handleError(model.ErrInvalidOptions)
	}

	session, err := h.walletService.Unlock(ctx, in.Passphrase)
	if err != nil {
		h.logger.Warn("Wallet handler: unlock failed", "error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Wallet handler: wallet unlocked", "profile_id", session.ProfileID)

	return h.respond(sessionResponse{
		ProfileID:   session.ProfileID,
		AccessToken: session.AccessToken,
		ExpiresAt:   session.ExpiresAt,
	})
}

func (h *Wallet) GetProfile(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	view, err := h.walletService.Profile()
	if err != nil {
		return nil, handleError(err)
	}

	return h.respond(toProfileResponse(view))
}

func (h *Wallet) GetPublicContract(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	contract, err := h.walletService.PublicContract()
	if err != nil {
		return nil, handleError(err)
	}
	return h.respond(toPublicContractResponse(contract))
}

func (h *Wallet) GetPrivateContract(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	contract, err := h.walletService.PrivateContract()
	if err != nil {
		return nil, handleError(err)
	}

	profileID, _ := h.contextManager.GetProfileIDFromContext(ctx)
	h.logger.Debug("Wallet handler: private contract read",
		"profile_id", profileID,
		"contract_id", contract.ID)

	return h.respond(toPrivateContractResponse(contract))
}

// StoreContract adopts a contract bundle produced by the negotiation flow.
func (h *Wallet) StoreContract(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in storeContractRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, handleError(err)
	}

	contract, err := h.walletService.StoreContract(ctx, model.ContractBundle{
		Options: in.Options,
		State:   in.State,
		Key: model.Key{
			Type:    model.KeyTypeContract,
			Public:  in.Key.Public,
			Private: in.Key.Private,
		},
	})
	if err != nil {
		h.logger.Error("Wallet handler: store contract failed", "error", err.Error())
		return nil, handleError(err)
	}

	profileID, _ := h.contextManager.GetProfileIDFromContext(ctx)
	h.logger.Info("Wallet handler: contract stored",
		"profile_id", profileID,
		"contract_id", contract.ID)

	return h.respond(toPublicContractResponse(contract))
}

func (h *Wallet) AddRecord(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.applyRecordChange(ctx, model.RecordOpAdd, req)
}

func (h *Wallet) UpdateRecord(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.applyRecordChange(ctx, model.RecordOpUpdate, req)
}

func (h *Wallet) RemoveRecord(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.applyRecordChange(ctx, model.RecordOpRemove, req)
}

func (h *Wallet) applyRecordChange(ctx context.Context, op model.RecordOp, req *structpb.Struct) (*structpb.Struct, error) {
	var in recordRequest
	if err := fromStruct(req, &in); err != nil {
		return nil, handleError(err)
	}

	change := model.RecordChange{Op: op, ID: in.ID, Size: in.Size}
	if err := change.Validate(); err != nil {
		return nil, handleError(err)
	}

	state, err := h.walletService.ApplyRecordChange(ctx, change)
	if err != nil {
		return nil, handleError(err)
	}

	profileID, _ := h.contextManager.GetProfileIDFromContext(ctx)
	h.logger.Debug("Wallet handler: record change applied",
		"profile_id", profileID,
		"op", op,
		"record", in.ID,
		"space_used", state.SpaceUsed)

	return h.respond(usageResponse{
		SpaceUsed: state.SpaceUsed,
		Records:   len(state.RecordIndex),
		UpdatedAt: state.UpdatedAt,
	})
}

// Clear wipes the profile, the contract and every key.
func (h *Wallet) Clear(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	profileID, _ := h.contextManager.GetProfileIDFromContext(ctx)

	if err := h.walletService.Clear(ctx); err != nil {
		h.logger.Error("Wallet handler: clear failed",
			"profile_id", profileID,
			"error", err.Error())
		return nil, handleError(err)
	}

	h.logger.Info("Wallet handler: wallet cleared", "profile_id", profileID)

	return &emptypb.Empty{}, nil
}

func (h *Wallet) respond(v any) (*structpb.Struct, error) {
	s, err := toStruct(v)
	if err != nil {
		h.logger.Error("Wallet handler: failed to encode response", "error", err.Error())
		return nil, handleError(err)
	}
	return s, nil
}
