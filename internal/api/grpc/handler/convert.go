package handler

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/subspace-wallet/internal/model"
)

type createProfileRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Passphrase string `json:"passphrase"`
}

type restoreProfileRequest struct {
	createProfileRequest
	RecoveryPhrase string `json:"recoveryPhrase"`
}

type unlockRequest struct {
	Passphrase string `json:"passphrase"`
}

type sessionResponse struct {
	ProfileID   string `json:"profileId"`
	AccessToken string `json:"accessToken"`
	ExpiresAt   int64  `json:"expiresAt"`
}

type profileResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"createdAt"`
	PublicKey string `json:"publicKey"`
}

type publicContractResponse struct {
	ID                string `json:"id"`
	TTL               int64  `json:"ttl"`
	ReplicationFactor int64  `json:"replicationFactor"`
	SpaceReserved     int64  `json:"spaceReserved"`
	CreatedAt         int64  `json:"createdAt"`
	ContractSig       string `json:"contractSig"`
}

type privateContractResponse struct {
	publicContractResponse
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Passphrase  string   `json:"passphrase"`
	SpaceUsed   int64    `json:"spaceUsed"`
	UpdatedAt   int64    `json:"updatedAt"`
	FundingTx   string   `json:"fundingTx"`
	RecordIndex []string `json:"recordIndex"`
	PublicKey   string   `json:"publicKey"`
	PrivateKey  string   `json:"privateKey"`
}

type storeContractRequest struct {
	Options model.ContractOptions `json:"options"`
	State   model.ContractState   `json:"state"`
	Key     struct {
		Public  string `json:"public"`
		Private string `json:"private"`
	} `json:"key"`
}

type recordRequest struct {
	ID   string `json:"id"`
	Size int64  `json:"size"`
}

type usageResponse struct {
	SpaceUsed int64 `json:"spaceUsed"`
	Records   int   `json:"records"`
	UpdatedAt int64 `json:"updatedAt"`
}

// fromStruct decodes a Struct payload into v through its JSON form.
func fromStruct(s *structpb.Struct, v any) error {
	if s == nil {
		s = &structpb.Struct{}
	}
	data, err := json.Marshal(s.AsMap())
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidOptions, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidOptions, err)
	}
	return nil
}

// toStruct encodes v as a Struct payload through its JSON form.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("failed to build response: %w", err)
	}
	return s, nil
}

func toProfileResponse(v model.ProfileView) profileResponse {
	return profileResponse{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		CreatedAt: v.CreatedAt,
		PublicKey: v.PublicKey,
	}
}

func toPublicContractResponse(c model.PublicContract) publicContractResponse {
	return publicContractResponse{
		ID:                c.ID,
		TTL:               c.TTL,
		ReplicationFactor: c.ReplicationFactor,
		SpaceReserved:     c.SpaceReserved,
		CreatedAt:         c.CreatedAt,
		ContractSig:       c.ContractSig,
	}
}

func toPrivateContractResponse(c model.PrivateContract) privateContractResponse {
	return privateContractResponse{
		publicContractResponse: publicContractResponse{
			ID:                c.ID,
			TTL:               c.TTL,
			ReplicationFactor: c.ReplicationFactor,
			SpaceReserved:     c.SpaceReserved,
			CreatedAt:         c.CreatedAt,
			ContractSig:       c.ContractSig,
		},
		Name:        c.Name,
		Email:       c.Email,
		Passphrase:  c.Passphrase,
		SpaceUsed:   c.SpaceUsed,
		UpdatedAt:   c.UpdatedAt,
		FundingTx:   c.FundingTx,
		RecordIndex: c.RecordIndex,
		PublicKey:   c.PublicKey,
		PrivateKey:  c.PrivateKey,
	}
}
