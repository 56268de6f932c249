package model

import "crypto"

// User is the persisted profile record. ID equals the bound key id.
//
// Passphrase is stored next to the rest of the record so the profile key can
// be reopened on load. Enable sealed storage to keep it off disk in clear.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Passphrase string `json:"passphrase"`
	CreatedAt  int64  `json:"createdAt"`
}

// ProfileView is the caller-facing projection of the profile.
type ProfileView struct {
	ID         string
	Name       string
	Email      string
	Passphrase string
	CreatedAt  int64
	PublicKey  string
	PrivateKey string
	Handle     crypto.Signer
}
