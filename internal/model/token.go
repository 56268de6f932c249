package model

// TokenManager issues and validates access tokens bound to a profile.
type TokenManager interface {
	GenerateAccessToken(profileID string) (token string, expiresAt int64, err error)
	ParseAccessToken(token string) (profileID string, err error)
}
