package model

// Session is the result of a successful unlock.
type Session struct {
	ProfileID   string
	AccessToken string
	ExpiresAt   int64 // unix milliseconds
}
