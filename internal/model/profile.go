package model

import (
	"strings"
	"time"
)

// ProfileOptions holds the data needed to create a profile.
type ProfileOptions struct {
	Name       string
	Email      string
	Passphrase string
}

// Validate checks that every option is present.
func (o ProfileOptions) Validate() error {
	if strings.TrimSpace(o.Name) == "" || strings.TrimSpace(o.Email) == "" || o.Passphrase == "" {
		return ErrInvalidOptions
	}
	return nil
}

// NowMillis returns the current time in unix milliseconds, the timestamp unit used in persisted records.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
