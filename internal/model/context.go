package model

import "context"

// ContextManager carries the authenticated profile id through request contexts.
type ContextManager interface {
	SetProfileIDToContext(ctx context.Context, profileID string) context.Context
	GetProfileIDFromContext(ctx context.Context) (string, bool)
}
