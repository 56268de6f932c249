package context

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// profileIDKey is the metadata key carrying the authenticated profile id.
const profileIDKey = "x-profile-id"

// Manager stores the authenticated profile id in incoming gRPC metadata.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// SetProfileIDToContext returns ctx with profileID set in its incoming metadata,
// replacing any value the caller sent.
func (m *Manager) SetProfileIDToContext(ctx context.Context, profileID string) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.New(nil)
	} else {
		md = md.Copy()
	}
	md.Set(profileIDKey, profileID)

	return metadata.NewIncomingContext(ctx, md)
}

// GetProfileIDFromContext returns the profile id set by SetProfileIDToContext.
func (m *Manager) GetProfileIDFromContext(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}

	ids := md.Get(profileIDKey)
	if len(ids) == 0 || ids[0] == "" {
		return "", false
	}

	return ids[0], true
}
