package context

import (
	stdctx "context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/metadata"
)

func TestManager_SetAndGetProfileID(t *testing.T) {
	m := NewManager()
	ctx := m.SetProfileIDToContext(stdctx.Background(), "9xQeWvG816bUx9EP")

	got, ok := m.GetProfileIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "9xQeWvG816bUx9EP", got)
}

func TestManager_GetProfileID_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.GetProfileIDFromContext(stdctx.Background())
	assert.False(t, ok)

	ctx := metadata.NewIncomingContext(stdctx.Background(), metadata.New(map[string]string{profileIDKey: ""}))
	_, ok = m.GetProfileIDFromContext(ctx)
	assert.False(t, ok)
}

func TestManager_SetProfileID_WithExistingMetadata(t *testing.T) {
	m := NewManager()
	baseMD := metadata.New(map[string]string{"x-trace-id": "t", profileIDKey: "spoofed"})
	ctxWithMD := metadata.NewIncomingContext(stdctx.Background(), baseMD)

	ctx := m.SetProfileIDToContext(ctxWithMD, "real")
	got, ok := m.GetProfileIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "real", got)

	md, _ := metadata.FromIncomingContext(ctx)
	assert.Equal(t, []string{"t"}, md.Get("x-trace-id"))
	// the caller's metadata is not mutated
	assert.Equal(t, []string{"spoofed"}, baseMD.Get(profileIDKey))
}
