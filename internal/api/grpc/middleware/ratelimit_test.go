package middleware

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/dtroode/subspace-wallet/internal/ratelimit"
	"github.com/dtroode/subspace-wallet/internal/testutil"
)

func TestRateLimit_HandleGRPC(t *testing.T) {
	limiter := ratelimit.New(0.001, 2, time.Minute)
	rl := NewRateLimit(limiter, testutil.MakeNoopLogger(), "/wallet.v1.Wallet/Unlock")

	ok := func(ctx context.Context, req any) (any, error) { return "ok", nil }
	peerCtx := func(port int) context.Context {
		return peer.NewContext(context.Background(), &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(10, 0, 0, 1), Port: port}})
	}
	unlock := &grpc.UnaryServerInfo{FullMethod: "/wallet.v1.Wallet/Unlock"}
	other := &grpc.UnaryServerInfo{FullMethod: "/wallet.v1.Wallet/GetProfile"}

	_, err := rl.HandleGRPC(peerCtx(1000), nil, unlock, ok)
	assert.NoError(t, err)
	// a new connection from the same host shares the bucket
	_, err = rl.HandleGRPC(peerCtx(1001), nil, unlock, ok)
	assert.NoError(t, err)

	_, err = rl.HandleGRPC(peerCtx(1002), nil, unlock, ok)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	// methods outside the list are never throttled
	for i := 0; i < 5; i++ {
		resp, err := rl.HandleGRPC(peerCtx(1003), nil, other, ok)
		assert.NoError(t, err)
		assert.Equal(t, "ok", resp)
	}
}
