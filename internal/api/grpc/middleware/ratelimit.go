package middleware

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/subspace-wallet/internal/logger"
)

// Limiter decides whether a caller identified by key may proceed.
type Limiter interface {
	Allow(key string, now time.Time) bool
}

// RateLimit throttles selected unary methods per peer host.
type RateLimit struct {
	limiter Limiter
	methods map[string]struct{}
	logger  *logger.Logger
	now     func() time.Time
}

// NewRateLimit limits the given full method names with limiter.
func NewRateLimit(limiter Limiter, logger *logger.Logger, methods ...string) *RateLimit {
	set := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		set[m] = struct{}{}
	}
	return &RateLimit{
		limiter: limiter,
		methods: set,
		logger:  logger,
		now:     time.Now,
	}
}

// HandleGRPC rejects calls over the limit with ResourceExhausted.
func (r *RateLimit) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if _, ok := r.methods[info.FullMethod]; !ok {
		return handler(ctx, req)
	}

	key := peerHost(ctx)
	if !r.limiter.Allow(key, r.now()) {
		r.logger.Warn("RateLimit: request throttled",
			"method", info.FullMethod,
			"peer", key)
		return nil, status.Error(codes.ResourceExhausted, "too many requests")
	}

	return handler(ctx, req)
}

// peerHost strips the port so reconnecting clients share one bucket.
func peerHost(ctx context.Context) string {
	addr := peerAddr(ctx)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
