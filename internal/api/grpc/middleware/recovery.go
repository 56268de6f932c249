package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/subspace-wallet/internal/logger"
)

// Recovery converts a panicking handler into an Internal error so that one
// request cannot take the server down.
type Recovery struct {
	logger *logger.Logger
}

func NewRecovery(logger *logger.Logger) *Recovery {
	return &Recovery{logger: logger}
}

// HandlePanic logs the recovered value with its stack.
func (r *Recovery) HandlePanic(ctx context.Context, p any) error {
	method, _ := grpc.Method(ctx)
	r.logger.Error("gRPC handler panicked",
		"method", method,
		"panic", fmt.Sprint(p),
		"stack", string(debug.Stack()),
	)
	return status.Error(codes.Internal, "internal server error")
}

func (r *Recovery) Interceptor() grpc.UnaryServerInterceptor {
	return recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(r.HandlePanic))
}
