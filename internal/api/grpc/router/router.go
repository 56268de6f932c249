package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"

	"github.com/dtroode/subspace-wallet/internal/api/grpc/handler"
	"github.com/dtroode/subspace-wallet/internal/api/grpc/middleware"
	"github.com/dtroode/subspace-wallet/internal/api/grpc/walletv1"
	"github.com/dtroode/subspace-wallet/internal/logger"
	"github.com/dtroode/subspace-wallet/internal/model"
)

// WalletService is the wallet as seen by the API: its operations and token checks.
type WalletService interface {
	handler.WalletService
	middleware.Authorizer
}

// Router builds the gRPC server of the wallet API.
type Router struct {
	walletService  WalletService
	limiter        middleware.Limiter
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a Router. limiter throttles Unlock and profile creation per
// peer; it may be nil.
func New(
	walletService WalletService,
	limiter middleware.Limiter,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		walletService:  walletService,
		limiter:        limiter,
		contextManager: contextManager,
		logger:         logger,
	}
}

// publicMethods are served without an access token. Profile creation has
// to be public because no token can exist before a profile does; the
// wallet refuses it once a profile is present.
var publicMethods = map[string]struct{}{
	walletv1.CreateProfileFullMethodName:     {},
	walletv1.RestoreProfileFullMethodName:    {},
	walletv1.UnlockFullMethodName:            {},
	walletv1.GetPublicContractFullMethodName: {},
}

func authRequired(_ context.Context, c interceptors.CallMeta) bool {
	_, public := publicMethods[c.FullMethod()]
	return !public
}

// Register creates the gRPC server with logging, panic recovery, rate
// limiting and authentication interceptors and registers the wallet service on it.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	recovery := middleware.NewRecovery(r.logger)
	authenticate := middleware.NewAuthenticate(r.walletService, r.contextManager, r.logger)

	unary := []grpc.UnaryServerInterceptor{logging.HandleGRPC, recovery.Interceptor()}
	if r.limiter != nil {
		rateLimit := middleware.NewRateLimit(r.limiter, r.logger,
			walletv1.UnlockFullMethodName,
			walletv1.CreateProfileFullMethodName,
			walletv1.RestoreProfileFullMethodName,
		)
		unary = append(unary, rateLimit.HandleGRPC)
	}
	unary = append(unary, selector.UnaryServerInterceptor(
		auth.UnaryServerInterceptor(authenticate.AuthFunc),
		selector.MatchFunc(authRequired),
	))

	opts = append(opts, grpc.ChainUnaryInterceptor(unary...))
	s := grpc.NewServer(opts...)

	walletv1.RegisterWalletServer(s, handler.NewWallet(r.walletService, r.contextManager, r.logger))

	return s
}
