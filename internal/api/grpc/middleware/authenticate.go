package middleware

import (
	"context"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/subspace-wallet/internal/logger"
	"github.com/dtroode/subspace-wallet/internal/model"
)

// Authorizer resolves a bearer token to the id of the unlocked profile.
type Authorizer interface {
	Authorize(token string) (string, error)
}

// Authenticate validates bearer tokens and injects the profile id into context.
type Authenticate struct {
	authorizer     Authorizer
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuthenticate(authorizer Authorizer, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{authorizer: authorizer, contextManager: contextManager, logger: logger}
}

// AuthFunc parses the authorization header and returns a context with the profile id.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var token string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if headers := md.Get("authorization"); len(headers) > 0 {
			token = strings.TrimPrefix(headers[0], "Bearer ")
		}
	}

	if token == "" {
		return nil, status.Error(codes.Unauthenticated, "missing authorization token")
	}

	profileID, err := m.authorizer.Authorize(token)
	if err != nil {
		m.logger.Debug("Authenticate: token rejected", "error", err.Error())
		return nil, status.Error(codes.Unauthenticated, "invalid authorization token")
	}
	if profileID == "" {
		return nil, status.Error(codes.Unauthenticated, "invalid authorization token")
	}

	return m.contextManager.SetProfileIDToContext(ctx, profileID), nil
}
