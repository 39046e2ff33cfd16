package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/credkit/internal/api"
	"github.com/dmitrijs2005/credkit/internal/common"
	"github.com/dmitrijs2005/credkit/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const AccountIDKey ctxKey = "accountID"

// protectedMethods require a valid access token.
var protectedMethods = map[string]struct{}{
	api.MethodGenerateUniqueToken: {},
	api.MethodChangePassword:      {},
	api.MethodIssueAPIKey:         {},
	api.MethodProfile:             {},
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if _, ok := protectedMethods[info.FullMethod]; !ok {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	accountID, err := auth.GetAccountIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	return handler(context.WithValue(ctx, AccountIDKey, accountID), req)
}

// loggingInterceptor records method, resulting code and latency. Payloads
// are never logged since they carry passwords.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	switch code {
	case codes.OK:
		s.logger.Debug(ctx, "rpc", args...)
	case codes.Internal, codes.Unavailable, codes.Unknown:
		s.logger.Error(ctx, "rpc", args...)
	default:
		s.logger.Info(ctx, "rpc", args...)
	}

	return resp, err
}

func accountIDFromContext(ctx context.Context) (string, error) {
	id, ok := ctx.Value(AccountIDKey).(string)
	if !ok || id == "" {
		return "", status.Error(codes.Unauthenticated, "unauthorized")
	}
	return id, nil
}
