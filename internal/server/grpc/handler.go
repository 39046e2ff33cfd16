package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/credkit/internal/api"
	"github.com/dmitrijs2005/credkit/internal/common"
	"github.com/dmitrijs2005/credkit/internal/cryptox"
	"github.com/dmitrijs2005/credkit/internal/lookup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors to gRPC statuses. Unrecognised errors are
// reported as Internal without their text.
func toStatus(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorUsernameTaken):
		return status.Error(codes.AlreadyExists, common.ErrorUsernameTaken.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrExhaustedAttempts):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, common.ErrOracleUnavailable), errors.Is(err, common.ErrEntropyUnavailable):
		return status.Error(codes.Unavailable, "temporarily unavailable")
	case errors.Is(err, common.ErrInvalidIdentifier),
		errors.Is(err, common.ErrInvalidLength),
		errors.Is(err, common.ErrUnknownKDF),
		errors.Is(err, common.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func (s *GRPCServer) GenerateSalt(ctx context.Context, req *api.GenerateSaltRequest) (*api.GenerateSaltResponse, error) {
	salt, err := s.credentials.GenerateSalt()
	if err != nil {
		s.logger.Error(ctx, "salt generation failed", "error", err)
		return nil, toStatus(err)
	}
	return &api.GenerateSaltResponse{Salt: salt}, nil
}

func (s *GRPCServer) Hash(ctx context.Context, req *api.HashRequest) (*api.HashResponse, error) {
	return &api.HashResponse{Digest: s.credentials.Hash(string(req.Input))}, nil
}

func (s *GRPCServer) DerivePassword(ctx context.Context, req *api.DerivePasswordRequest) (*api.DerivePasswordResponse, error) {
	kdf := req.KDF
	if kdf == "" {
		kdf = cryptox.KDFIterated
	}
	if req.Salt == "" {
		return nil, status.Error(codes.InvalidArgument, "salt is required; the unsalted derivation equals Hash of the password")
	}

	credential, err := s.credentials.DeriveWith(kdf, string(req.Password), req.Salt)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.DerivePasswordResponse{Credential: credential, KDF: kdf}, nil
}

func (s *GRPCServer) GenerateUniqueToken(ctx context.Context, req *api.GenerateUniqueTokenRequest) (*api.GenerateUniqueTokenResponse, error) {
	token, err := s.credentials.GenerateUniqueToken(ctx, req.Table, req.Column, req.Length)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.GenerateUniqueTokenResponse{Token: token}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	s.logger.Info(ctx, "Registration request")

	account, err := s.accounts.Register(ctx, req.Username, string(req.Password), lookup.Role(req.Role))
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "account_id", account.ID)
	return &api.RegisterResponse{AccountID: account.ID, UserHash: account.UserHash}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	token, err := s.accounts.Login(ctx, req.Username, string(req.Password))
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.LoginResponse{AccessToken: token}, nil
}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *api.ChangePasswordRequest) (*api.ChangePasswordResponse, error) {
	accountID, err := accountIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.ChangePassword(ctx, accountID, string(req.OldPassword), string(req.NewPassword)); err != nil {
		return nil, toStatus(err)
	}
	return &api.ChangePasswordResponse{}, nil
}

func (s *GRPCServer) IssueAPIKey(ctx context.Context, req *api.IssueAPIKeyRequest) (*api.IssueAPIKeyResponse, error) {
	accountID, err := accountIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	key, err := s.accounts.IssueAPIKey(ctx, accountID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.IssueAPIKeyResponse{Key: key}, nil
}

func (s *GRPCServer) Profile(ctx context.Context, req *api.ProfileRequest) (*api.ProfileResponse, error) {
	accountID, err := accountIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.accounts.Profile(ctx, accountID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.ProfileResponse{
		AccountID: p.AccountID,
		Username:  p.Username,
		UserHash:  p.UserHash,
		Role:      p.Role,
		CreatedAt: p.CreatedAt,
		LastLogin: p.LastLogin,
		APIKeys:   p.APIKeys,
	}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}
