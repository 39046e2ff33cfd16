package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/credkit/internal/api"
	"github.com/dmitrijs2005/credkit/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.CredentialServiceClient

	mu          sync.RWMutex
	accessToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	s.mu.RLock()
	token := s.accessToken
	s.mu.RUnlock()

	if token != "" {
		ctx = withAccessToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewCredkitClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// InitGRPCClient creates the connection. Extra options are appended after
// the defaults, which is how tests dial a bufconn listener.
func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewCredentialServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// SetAccessToken sets the token sent with every subsequent call.
func (s *GRPCClient) SetAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) GenerateUniqueToken(ctx context.Context, table, column string, length int) (string, error) {
	resp, err := s.client.GenerateUniqueToken(ctx, &api.GenerateUniqueTokenRequest{Table: table, Column: column, Length: length})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Token, nil
}

func (s *GRPCClient) Register(ctx context.Context, username string, password []byte, role int) (*api.RegisterResponse, error) {
	resp, err := s.client.Register(ctx, &api.RegisterRequest{Username: username, Password: password, Role: role})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

// Login authenticates and keeps the returned access token for later calls.
func (s *GRPCClient) Login(ctx context.Context, username string, password []byte) (string, error) {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return "", s.mapError(err)
	}
	s.SetAccessToken(resp.AccessToken)
	return resp.AccessToken, nil
}

func (s *GRPCClient) ChangePassword(ctx context.Context, oldPassword, newPassword []byte) error {
	_, err := s.client.ChangePassword(ctx, &api.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword})
	return s.mapError(err)
}

func (s *GRPCClient) IssueAPIKey(ctx context.Context) (string, error) {
	resp, err := s.client.IssueAPIKey(ctx, &api.IssueAPIKeyRequest{})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Key, nil
}

func (s *GRPCClient) Profile(ctx context.Context) (*api.ProfileResponse, error) {
	resp, err := s.client.Profile(ctx, &api.ProfileRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		if st.Message() == common.ErrTokenExpired.Error() {
			return common.ErrTokenExpired
		}
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.NotFound:
		return ErrNotFound
	case codes.ResourceExhausted:
		return ErrExhausted
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
