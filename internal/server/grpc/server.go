package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/credkit/internal/api"
	"github.com/dmitrijs2005/credkit/internal/logging"
	"github.com/dmitrijs2005/credkit/internal/lookup"
	"github.com/dmitrijs2005/credkit/internal/server/models"
	"github.com/dmitrijs2005/credkit/internal/server/services"
	"google.golang.org/grpc"
)

// Credentials is the part of services.CredentialService the handlers use.
type Credentials interface {
	GenerateSalt() (string, error)
	Hash(input string) string
	DeriveWith(kdf, password, salt string) (string, error)
	GenerateUniqueToken(ctx context.Context, table, column string, length int) (string, error)
}

// Accounts is the part of services.AccountService the handlers use.
type Accounts interface {
	Register(ctx context.Context, username, password string, role lookup.Role) (*models.Account, error)
	Login(ctx context.Context, username, password string) (string, error)
	ChangePassword(ctx context.Context, accountID, oldPassword, newPassword string) error
	IssueAPIKey(ctx context.Context, accountID string) (string, error)
	Profile(ctx context.Context, accountID string) (*services.Profile, error)
}

var (
	_ Credentials = (*services.CredentialService)(nil)
	_ Accounts    = (*services.AccountService)(nil)
)

type GRPCServer struct {
	address     string
	credentials Credentials
	accounts    Accounts
	logger      logging.Logger
	jwtSecret   []byte
}

var _ api.CredentialServiceServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, cs Credentials, as Accounts, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:     a,
		logger:      l.With("module", "grpc_server"),
		credentials: cs,
		accounts:    as,
		jwtSecret:   []byte(secretKey),
	}
}

// newServer creates the gRPC server with the JSON codec and the interceptor
// chain, and registers the service on it.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		api.ServerCodec(),
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor),
	)
	api.RegisterCredentialServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	<-stopped
	return nil
}
