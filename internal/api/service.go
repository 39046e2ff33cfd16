package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "credkit.CredentialService"

// Full method names, as seen by interceptors.
const (
	MethodGenerateSalt        = "/" + ServiceName + "/GenerateSalt"
	MethodHash                = "/" + ServiceName + "/Hash"
	MethodDerivePassword      = "/" + ServiceName + "/DerivePassword"
	MethodGenerateUniqueToken = "/" + ServiceName + "/GenerateUniqueToken"
	MethodRegister            = "/" + ServiceName + "/Register"
	MethodLogin               = "/" + ServiceName + "/Login"
	MethodChangePassword      = "/" + ServiceName + "/ChangePassword"
	MethodIssueAPIKey         = "/" + ServiceName + "/IssueAPIKey"
	MethodProfile             = "/" + ServiceName + "/Profile"
	MethodPing                = "/" + ServiceName + "/Ping"
)

// CredentialServiceServer is implemented by the daemon.
type CredentialServiceServer interface {
	GenerateSalt(context.Context, *GenerateSaltRequest) (*GenerateSaltResponse, error)
	Hash(context.Context, *HashRequest) (*HashResponse, error)
	DerivePassword(context.Context, *DerivePasswordRequest) (*DerivePasswordResponse, error)
	GenerateUniqueToken(context.Context, *GenerateUniqueTokenRequest) (*GenerateUniqueTokenResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*ChangePasswordResponse, error)
	IssueAPIKey(context.Context, *IssueAPIKeyRequest) (*IssueAPIKeyResponse, error)
	Profile(context.Context, *ProfileRequest) (*ProfileResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// unary builds the MethodDesc for one RPC, decoding into Req and routing
// through the server's interceptor chain.
func unary[Req, Resp any](name string, call func(CredentialServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(CredentialServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(CredentialServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CredentialServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GenerateSalt", CredentialServiceServer.GenerateSalt),
		unary("Hash", CredentialServiceServer.Hash),
		unary("DerivePassword", CredentialServiceServer.DerivePassword),
		unary("GenerateUniqueToken", CredentialServiceServer.GenerateUniqueToken),
		unary("Register", CredentialServiceServer.Register),
		unary("Login", CredentialServiceServer.Login),
		unary("ChangePassword", CredentialServiceServer.ChangePassword),
		unary("IssueAPIKey", CredentialServiceServer.IssueAPIKey),
		unary("Profile", CredentialServiceServer.Profile),
		unary("Ping", CredentialServiceServer.Ping),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "credkit/api",
}

func RegisterCredentialServiceServer(s grpc.ServiceRegistrar, srv CredentialServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
