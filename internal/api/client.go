package api

import (
	"context"

	"google.golang.org/grpc"
)

type CredentialServiceClient interface {
	GenerateSalt(ctx context.Context, in *GenerateSaltRequest, opts ...grpc.CallOption) (*GenerateSaltResponse, error)
	Hash(ctx context.Context, in *HashRequest, opts ...grpc.CallOption) (*HashResponse, error)
	DerivePassword(ctx context.Context, in *DerivePasswordRequest, opts ...grpc.CallOption) (*DerivePasswordResponse, error)
	GenerateUniqueToken(ctx context.Context, in *GenerateUniqueTokenRequest, opts ...grpc.CallOption) (*GenerateUniqueTokenResponse, error)
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*ChangePasswordResponse, error)
	IssueAPIKey(ctx context.Context, in *IssueAPIKeyRequest, opts ...grpc.CallOption) (*IssueAPIKeyResponse, error)
	Profile(ctx context.Context, in *ProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type credentialServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCredentialServiceClient(cc grpc.ClientConnInterface) CredentialServiceClient {
	return &credentialServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{CallCodec()}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *credentialServiceClient) GenerateSalt(ctx context.Context, in *GenerateSaltRequest, opts ...grpc.CallOption) (*GenerateSaltResponse, error) {
	return invoke[GenerateSaltResponse](ctx, c.cc, MethodGenerateSalt, in, opts)
}

func (c *credentialServiceClient) Hash(ctx context.Context, in *HashRequest, opts ...grpc.CallOption) (*HashResponse, error) {
	return invoke[HashResponse](ctx, c.cc, MethodHash, in, opts)
}

func (c *credentialServiceClient) DerivePassword(ctx context.Context, in *DerivePasswordRequest, opts ...grpc.CallOption) (*DerivePasswordResponse, error) {
	return invoke[DerivePasswordResponse](ctx, c.cc, MethodDerivePassword, in, opts)
}

func (c *credentialServiceClient) GenerateUniqueToken(ctx context.Context, in *GenerateUniqueTokenRequest, opts ...grpc.CallOption) (*GenerateUniqueTokenResponse, error) {
	return invoke[GenerateUniqueTokenResponse](ctx, c.cc, MethodGenerateUniqueToken, in, opts)
}

func (c *credentialServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *credentialServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *credentialServiceClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*ChangePasswordResponse, error) {
	return invoke[ChangePasswordResponse](ctx, c.cc, MethodChangePassword, in, opts)
}

func (c *credentialServiceClient) IssueAPIKey(ctx context.Context, in *IssueAPIKeyRequest, opts ...grpc.CallOption) (*IssueAPIKeyResponse, error) {
	return invoke[IssueAPIKeyResponse](ctx, c.cc, MethodIssueAPIKey, in, opts)
}

func (c *credentialServiceClient) Profile(ctx context.Context, in *ProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, MethodProfile, in, opts)
}

func (c *credentialServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}
