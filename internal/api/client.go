package api

import (
	"context"

	"google.golang.org/grpc"
)

// VaultClient calls onepass.Vault over a connection, always with the JSON codec.
type VaultClient struct {
	cc grpc.ClientConnInterface
}

func NewVaultClient(cc grpc.ClientConnInterface) *VaultClient {
	return &VaultClient{cc: cc}
}

func (c *VaultClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *VaultClient) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	out := new(PingResponse)
	if err := c.invoke(ctx, MethodPing, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	out := new(RegisterResponse)
	if err := c.invoke(ctx, MethodRegister, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	out := new(LoginResponse)
	if err := c.invoke(ctx, MethodLogin, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) Logout(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.invoke(ctx, MethodLogout, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) Status(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StatusResponse, error) {
	out := new(StatusResponse)
	if err := c.invoke(ctx, MethodStatus, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.invoke(ctx, MethodChangePassword, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) DeleteAccount(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.invoke(ctx, MethodDeleteAccount, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListResponse, error) {
	out := new(ListResponse)
	if err := c.invoke(ctx, MethodList, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) Search(ctx context.Context, in *SearchRequest, opts ...grpc.CallOption) (*ListResponse, error) {
	out := new(ListResponse)
	if err := c.invoke(ctx, MethodSearch, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) Add(ctx context.Context, in *AddRequest, opts ...grpc.CallOption) (*EntryResponse, error) {
	out := new(EntryResponse)
	if err := c.invoke(ctx, MethodAdd, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) Get(ctx context.Context, in *EntryRequest, opts ...grpc.CallOption) (*EntryResponse, error) {
	out := new(EntryResponse)
	if err := c.invoke(ctx, MethodGet, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) Update(ctx context.Context, in *UpdateRequest, opts ...grpc.CallOption) (*EntryResponse, error) {
	out := new(EntryResponse)
	if err := c.invoke(ctx, MethodUpdate, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) Delete(ctx context.Context, in *EntryRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.invoke(ctx, MethodDelete, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) Check(ctx context.Context, in *EntryRequest, opts ...grpc.CallOption) (*AdviceResponse, error) {
	out := new(AdviceResponse)
	if err := c.invoke(ctx, MethodCheck, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VaultClient) CheckPassword(ctx context.Context, in *CheckPasswordRequest, opts ...grpc.CallOption) (*AdviceResponse, error) {
	out := new(AdviceResponse)
	if err := c.invoke(ctx, MethodCheckPassword, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
