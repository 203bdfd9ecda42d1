// Package client talks to the onepass server over gRPC and remembers the
// session token between CLI invocations.
package client

import (
	"context"

	"github.com/dmitrijs2005/onepass/internal/api"
	"github.com/dmitrijs2005/onepass/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      *api.VaultClient
	token       string
}

func withSessionToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.SessionTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) sessionTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.token != "" {
		ctx = withSessionToken(ctx, s.token)
	}
	return mapError(invoker(ctx, method, req, reply, cc, opts...))
}

// NewGRPCClient connects lazily to endpointURL. Extra dial options are
// appended after the defaults, which tests use to dial over bufconn.
func NewGRPCClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.sessionTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewVaultClient(conn)
	return c, nil
}

// SetToken sets the session token sent with every call.
func (s *GRPCClient) SetToken(token string) { s.token = token }

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	_, err := s.client.Ping(ctx, &api.Empty{})
	return err
}

func (s *GRPCClient) Register(ctx context.Context, username, password string) (string, error) {
	resp, err := s.client.Register(ctx, &api.RegisterRequest{Username: username, Password: password})
	if err != nil {
		return "", err
	}
	return resp.UserID, nil
}

// Login starts a session and remembers its token for later calls.
func (s *GRPCClient) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	s.token = resp.Token
	return resp, nil
}

func (s *GRPCClient) Logout(ctx context.Context) error {
	_, err := s.client.Logout(ctx, &api.Empty{})
	return err
}

func (s *GRPCClient) Status(ctx context.Context) (*api.StatusResponse, error) {
	return s.client.Status(ctx, &api.Empty{})
}

func (s *GRPCClient) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	_, err := s.client.ChangePassword(ctx, &api.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword})
	return err
}

func (s *GRPCClient) DeleteAccount(ctx context.Context) error {
	_, err := s.client.DeleteAccount(ctx, &api.Empty{})
	return err
}

func (s *GRPCClient) List(ctx context.Context, sortBy string) ([]api.Summary, error) {
	resp, err := s.client.List(ctx, &api.ListRequest{SortBy: sortBy})
	if err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

func (s *GRPCClient) Search(ctx context.Context, query string) ([]api.Summary, error) {
	resp, err := s.client.Search(ctx, &api.SearchRequest{Query: query})
	if err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

func (s *GRPCClient) Add(ctx context.Context, req *api.AddRequest) (*api.Entry, error) {
	resp, err := s.client.Add(ctx, req)
	if err != nil {
		return nil, err
	}
	return &resp.Entry, nil
}

func (s *GRPCClient) Get(ctx context.Context, id int64) (*api.Entry, error) {
	resp, err := s.client.Get(ctx, &api.EntryRequest{ID: id})
	if err != nil {
		return nil, err
	}
	return &resp.Entry, nil
}

func (s *GRPCClient) Update(ctx context.Context, req *api.UpdateRequest) (*api.Entry, error) {
	resp, err := s.client.Update(ctx, req)
	if err != nil {
		return nil, err
	}
	return &resp.Entry, nil
}

func (s *GRPCClient) Delete(ctx context.Context, id int64) error {
	_, err := s.client.Delete(ctx, &api.EntryRequest{ID: id})
	return err
}

func (s *GRPCClient) Check(ctx context.Context, id int64) (*api.AdviceResponse, error) {
	return s.client.Check(ctx, &api.EntryRequest{ID: id})
}

func (s *GRPCClient) CheckPassword(ctx context.Context, password string) (*api.AdviceResponse, error) {
	return s.client.CheckPassword(ctx, &api.CheckPasswordRequest{Password: password})
}
