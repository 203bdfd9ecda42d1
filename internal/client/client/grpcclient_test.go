package client

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/onepass/internal/api"
	"github.com/dmitrijs2005/onepass/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// fakeServer implements the calls the tests make; the rest panic through
// the nil embedded interface.
type fakeServer struct {
	api.VaultServer
	gotUpdate *api.UpdateRequest
}

func tokenOf(ctx context.Context) string {
	md, _ := metadata.FromIncomingContext(ctx)
	if v := md.Get(common.SessionTokenHeaderName); len(v) > 0 {
		return v[0]
	}
	return ""
}

func (f *fakeServer) Ping(context.Context, *api.Empty) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (f *fakeServer) Register(_ context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	switch req.Username {
	case "taken":
		return nil, status.Error(codes.AlreadyExists, "UsernameTaken")
	case "slow":
		return nil, status.Error(codes.ResourceExhausted, "TooManyRequests")
	}
	return &api.RegisterResponse{UserID: "uid-1"}, nil
}

func (f *fakeServer) Login(_ context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	if req.Password != "pw" {
		return nil, status.Error(codes.Unauthenticated, "AccessUnauthorized")
	}
	return &api.LoginResponse{Token: "tok", ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}, nil
}

func (f *fakeServer) Status(ctx context.Context, _ *api.Empty) (*api.StatusResponse, error) {
	switch tokenOf(ctx) {
	case "tok":
		return &api.StatusResponse{UserID: "uid-1", Username: "alice"}, nil
	case "old":
		return nil, status.Error(codes.Unauthenticated, "TokenExpired")
	}
	return nil, status.Error(codes.Unauthenticated, "TokenInvalid")
}

func (f *fakeServer) Add(_ context.Context, req *api.AddRequest) (*api.EntryResponse, error) {
	if req.Title == "" {
		return nil, status.Error(codes.InvalidArgument, "MissingField: title")
	}
	return &api.EntryResponse{Entry: api.Entry{ID: 1, Title: req.Title, URL: req.URL}}, nil
}

func (f *fakeServer) Get(_ context.Context, req *api.EntryRequest) (*api.EntryResponse, error) {
	switch req.ID {
	case 1:
		return &api.EntryResponse{Entry: api.Entry{ID: 1, Title: "mail"}}, nil
	case 2:
		return nil, status.Error(codes.DataLoss, "IntegrityFailure")
	case 3:
		return nil, status.Error(codes.Internal, "internal error")
	}
	return nil, status.Error(codes.NotFound, "EntryNotFound")
}

func (f *fakeServer) Update(_ context.Context, req *api.UpdateRequest) (*api.EntryResponse, error) {
	f.gotUpdate = req
	return &api.EntryResponse{Entry: api.Entry{ID: req.ID}}, nil
}

func (f *fakeServer) List(context.Context, *api.ListRequest) (*api.ListResponse, error) {
	return &api.ListResponse{Entries: []api.Summary{}}, nil
}

func newTestClient(t *testing.T, srv *fakeServer) *GRPCClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	api.RegisterVaultServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	c, err := NewGRPCClient("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_LoginCarriesToken(t *testing.T) {
	c := newTestClient(t, &fakeServer{})
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	_, err := c.Status(ctx)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)

	_, err = c.Login(ctx, "alice", "nope")
	assert.ErrorIs(t, err, common.ErrAccessUnauthorized)

	resp, err := c.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)

	st, err := c.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", st.Username)

	c.SetToken("old")
	_, err = c.Status(ctx)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestClient_ErrorMapping(t *testing.T) {
	c := newTestClient(t, &fakeServer{})
	ctx := context.Background()

	_, err := c.Register(ctx, "taken", "pw")
	assert.ErrorIs(t, err, common.ErrUsernameTaken)

	_, err = c.Register(ctx, "slow", "pw")
	assert.ErrorIs(t, err, ErrTooManyRequests)

	_, err = c.Add(ctx, &api.AddRequest{})
	var mf *common.MissingFieldError
	require.ErrorAs(t, err, &mf)
	assert.Equal(t, "title", mf.Field)

	_, err = c.Get(ctx, 2)
	assert.ErrorIs(t, err, common.ErrIntegrity)

	_, err = c.Get(ctx, 9)
	assert.ErrorIs(t, err, common.ErrEntryNotFound)

	_, err = c.Get(ctx, 3)
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestClient_Entries(t *testing.T) {
	srv := &fakeServer{}
	c := newTestClient(t, srv)
	ctx := context.Background()

	url := "https://mail"
	e, err := c.Add(ctx, &api.AddRequest{Title: "mail", URL: &url})
	require.NoError(t, err)
	require.NotNil(t, e.URL)
	assert.Equal(t, url, *e.URL)

	got, err := c.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "mail", got.Title)

	_, err = c.Update(ctx, &api.UpdateRequest{ID: 1, URL: api.Null()})
	require.NoError(t, err)
	require.NotNil(t, srv.gotUpdate)
	assert.True(t, srv.gotUpdate.URL.Set)
	assert.Nil(t, srv.gotUpdate.URL.Value)
	assert.False(t, srv.gotUpdate.Title.Set)

	list, err := c.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClient_Unavailable(t *testing.T) {
	c, err := NewGRPCClient("127.0.0.1:1")
	require.NoError(t, err)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.ErrorIs(t, c.Ping(ctx), ErrUnavailable)
}
