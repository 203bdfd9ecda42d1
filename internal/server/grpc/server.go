// Package grpc exposes the onepass.Vault service over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/onepass/internal/api"
	"github.com/dmitrijs2005/onepass/internal/logging"
	"github.com/dmitrijs2005/onepass/internal/server/ratelimit"
	"github.com/dmitrijs2005/onepass/internal/server/services"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	address string
	keeper  services.KeeperService
	limiter *ratelimit.Limiter
	logger  logging.Logger
}

var _ api.VaultServer = (*GRPCServer)(nil)

// NewGRPCServer builds a server for address. limiter may be nil to disable
// login throttling.
func NewGRPCServer(address string, k services.KeeperService, limiter *ratelimit.Limiter, l logging.Logger) *GRPCServer {
	if l == nil {
		l = logging.Nop{}
	}
	return &GRPCServer{
		address: address,
		keeper:  k,
		limiter: limiter,
		logger:  l.With("module", "grpc_server"),
	}
}

// newServer creates the grpc.Server with interceptors and the service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.loggingInterceptor,
		s.rateLimitInterceptor,
		s.sessionTokenInterceptor,
	))
	api.RegisterVaultServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
