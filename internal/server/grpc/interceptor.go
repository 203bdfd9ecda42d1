package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/onepass/internal/api"
	"github.com/dmitrijs2005/onepass/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

type ctxKey string

const sessionTokenKey ctxKey = "sessionToken"

// throttled lists the methods that guess at credentials.
var throttled = map[string]bool{
	api.MethodLogin:    true,
	api.MethodRegister: true,
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	if code == codes.Internal {
		s.logger.Error(ctx, "grpc request failed", args...)
	} else {
		s.logger.Debug(ctx, "grpc request", args...)
	}

	return resp, err
}

func (s *GRPCServer) rateLimitInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if throttled[info.FullMethod] && !s.limiter.Allow(peerHost(ctx)) {
		s.logger.Warn(ctx, "login throttled", "method", info.FullMethod, "peer", peerHost(ctx))
		return nil, status.Error(codes.ResourceExhausted, errTooManyRequests)
	}
	return handler(ctx, req)
}

// sessionTokenInterceptor moves the session token from request metadata
// into the context. Validation is left to the keeper.
func (s *GRPCServer) sessionTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.SessionTokenHeaderName); len(values) > 0 {
			ctx = context.WithValue(ctx, sessionTokenKey, values[0])
		}
	}
	return handler(ctx, req)
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(sessionTokenKey).(string)
	return token
}

func peerHost(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return ""
	}
	addr := p.Addr.String()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
