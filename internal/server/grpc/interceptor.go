package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration_ms", time.Since(start).Milliseconds()}
	switch code {
	case codes.OK, codes.NotFound:
		s.logger.Debug(ctx, "rpc completed", args...)
	default:
		s.logger.Warn(ctx, "rpc failed", append(args, "error", err)...)
	}
	return resp, err
}
