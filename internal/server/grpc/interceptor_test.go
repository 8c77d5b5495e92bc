package grpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestLoggingInterceptor(t *testing.T) {
	log := newRecLogger()
	s := &GRPCServer{logger: log}
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	resp, err := s.loggingInterceptor(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Equal(t, "debug", log.last().level)
	assert.Contains(t, log.last().args, "/grpc.health.v1.Health/Check")

	_, err = s.loggingInterceptor(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.Unavailable, "down")
	})
	assert.Equal(t, codes.Unavailable, status.Code(err))
	assert.Equal(t, "warn", log.last().level)
	assert.Equal(t, "rpc failed", log.last().msg)
	assert.Contains(t, log.last().args, "Unavailable")
}
