// Package grpc exposes the standard gRPC health service for the site
// server. The "cms" service reports whether team data can currently be
// loaded; the overall status is SERVING while the process runs.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/clinicsite/internal/logging"
)

// CMSService is the health service name tracked by the Watcher.
const CMSService = "cms"

type GRPCServer struct {
	address string
	logger  logging.Logger
	health  *health.Server
}

func NewGRPCServer(address string, l logging.Logger) *GRPCServer {
	hs := health.NewServer()
	hs.SetServingStatus(CMSService, healthpb.HealthCheckResponse_NOT_SERVING)
	return &GRPCServer{
		address: address,
		logger:  l.With("module", "grpc_server"),
		health:  hs,
	}
}

// Health returns the status registry the Watcher reports into.
func (s *GRPCServer) Health() *health.Server {
	return s.health
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}
