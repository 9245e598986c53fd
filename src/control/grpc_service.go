package control

import (
	"context"
	"fmt"
	"net"

	"storefront-gateway/src/config"
	"storefront-gateway/src/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// -----------------------------------------------------------------------------
// GRPCService handles gRPC server lifecycle
// -----------------------------------------------------------------------------

// serviceName is the health-check identity load balancers probe for.
const serviceName = "storefront.Gateway"

type GRPCService struct {
	server   *grpc.Server
	health   *health.Server
	listener net.Listener
	config   *config.Config
	logger   *logger.Logger
}

// -----------------------------------------------------------------------------

// NewGRPCService creates a new GRPCService instance
func NewGRPCService(cfg *config.Config, log *logger.Logger) (*GRPCService, error) {
	// Create listener
	address := fmt.Sprintf("%s:%d", cfg.GRPCHost, cfg.GRPCPort)

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	server := grpc.NewServer()

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	return &GRPCService{
		server:   server,
		health:   healthServer,
		listener: listener,
		config:   cfg,
		logger:   log,
	}, nil
}

// -----------------------------------------------------------------------------

// Start serves gRPC requests; it blocks until the server stops.
func (g *GRPCService) Start() error {
	g.logger.Info("starting gRPC health service on %s", g.listener.Addr().String())

	if err := g.server.Serve(g.listener); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("grpc server failed: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

// SetServing flips the advertised health state of the gateway service.
func (g *GRPCService) SetServing(serving bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	g.health.SetServingStatus(serviceName, status)
}

// -----------------------------------------------------------------------------

// Stop gracefully stops the gRPC server, falling back to a hard stop when the
// context expires first.
func (g *GRPCService) Stop(ctx context.Context) error {
	g.logger.Info("stopping gRPC health service")
	g.health.Shutdown()

	done := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		g.server.Stop()
	}
	return nil
}
