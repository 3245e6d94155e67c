package server

import (
	"context"
	"net"

	kratoslog "github.com/go-kratos/kratos/v2/log"
	"google.golang.org/grpc"

	"social-graph/pkg/config"
)

// GRPCServer is the gRPC server contract used by the application framework.
type GRPCServer interface {
	GetServer() *grpc.Server
	RegisterService(registerFunc func(*grpc.Server))
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// GRPCServerWrapper is a gRPC server.
type GRPCServerWrapper struct {
	server *grpc.Server
	addr   string
	logger kratoslog.Logger
}

// NewGRPCServerWrapper creates a gRPC server from config.
func NewGRPCServerWrapper(c *config.Config, logger kratoslog.Logger) *GRPCServerWrapper {
	server := grpc.NewServer()

	return &GRPCServerWrapper{
		server: server,
		addr:   c.Server.GRPC.Addr,
		logger: logger,
	}
}

// GetServer returns the underlying gRPC server.
func (w *GRPCServerWrapper) GetServer() *grpc.Server {
	return w.server
}

// RegisterService applies a service registration function.
func (w *GRPCServerWrapper) RegisterService(registerFunc func(*grpc.Server)) {
	registerFunc(w.server)
}

// Start starts the server.
func (w *GRPCServerWrapper) Start(ctx context.Context) error {
	w.logger.Log(kratoslog.LevelInfo, "msg", "gRPC server starting", "addr", w.addr)
	lis, err := net.Listen("tcp", w.addr)
	if err != nil {
		return err
	}
	return w.server.Serve(lis)
}

// Stop gracefully stops the server.
func (w *GRPCServerWrapper) Stop(ctx context.Context) error {
	w.logger.Log(kratoslog.LevelInfo, "msg", "gRPC server stopping")
	w.server.GracefulStop()
	return nil
}
