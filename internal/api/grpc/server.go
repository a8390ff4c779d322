package grpc

import (
	"context"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	calculatorv1 "github.com/AraxHub/calc-proto/gen/go/calculator/v1"
	"pocketCalc/internal/api/grpc/calculator"
	"pocketCalc/internal/api/grpc/interceptors"
	"pocketCalc/internal/ports"
)

// Server — gRPC-сервер: CalculatorService и стандартный health-сервис.
type Server struct {
	grpc   *grpc.Server
	health *health.Server
	addr   string
	log    *slog.Logger
}

// NewServer создаёт gRPC-сервер с CalculatorService и логирующим интерцептором.
func NewServer(addr string, uc ports.ICalculatorUseCase, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors.LoggingUnaryInterceptor(log)))
	calculatorv1.RegisterCalculatorServiceServer(s, calculator.New(uc, log))

	hs := health.NewServer()
	hs.SetServingStatus(calculatorv1.CalculatorService_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)

	return &Server{grpc: s, health: hs, addr: addr, log: log}
}

// Start слушает addr и принимает соединения (блокируется). Остановка через Stop().
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

// Serve принимает соединения на готовом listener.
func (s *Server) Serve(lis net.Listener) error {
	s.log.Info("grpc server started", "addr", lis.Addr().String())
	return s.grpc.Serve(lis)
}

// Stop помечает сервис NOT_SERVING и останавливает сервер (graceful, но не дольше ctx).
func (s *Server) Stop(ctx context.Context) error {
	s.health.Shutdown()
	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.grpc.Stop()
		return ctx.Err()
	}
}
