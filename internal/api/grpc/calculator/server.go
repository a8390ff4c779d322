package calculator

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	calculatorv1 "github.com/AraxHub/calc-proto/gen/go/calculator/v1"
	"pocketCalc/internal/domain"
	"pocketCalc/internal/ports"
)

// Server реализует gRPC CalculatorService поверх use case.
// History не реализован: калькулятор не хранит прошлые результаты, вызов вернёт Unimplemented.
type Server struct {
	calculatorv1.UnimplementedCalculatorServiceServer
	uc  ports.ICalculatorUseCase
	log *slog.Logger
}

// New создаёт gRPC-сервер калькулятора.
func New(uc ports.ICalculatorUseCase, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{uc: uc, log: log}
}

// Calculate — одна операция над двумя числами. Деление на ноль не ошибка: результат 0.
func (s *Server) Calculate(ctx context.Context, req *calculatorv1.CalculateRequest) (*calculatorv1.CalculateResponse, error) {
	result, err := s.uc.Evaluate(ctx, req.GetNumber1(), req.GetNumber2(), req.GetOperation())
	if err != nil {
		if errors.Is(err, domain.ErrUnknownOperation) {
			return nil, status.Errorf(codes.InvalidArgument, "%v", err)
		}
		s.log.Error("calculate failed", "error", err)
		return nil, status.Errorf(codes.Internal, "%v", err)
	}
	return &calculatorv1.CalculateResponse{
		Result:  result,
		Message: domain.FormatResult(result),
	}, nil
}
