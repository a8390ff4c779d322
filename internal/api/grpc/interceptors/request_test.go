package interceptors

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestLoggingUnaryInterceptor(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
		code  string
	}{
		{"успех", nil, "level=INFO", "grpc_code=OK"},
		{"плохой аргумент", status.Error(codes.InvalidArgument, "bad op"), "level=WARN", "grpc_code=InvalidArgument"},
		{"внутренняя", status.Error(codes.Internal, "boom"), "level=ERROR", "grpc_code=Internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := slog.New(slog.NewTextHandler(&buf, nil))
			icp := LoggingUnaryInterceptor(log)

			info := &grpc.UnaryServerInfo{FullMethod: "/calculator.v1.CalculatorService/Calculate"}
			resp, err := icp(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
				return "resp", tt.err
			})

			assert.Equal(t, "resp", resp)
			assert.Equal(t, tt.err, err)
			out := buf.String()
			assert.Contains(t, out, tt.level)
			assert.Contains(t, out, tt.code)
			assert.Contains(t, out, "method=/calculator.v1.CalculatorService/Calculate")
		})
	}
}
