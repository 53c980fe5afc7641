package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/campus-api/internal/errors"
	"github.com/KirkDiggler/campus-api/internal/handlers/daytime/v1alpha1"
)

var (
	serverAddr    string
	clientTimeout time.Duration
)

var clockCmd = &cobra.Command{
	Use:   "clock METHOD [JSON]",
	Short: "Call the ClockService of a running server",
	Example: `  campus-api clock GetTime
  campus-api clock Skip '{"hours": 2}'
  campus-api clock AttendClass '{"class_name": "Physics"}'`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: clockMethods(),
	RunE:      runClock,
}

func init() {
	clockCmd.Flags().StringVar(&serverAddr, "addr", "localhost:50051", "Server address")
	clockCmd.Flags().DurationVar(&clientTimeout, "timeout", 10*time.Second, "Request timeout")
}

func clockMethods() []string {
	methods := make([]string, 0, len(v1alpha1.ClockServiceDesc.Methods))
	for _, m := range v1alpha1.ClockServiceDesc.Methods {
		methods = append(methods, m.MethodName)
	}
	return methods
}

func runClock(cmd *cobra.Command, args []string) error {
	method := args[0]
	if !slices.Contains(clockMethods(), method) {
		return fmt.Errorf("unknown method %q, want one of %v", method, clockMethods())
	}

	var req *structpb.Struct
	if len(args) == 2 {
		req = &structpb.Struct{}
		if err := protojson.Unmarshal([]byte(args[1]), req); err != nil {
			return fmt.Errorf("request must be a JSON object: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), clientTimeout)
	defer cancel()

	conn, err := grpc.NewClient(serverAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Warn("failed to close connection", "error", err)
		}
	}()

	resp, err := v1alpha1.NewClockServiceClient(conn).Call(ctx, method, req)
	if err != nil {
		e := errors.FromGRPCError(err)
		return fmt.Errorf("%s failed [%s]: %w", method, errors.GetCode(e), e)
	}

	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
