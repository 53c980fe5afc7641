package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/campus-api/internal/handlers/daytime/v1alpha1"
	"github.com/KirkDiggler/campus-api/internal/orchestrators/timekeeper"
	"github.com/KirkDiggler/campus-api/internal/pkg/clock"
)

var (
	grpcPort      int
	redisAddr     string
	worldFile     string
	worldID       string
	metricsAddr   string
	frameInterval time.Duration
	saveInterval  time.Duration
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the campus clock: the frame loop, the ClockService gRPC API, the metrics endpoint and the tick stream.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 50051, "gRPC server port")
	serverCmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address; empty runs an embedded in-memory redis")
	serverCmd.Flags().StringVar(&worldFile, "world", "", "World definition YAML; empty uses the built-in campus")
	serverCmd.Flags().StringVar(&worldID, "world-id", "", "Override the world id from the world file")
	serverCmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "HTTP address serving /metrics and the /ticks websocket; empty disables")
	serverCmd.Flags().DurationVar(&frameInterval, "frame-interval", timekeeper.DefaultFrameInterval, "Real time between clock frames")
	serverCmd.Flags().DurationVar(&saveInterval, "save-interval", time.Minute, "Periodic save interval; zero saves only on shutdown")
}

func runServer(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	f, err := loadWorld(worldFile, worldID)
	if err != nil {
		return err
	}

	client, closeRedis, err := connectRedis(redisAddr)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer func() {
		if err := closeRedis(); err != nil {
			slog.Warn("failed to close redis", "error", err)
		}
	}()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	world, err := assemble(ctx, f, client, clock.New())
	if err != nil {
		return err
	}

	runner, err := timekeeper.NewRunner(&timekeeper.RunnerConfig{
		Service:       world.service,
		WallClock:     clock.New(),
		FrameInterval: frameInterval,
		SaveInterval:  saveInterval,
	})
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", grpcPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	logger := interceptorLogger(slog.Default())
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logger),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logger),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	clockHandler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		ClockService: world.service,
	})
	if err != nil {
		return fmt.Errorf("failed to create clock handler: %w", err)
	}
	v1alpha1.RegisterClockServiceServer(srv, clockHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	errChan := make(chan error, 3)
	go func() {
		slog.Info("gRPC server starting", "port", grpcPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	var metricsSrv *http.Server
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", world.recorder.Handler())
		mux.Handle("/ticks", world.stream)
		metricsSrv = &http.Server{
			Addr:              metricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			slog.Info("http server starting", "addr", metricsAddr)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("http server failed: %w", err)
			}
		}()
	}

	runnerDone := make(chan error, 1)
	go func() {
		runnerDone <- runner.Run(ctx)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errChan:
		cancel()
	}

	slog.Info("shutting down gRPC server")
	healthServer.Shutdown()

	// the runner saves on cancellation; wait for it before the redis client closes
	if err := <-runnerDone; err != nil {
		slog.Error("frame runner stopped with error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// hijacked websocket connections are not closed by Shutdown
	world.stream.Close()
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("failed to stop http server", "error", err)
		}
	}

	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		slog.Warn("graceful shutdown timeout exceeded, forcing stop")
		srv.Stop()
	case <-stopped:
		slog.Info("server stopped gracefully")
	}

	return serveErr
}

// interceptorLogger adapts slog to the grpc-middleware logger; the level
// values line up with slog's
func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}
