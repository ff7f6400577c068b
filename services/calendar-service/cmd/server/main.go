package main

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"nepdate/services/calendar-service/internal/config"
	"nepdate/services/calendar-service/internal/handler"
	"nepdate/services/calendar-service/internal/repository"
	"nepdate/services/calendar-service/internal/service"
	calendarpb "nepdate/shared/pb/calendar"
	"nepdate/shared/pkg/bikram"
	"nepdate/shared/pkg/db"
	"nepdate/shared/pkg/logger"
	"nepdate/shared/pkg/metrics"
)

// databaseHealthService reports the MySQL connection on the gRPC health
// server. Conversions keep working from the loaded table when it is down.
const databaseHealthService = "mysql"

func main() {
	log := logger.NewLogger("calendar-service")

	if err := godotenv.Load(); err != nil {
		log.Warnf(".env file not found: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	m := metrics.NewMetrics("calendar")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := []bikram.Option{}
	if cfg.MaxSearchSteps > 0 {
		opts = append(opts, bikram.WithMaxSearchSteps(cfg.MaxSearchSteps))
	}

	healthServer := health.NewServer()

	if cfg.DB != nil {
		conn, table := openCalendarTable(ctx, cfg, log)
		defer conn.Close()
		healthServer.SetServingStatus(databaseHealthService, healthpb.HealthCheckResponse_SERVING)
		go conn.Watch(ctx, 15*time.Second, func(s sql.DBStats, err error) {
			m.RecordDBPoolStats(s.OpenConnections, s.InUse, s.Idle, s.WaitCount, s.WaitDuration)
			status := healthpb.HealthCheckResponse_SERVING
			if err != nil {
				log.Warnf("Database ping failed: %v", err)
				status = healthpb.HealthCheckResponse_NOT_SERVING
			}
			healthServer.SetServingStatus(databaseHealthService, status)
		})
		opts = append(opts, bikram.WithTable(table))
	}

	svcOpts := []service.Option{service.WithMetrics(m), service.WithLogger(log)}
	if cfg.Redis != nil {
		client := redis.NewClient(cfg.Redis)
		defer client.Close()

		pingCtx, pingCancel := context.WithTimeout(ctx, 3*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Warnf("Redis unavailable, continuing with lookups only: %v", err)
		} else {
			log.Infof("Conversion cache enabled at %s (ttl %s)", cfg.Redis.Addr, cfg.CacheTTL)
		}
		pingCancel()
		svcOpts = append(svcOpts, service.WithCache(repository.NewCacheRepository(client, cfg.CacheTTL)))
	}

	calendarService := service.NewCalendarService(bikram.New(opts...), svcOpts...)

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logger.UnaryServerInterceptor(log),
			metrics.UnaryServerInterceptor(m),
		),
		grpc.ChainStreamInterceptor(logger.StreamServerInterceptor(log)),
	)
	handler.RegisterCalendarHandler(grpcServer, calendarService)

	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(calendarpb.ServiceName, healthpb.HealthCheckResponse_SERVING)

	metricsServer := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Metrics server failed: %v", err)
		}
	}()

	listener, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		log.Fatalf("Failed to listen on port %s: %v", cfg.GRPCPort, err)
	}

	log.Infof("Calendar service listening on port %s (metrics on %s)", cfg.GRPCPort, cfg.MetricsPort)

	go func() {
		if err := grpcServer.Serve(listener); err != nil {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	cancel()
	healthServer.Shutdown()
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	metricsServer.Shutdown(shutdownCtx)
	log.Info("Server stopped")
}

// openCalendarTable connects to MySQL and loads the month table from
// bs_calendar_years. An empty table keeps the compiled-in one.
func openCalendarTable(ctx context.Context, cfg *config.Config, log *logger.Logger) (*db.Connection, *bikram.Table) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	conn, err := db.NewConnection(connectCtx, *cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Info("Successfully connected to database")

	repo := repository.NewCalendarRepository(conn.DB)
	if cfg.MigrateSchema {
		if err := repo.CreateTable(connectCtx); err != nil {
			log.Fatalf("Failed to create calendar table: %v", err)
		}
	}
	if err := repo.CheckSchema(connectCtx); err != nil {
		log.Fatalf("Calendar table schema mismatch: %v", err)
	}

	table, err := service.LoadTable(connectCtx, repo, cfg.SeedCalendar)
	if err != nil {
		log.Fatalf("Failed to load calendar table: %v", err)
	}
	if table == nil {
		log.Warn("bs_calendar_years is empty, using the compiled-in month table")
		return conn, nil
	}

	log.Infof("Loaded %d calendar years (%d-%d) from database", table.Years(), bikram.EpochYear, table.LastYear())
	return conn, table
}
