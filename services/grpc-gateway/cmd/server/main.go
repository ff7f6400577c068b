package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"nepdate/services/grpc-gateway/internal/config"
	"nepdate/services/grpc-gateway/internal/handler"
	"nepdate/services/grpc-gateway/internal/health"
	"nepdate/services/grpc-gateway/internal/middleware"
	calendarpb "nepdate/shared/pb/calendar"
	"nepdate/shared/pkg/logger"
	"nepdate/shared/pkg/metrics"
)

func main() {
	log := logger.NewLogger("grpc-gateway")

	if err := godotenv.Load(); err != nil {
		log.Warnf(".env file not found: %v", err)
	}

	cfg := config.Load()
	m := metrics.NewMetrics("gateway")

	calendarConn, err := grpc.NewClient(cfg.CalendarServiceAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		calendarpb.DialOption(),
	)
	if err != nil {
		log.Fatalf("Failed to create calendar service client: %v", err)
	}
	defer calendarConn.Close()

	calendarHandler := handler.NewCalendarHandler(calendarpb.NewCalendarServiceClient(calendarConn), cfg.Locale)

	checks := []health.Check{health.GRPCCheck("calendar-service", calendarConn, calendarpb.ServiceName)}
	for _, target := range cfg.HealthTCPTargets {
		checks = append(checks, health.TCPCheck(target.Name, target.Addr))
	}

	mux := http.NewServeMux()
	mux.Handle("/health", health.NewChecker(3*time.Second, checks...))
	mux.Handle("/metrics", promhttp.Handler())
	for route, h := range calendarHandler.Routes() {
		mux.Handle(route, metrics.HTTPMiddleware(m, route, h))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	throttle := middleware.ThrottleMiddleware(middleware.NewThrottleStore(ctx), cfg.RateLimit, cfg.RateLimitPeriod)
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           middleware.CORSMiddleware(middleware.LoggingMiddleware(log)(throttle(mux))),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("HTTP gateway listening on port %s, calendar service at %s", cfg.HTTPPort, cfg.CalendarServiceAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gateway...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Forced shutdown: %v", err)
	}
	log.Info("Gateway stopped")
}
