package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDKey is the metadata key carrying the request ID between the
// gateway and the services.
const RequestIDKey = "x-request-id"

// Logger wraps a logrus entry that carries the service name
type Logger struct {
	*logrus.Entry
}

// NewLogger creates a JSON logger for a service writing to stdout
func NewLogger(serviceName string) *Logger {
	return newLogger(serviceName, os.Stdout, &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	}, os.Getenv("LOG_LEVEL"))
}

// NewCLILogger creates a text logger on stderr. Only warnings are shown unless
// verbose is set.
func NewCLILogger(verbose bool) *Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return newLogger("nepdate-cli", os.Stderr, &logrus.TextFormatter{
		DisableTimestamp: true,
	}, level)
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *Logger {
	return newLogger("", io.Discard, &logrus.TextFormatter{}, "error")
}

func newLogger(serviceName string, out io.Writer, formatter logrus.Formatter, level string) *Logger {
	log := logrus.New()
	log.SetFormatter(formatter)
	log.SetOutput(out)
	log.SetLevel(parseLevel(level))

	return &Logger{Entry: log.WithField("service", serviceName)}
}

func parseLevel(level string) logrus.Level {
	switch level {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// WithRequestID adds request ID to logger
func (l *Logger) WithRequestID(requestID string) *logrus.Entry {
	return l.WithField("request_id", requestID)
}

// RequestIDFromContext returns the request ID propagated in incoming gRPC
// metadata, or an empty string.
func RequestIDFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if ids := md.Get(RequestIDKey); len(ids) > 0 {
		return ids[0]
	}
	return ""
}

// UnaryServerInterceptor returns a new unary server interceptor for logging
func UnaryServerInterceptor(logger *Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		entry := logger.WithFields(logrus.Fields{
			"method":     info.FullMethod,
			"type":       "unary",
			"request_id": RequestIDFromContext(ctx),
		})
		entry.Info("gRPC request")

		start := time.Now()
		resp, err := handler(ctx, req)

		entry = entry.WithField("duration_ms", time.Since(start).Milliseconds())
		if err != nil {
			entry.WithFields(logrus.Fields{
				"code":  status.Code(err).String(),
				"error": err.Error(),
			}).Error("gRPC request failed")
		} else {
			entry.Debug("gRPC request completed")
		}

		return resp, err
	}
}

// StreamServerInterceptor returns a new stream server interceptor for logging
func StreamServerInterceptor(logger *Logger) grpc.StreamServerInterceptor {
	return func(
		srv interface{},
		stream grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		entry := logger.WithFields(logrus.Fields{
			"method":     info.FullMethod,
			"type":       "stream",
			"request_id": RequestIDFromContext(stream.Context()),
		})
		entry.Info("gRPC stream started")

		err := handler(srv, stream)
		if err != nil {
			entry.WithField("error", err.Error()).Error("gRPC stream failed")
		} else {
			entry.Debug("gRPC stream completed")
		}

		return err
	}
}
