package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newBufferLogger(buf *bytes.Buffer) *Logger {
	return newLogger("calendar-service", buf, &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	}, "debug")
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	var lines []map[string]interface{}
	for _, raw := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &line))
		lines = append(lines, line)
	}
	return lines
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, parseLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, parseLevel("warn"))
	assert.Equal(t, logrus.ErrorLevel, parseLevel("error"))
	assert.Equal(t, logrus.InfoLevel, parseLevel(""))
	assert.Equal(t, logrus.InfoLevel, parseLevel("verbose"))
}

func TestLogger_ServiceField(t *testing.T) {
	var buf bytes.Buffer
	log := newBufferLogger(&buf)
	log.WithRequestID("req-1").Info("hello")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "calendar-service", lines[0]["service"])
	assert.Equal(t, "req-1", lines[0]["request_id"])
	assert.Equal(t, "hello", lines[0]["message"])
	assert.Contains(t, lines[0], "timestamp")
}

func TestUnaryServerInterceptor(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: "/nepdate.calendar.v1.CalendarService/ToBikram"}
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDKey, "abc"))

	t.Run("success", func(t *testing.T) {
		var buf bytes.Buffer
		interceptor := UnaryServerInterceptor(newBufferLogger(&buf))

		resp, err := interceptor(ctx, "req", info, func(ctx context.Context, req interface{}) (interface{}, error) {
			return "resp", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "resp", resp)

		lines := decodeLines(t, &buf)
		require.Len(t, lines, 2)
		assert.Equal(t, "gRPC request", lines[0]["message"])
		assert.Equal(t, "abc", lines[0]["request_id"])
		assert.Equal(t, "gRPC request completed", lines[1]["message"])
	})

	t.Run("failure", func(t *testing.T) {
		var buf bytes.Buffer
		interceptor := UnaryServerInterceptor(newBufferLogger(&buf))

		_, err := interceptor(ctx, "req", info, func(ctx context.Context, req interface{}) (interface{}, error) {
			return nil, status.Error(codes.InvalidArgument, "bad month")
		})
		require.Error(t, err)

		lines := decodeLines(t, &buf)
		require.Len(t, lines, 2)
		assert.Equal(t, "error", lines[1]["level"])
		assert.Equal(t, "InvalidArgument", lines[1]["code"])
	})
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDKey, "xyz"))
	assert.Equal(t, "xyz", RequestIDFromContext(ctx))
}
