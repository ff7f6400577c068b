package health

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	calendarpb "nepdate/shared/pb/calendar"
)

func fixed(status string) Check {
	return func(ctx context.Context) ServiceStatus {
		return ServiceStatus{Service: status, Status: status}
	}
}

func TestChecker_Run(t *testing.T) {
	tests := []struct {
		name   string
		checks []Check
		want   string
		code   int
	}{
		{"all healthy", []Check{fixed("healthy"), fixed("healthy")}, "healthy", http.StatusOK},
		{"one down", []Check{fixed("healthy"), fixed("healthy"), fixed("unhealthy")}, "degraded", http.StatusOK},
		{"most down", []Check{fixed("healthy"), fixed("unhealthy"), fixed("unhealthy")}, "unhealthy", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker(time.Second, tt.checks...)

			rec := httptest.NewRecorder()
			c.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.code, rec.Code)

			var resp Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp.Status)
			assert.Equal(t, len(tt.checks), resp.Summary.Total)
			assert.Len(t, resp.Services, len(tt.checks))
		})
	}
}

func TestTCPCheck(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()

	st := TCPCheck("mysql", lis.Addr().String())(context.Background())
	assert.Equal(t, "healthy", st.Status)

	lis.Close()
	st = TCPCheck("mysql", lis.Addr().String())(context.Background())
	assert.Equal(t, "unhealthy", st.Status)
	assert.NotEmpty(t, st.Error)
}

func TestGRPCCheck(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	hs := grpchealth.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus(calendarpb.ServiceName, healthpb.HealthCheckResponse_SERVING)
	go srv.Serve(lis)
	defer srv.Stop()

	// same dial options as the gateway's calendar connection
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		calendarpb.DialOption(),
	)
	require.NoError(t, err)
	defer conn.Close()

	check := GRPCCheck("calendar-service", conn, calendarpb.ServiceName)
	assert.Equal(t, "healthy", check(context.Background()).Status)

	hs.SetServingStatus(calendarpb.ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	st := check(context.Background())
	assert.Equal(t, "unhealthy", st.Status)
	assert.Equal(t, "NOT_SERVING", st.Error)
}
