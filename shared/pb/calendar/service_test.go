package calendar

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type echoServer struct {
	UnimplementedCalendarServiceServer
}

func (echoServer) ToBikram(ctx context.Context, req *GregorianRequest) (*DateResponse, error) {
	return &DateResponse{Year: req.Year + 57, Month: req.Month, Day: req.Day, Formatted: req.Format}, nil
}

func startServer(t *testing.T, opts ...grpc.ServerOption) CalendarServiceClient {
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(opts...)
	RegisterCalendarServiceServer(srv, echoServer{})
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		DialOption(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewCalendarServiceClient(conn)
}

func TestCalendarService_RoundTrip(t *testing.T) {
	client := startServer(t)

	resp, err := client.ToBikram(context.Background(), &GregorianRequest{Year: 2025, Month: 8, Day: 30, Format: "y-m-d"})
	require.NoError(t, err)
	assert.Equal(t, int32(2082), resp.Year)
	assert.Equal(t, "y-m-d", resp.Formatted)
}

func TestCalendarService_Unimplemented(t *testing.T) {
	client := startServer(t)

	_, err := client.Today(context.Background(), &TodayRequest{})
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}

func TestCalendarService_Interceptor(t *testing.T) {
	var seen string
	client := startServer(t, grpc.UnaryInterceptor(func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		seen = info.FullMethod
		return handler(ctx, req)
	}))

	_, err := client.ToBikram(context.Background(), &GregorianRequest{Year: 2025, Month: 1, Day: 1})
	require.NoError(t, err)
	assert.Equal(t, CalendarService_ToBikram_FullMethodName, seen)
}

func TestJSONCodec(t *testing.T) {
	c := jsonCodec{}
	data, err := c.Marshal(&DaysInMonthResponse{Year: 2082, Month: 5, Days: 31, Method: "table"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"year":2082,"month":5,"days":31,"method":"table"}`, string(data))

	var out DaysInMonthResponse
	require.NoError(t, c.Unmarshal(data, &out))
	assert.Equal(t, int32(31), out.Days)
	assert.Equal(t, "json", c.Name())
}
