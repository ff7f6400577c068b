package handler

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"nepdate/services/calendar-service/internal/models"
	"nepdate/services/calendar-service/internal/service"
	calendarpb "nepdate/shared/pb/calendar"
	"nepdate/shared/pkg/bikram"
	"nepdate/shared/pkg/helpers"
)

// Mock CalendarService
type mockCalendarService struct {
	toBikramFunc      func(ctx context.Context, year, month, day int) (*models.Conversion, error)
	toGregorianFunc   func(ctx context.Context, year, month, day int) (*models.Conversion, error)
	daysInMonthFunc   func(ctx context.Context, year, month int) (int, bikram.Method, error)
	todayFunc         func(ctx context.Context, now time.Time, loc *time.Location) (*models.TodaySummary, error)
	monthCalendarFunc func(ctx context.Context, year, month int) ([]models.MonthDay, bikram.Method, error)
}

func (m *mockCalendarService) ToBikram(ctx context.Context, year, month, day int) (*models.Conversion, error) {
	if m.toBikramFunc != nil {
		return m.toBikramFunc(ctx, year, month, day)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCalendarService) ToGregorian(ctx context.Context, year, month, day int) (*models.Conversion, error) {
	if m.toGregorianFunc != nil {
		return m.toGregorianFunc(ctx, year, month, day)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCalendarService) DaysInMonth(ctx context.Context, year, month int) (int, bikram.Method, error) {
	if m.daysInMonthFunc != nil {
		return m.daysInMonthFunc(ctx, year, month)
	}
	return 0, "", errors.New("not implemented")
}

func (m *mockCalendarService) Today(ctx context.Context, now time.Time, loc *time.Location) (*models.TodaySummary, error) {
	if m.todayFunc != nil {
		return m.todayFunc(ctx, now, loc)
	}
	return nil, errors.New("not implemented")
}

func (m *mockCalendarService) MonthCalendar(ctx context.Context, year, month int) ([]models.MonthDay, bikram.Method, error) {
	if m.monthCalendarFunc != nil {
		return m.monthCalendarFunc(ctx, year, month)
	}
	return nil, "", errors.New("not implemented")
}

func bhadra14() *models.Conversion {
	return &models.Conversion{
		Direction: models.ToBikram,
		Source:    bikram.Date{Year: 2025, Month: 8, Day: 30},
		Result:    bikram.Date{Year: 2082, Month: 5, Day: 14},
		Weekday:   time.Saturday,
		Method:    bikram.MethodTable,
	}
}

func validationFields(t *testing.T, err error) map[string]string {
	t.Helper()
	st, ok := status.FromError(err)
	require.True(t, ok)
	require.Equal(t, codes.InvalidArgument, st.Code())
	fields, ok := helpers.DecodeValidationError(st.Message())
	require.True(t, ok, "message is not a validation payload: %s", st.Message())
	return fields
}

func TestCalendarHandler_ToBikram(t *testing.T) {
	ctx := context.Background()

	t.Run("formats result", func(t *testing.T) {
		mockService := &mockCalendarService{
			toBikramFunc: func(ctx context.Context, year, month, day int) (*models.Conversion, error) {
				assert.Equal(t, 2025, year)
				assert.Equal(t, 8, month)
				assert.Equal(t, 30, day)
				return bhadra14(), nil
			},
		}
		h := NewCalendarHandler(mockService)

		resp, err := h.ToBikram(ctx, &calendarpb.GregorianRequest{Year: 2025, Month: 8, Day: 30})
		require.NoError(t, err)
		assert.Equal(t, int32(2082), resp.Year)
		assert.Equal(t, int32(5), resp.Month)
		assert.Equal(t, int32(14), resp.Day)
		assert.Equal(t, "Bhadra", resp.MonthName)
		assert.Equal(t, "Shanivar", resp.WeekdayName)
		assert.Equal(t, int32(6), resp.Weekday)
		assert.Equal(t, "table", resp.Method)
		assert.Equal(t, "2082-5-14", resp.Formatted)
	})

	t.Run("custom layouts", func(t *testing.T) {
		mockService := &mockCalendarService{
			toBikramFunc: func(ctx context.Context, year, month, day int) (*models.Conversion, error) {
				return bhadra14(), nil
			},
		}
		h := NewCalendarHandler(mockService)

		resp, err := h.ToBikram(ctx, &calendarpb.GregorianRequest{Year: 2025, Month: 8, Day: 30, Format: "d M, y, w", Unicode: true})
		require.NoError(t, err)
		assert.Equal(t, "१४ भाद्रपद, २०८२, शनिबार", resp.Formatted)
		assert.Equal(t, "भाद्रपद", resp.MonthName)

		resp, err = h.ToBikram(ctx, &calendarpb.GregorianRequest{Year: 2025, Month: 8, Day: 30, Format: "%Y/%m/%d %A"})
		require.NoError(t, err)
		assert.Equal(t, "2082/05/14 Shanivar", resp.Formatted)
	})

	t.Run("validation", func(t *testing.T) {
		h := NewCalendarHandler(&mockCalendarService{})

		_, err := h.ToBikram(ctx, &calendarpb.GregorianRequest{Year: 2023, Month: 2, Day: 29})
		fields := validationFields(t, err)
		assert.Contains(t, fields, "day")

		_, err = h.ToBikram(ctx, &calendarpb.GregorianRequest{Year: 0, Month: 13, Day: 1})
		fields = validationFields(t, err)
		assert.Contains(t, fields, "year")
		assert.Contains(t, fields, "month")

		_, err = h.ToBikram(ctx, &calendarpb.GregorianRequest{Year: 2025, Month: 1, Day: 1, Locale: "fr"})
		fields = validationFields(t, err)
		assert.Contains(t, fields, "locale")
	})

	t.Run("non convergence is internal", func(t *testing.T) {
		mockService := &mockCalendarService{
			toBikramFunc: func(ctx context.Context, year, month, day int) (*models.Conversion, error) {
				return nil, fmt.Errorf("wrapped: %w", bikram.ErrNonConvergence)
			},
		}
		h := NewCalendarHandler(mockService)

		_, err := h.ToBikram(ctx, &calendarpb.GregorianRequest{Year: 2100, Month: 1, Day: 1})
		assert.Equal(t, codes.Internal, status.Code(err))
	})
}

func TestCalendarHandler_ToGregorian(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockService := &mockCalendarService{
			toGregorianFunc: func(ctx context.Context, year, month, day int) (*models.Conversion, error) {
				return &models.Conversion{
					Direction: models.ToGregorian,
					Source:    bikram.Date{Year: 2082, Month: 5, Day: 14},
					Result:    bikram.Date{Year: 2025, Month: 8, Day: 30},
					Weekday:   time.Saturday,
					Method:    bikram.MethodTable,
				}, nil
			},
		}
		h := NewCalendarHandler(mockService)

		resp, err := h.ToGregorian(ctx, &calendarpb.BikramRequest{Year: 2082, Month: 5, Day: 14, Format: "%c"})
		require.NoError(t, err)
		assert.Equal(t, int32(2025), resp.Year)
		assert.Equal(t, "August", resp.MonthName)
		assert.Equal(t, "Saturday", resp.WeekdayName)
		assert.Equal(t, "Sat Aug 30 00:00:00 2025", resp.Formatted)
	})

	t.Run("day that does not exist", func(t *testing.T) {
		mockService := &mockCalendarService{
			toGregorianFunc: func(ctx context.Context, year, month, day int) (*models.Conversion, error) {
				return nil, fmt.Errorf("failed: %w", bikram.ErrInvalidDate)
			},
		}
		h := NewCalendarHandler(mockService)

		_, err := h.ToGregorian(ctx, &calendarpb.BikramRequest{Year: 2000, Month: 1, Day: 31})
		st, _ := status.FromError(err)
		assert.Equal(t, codes.InvalidArgument, st.Code())
		assert.Equal(t, "The date 2000-01-31 does not exist", st.Message())

		_, err = h.ToGregorian(ctx, &calendarpb.BikramRequest{Year: 2000, Month: 1, Day: 31, Locale: "ne"})
		st, _ = status.FromError(err)
		assert.Equal(t, "मिति 2000-01-31 अस्तित्वमा छैन", st.Message())
	})

	t.Run("day above 32 is rejected before conversion", func(t *testing.T) {
		h := NewCalendarHandler(&mockCalendarService{})

		_, err := h.ToGregorian(ctx, &calendarpb.BikramRequest{Year: 2082, Month: 5, Day: 33})
		fields := validationFields(t, err)
		assert.Equal(t, "The day field must be a day between 1 and 32", fields["day"])
	})
}

func TestCalendarHandler_DaysInMonth(t *testing.T) {
	ctx := context.Background()
	mockService := &mockCalendarService{
		daysInMonthFunc: func(ctx context.Context, year, month int) (int, bikram.Method, error) {
			return 31, bikram.MethodAstronomical, nil
		},
	}
	h := NewCalendarHandler(mockService)

	resp, err := h.DaysInMonth(ctx, &calendarpb.MonthRequest{Year: 1999, Month: 12})
	require.NoError(t, err)
	assert.Equal(t, int32(31), resp.Days)
	assert.Equal(t, "astronomical", resp.Method)

	_, err = h.DaysInMonth(ctx, &calendarpb.MonthRequest{Year: 1999, Month: 0})
	fields := validationFields(t, err)
	assert.Contains(t, fields, "month")
}

func TestCalendarHandler_Today(t *testing.T) {
	ctx := context.Background()
	// 11:26:30 in Kathmandu
	now := time.Date(2025, 8, 30, 5, 41, 30, 0, time.UTC)

	h := NewCalendarHandler(service.NewCalendarService(nil))
	h.now = func() time.Time { return now }

	t.Run("default zone", func(t *testing.T) {
		resp, err := h.Today(ctx, &calendarpb.TodayRequest{})
		require.NoError(t, err)
		assert.Equal(t, "2025-08-30 11:26:30", resp.Gregorian.Formatted)
		assert.Equal(t, "2082-05-14 11:26:30", resp.Bikram.Formatted)
		assert.Equal(t, int32(31), resp.DaysInMonth)
		assert.Equal(t, "1404/06/08", resp.Jalali)
		assert.Equal(t, "table", resp.Bikram.Method)
	})

	t.Run("unicode", func(t *testing.T) {
		resp, err := h.Today(ctx, &calendarpb.TodayRequest{Unicode: true})
		require.NoError(t, err)
		assert.Equal(t, "२०८२-०५-१४ ११:२६:३०", resp.Bikram.Formatted)
		assert.Equal(t, "शनिबार", resp.Bikram.WeekdayName)
	})

	t.Run("explicit zone", func(t *testing.T) {
		resp, err := h.Today(ctx, &calendarpb.TodayRequest{Timezone: "UTC"})
		require.NoError(t, err)
		assert.Equal(t, "UTC", resp.Timezone)
		assert.Equal(t, "2025-08-30 05:41:30", resp.Gregorian.Formatted)
	})

	t.Run("unknown zone", func(t *testing.T) {
		_, err := h.Today(ctx, &calendarpb.TodayRequest{Timezone: "Mars/Olympus"})
		fields := validationFields(t, err)
		assert.Equal(t, "The timezone field is invalid", fields["timezone"])
	})
}

func TestCalendarHandler_MonthCalendar(t *testing.T) {
	ctx := context.Background()
	h := NewCalendarHandler(service.NewCalendarService(nil))

	resp, err := h.MonthCalendar(ctx, &calendarpb.MonthRequest{Year: 2082, Month: 5, Unicode: true})
	require.NoError(t, err)
	assert.Equal(t, "भाद्रपद", resp.MonthName)
	assert.Equal(t, "table", resp.Method)
	require.Len(t, resp.Days, 31)
	assert.Equal(t, int32(14), resp.Days[13].Day)
	assert.Equal(t, int32(30), resp.Days[13].Gregorian.Day)
	assert.Equal(t, int32(6), resp.Days[13].Weekday)
	assert.Equal(t, "२०२५-८-३०", resp.Days[13].Gregorian.Formatted)
}

func TestCalendarHandler_OverGRPC(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterCalendarHandler(srv, service.NewCalendarService(nil))
	go srv.Serve(lis)
	defer srv.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		calendarpb.DialOption(),
	)
	require.NoError(t, err)
	defer conn.Close()

	client := calendarpb.NewCalendarServiceClient(conn)
	ctx := context.Background()

	resp, err := client.ToBikram(ctx, &calendarpb.GregorianRequest{Year: 2034, Month: 4, Day: 14})
	require.NoError(t, err)
	assert.Equal(t, "2091-1-1", resp.Formatted)
	assert.Equal(t, "astronomical", resp.Method)

	back, err := client.ToGregorian(ctx, &calendarpb.BikramRequest{Year: 2091, Month: 1, Day: 1})
	require.NoError(t, err)
	assert.Equal(t, "2034-4-14", back.Formatted)

	_, err = client.ToGregorian(ctx, &calendarpb.BikramRequest{Year: 2082, Month: 5, Day: 32})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
