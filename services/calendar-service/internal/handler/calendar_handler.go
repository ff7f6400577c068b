package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"nepdate/services/calendar-service/internal/models"
	calendarpb "nepdate/shared/pb/calendar"
	"nepdate/shared/pkg/bikram"
	"nepdate/shared/pkg/helpers"
)

// CalendarService is the business layer the handler depends on
type CalendarService interface {
	ToBikram(ctx context.Context, year, month, day int) (*models.Conversion, error)
	ToGregorian(ctx context.Context, year, month, day int) (*models.Conversion, error)
	DaysInMonth(ctx context.Context, year, month int) (int, bikram.Method, error)
	Today(ctx context.Context, now time.Time, loc *time.Location) (*models.TodaySummary, error)
	MonthCalendar(ctx context.Context, year, month int) ([]models.MonthDay, bikram.Method, error)
}

type CalendarHandler struct {
	calendarpb.UnimplementedCalendarServiceServer
	service   CalendarService
	validator *helpers.CustomValidator
	now       func() time.Time
}

func NewCalendarHandler(svc CalendarService) *CalendarHandler {
	return &CalendarHandler{
		service:   svc,
		validator: helpers.NewCustomValidator(),
		now:       time.Now,
	}
}

func RegisterCalendarHandler(grpcServer grpc.ServiceRegistrar, svc CalendarService) {
	calendarpb.RegisterCalendarServiceServer(grpcServer, NewCalendarHandler(svc))
}

// ToBikram converts a Gregorian date to BS
func (h *CalendarHandler) ToBikram(ctx context.Context, req *calendarpb.GregorianRequest) (*calendarpb.DateResponse, error) {
	locale := localeOf(req.Locale)
	if err := h.validate(req, locale); err != nil {
		return nil, err
	}

	conv, err := h.service.ToBikram(ctx, int(req.Year), int(req.Month), int(req.Day))
	if err != nil {
		return nil, conversionError(err, req.Year, req.Month, req.Day, locale)
	}

	return dateResponse(conv.Result, conv.Weekday, helpers.CalendarBikram, conv.Method, req.Format, req.Unicode), nil
}

// ToGregorian converts a BS date to Gregorian
func (h *CalendarHandler) ToGregorian(ctx context.Context, req *calendarpb.BikramRequest) (*calendarpb.DateResponse, error) {
	locale := localeOf(req.Locale)
	if err := h.validate(req, locale); err != nil {
		return nil, err
	}

	conv, err := h.service.ToGregorian(ctx, int(req.Year), int(req.Month), int(req.Day))
	if err != nil {
		return nil, conversionError(err, req.Year, req.Month, req.Day, locale)
	}

	return dateResponse(conv.Result, conv.Weekday, helpers.CalendarGregorian, conv.Method, req.Format, req.Unicode), nil
}

func (h *CalendarHandler) DaysInMonth(ctx context.Context, req *calendarpb.MonthRequest) (*calendarpb.DaysInMonthResponse, error) {
	locale := localeOf(req.Locale)
	if err := h.validate(req, locale); err != nil {
		return nil, err
	}

	days, method, err := h.service.DaysInMonth(ctx, int(req.Year), int(req.Month))
	if err != nil {
		return nil, conversionError(err, req.Year, req.Month, 1, locale)
	}

	return &calendarpb.DaysInMonthResponse{
		Year:   req.Year,
		Month:  req.Month,
		Days:   int32(days),
		Method: string(method),
	}, nil
}

// Today describes the current day. The clock is formatted in the requested
// time zone.
func (h *CalendarHandler) Today(ctx context.Context, req *calendarpb.TodayRequest) (*calendarpb.TodayResponse, error) {
	var loc *time.Location
	if req.Timezone != "" {
		l, err := time.LoadLocation(req.Timezone)
		if err != nil {
			msg := fmt.Sprintf(helpers.GetLocaleTranslations(helpers.GetDefaultLocale()).Invalid, "timezone")
			return nil, status.Error(codes.InvalidArgument, helpers.EncodeValidationError(map[string]string{"timezone": msg}))
		}
		loc = l
	}

	now := h.now()
	today, err := h.service.Today(ctx, now, loc)
	if err != nil {
		return nil, conversionError(err, 0, 0, 0, helpers.GetDefaultLocale())
	}
	if today.Location == nil {
		today.Location = time.UTC
	}
	local := now.In(today.Location)

	gregorian := dateResponse(today.Gregorian, today.Weekday, helpers.CalendarGregorian, today.Method, "", req.Unicode)
	gregorian.Formatted = clockFormat(today.Gregorian, local, helpers.CalendarGregorian, req.Unicode)
	bs := dateResponse(today.Bikram, today.Weekday, helpers.CalendarBikram, today.Method, "", req.Unicode)
	bs.Formatted = clockFormat(today.Bikram, local, helpers.CalendarBikram, req.Unicode)

	return &calendarpb.TodayResponse{
		Gregorian:   gregorian,
		Bikram:      bs,
		DaysInMonth: int32(today.DaysInMonth),
		Jalali:      today.Jalali,
		Timezone:    today.Location.String(),
	}, nil
}

// MonthCalendar lists the days of a BS month
func (h *CalendarHandler) MonthCalendar(ctx context.Context, req *calendarpb.MonthRequest) (*calendarpb.MonthCalendarResponse, error) {
	locale := localeOf(req.Locale)
	if err := h.validate(req, locale); err != nil {
		return nil, err
	}

	days, method, err := h.service.MonthCalendar(ctx, int(req.Year), int(req.Month))
	if err != nil {
		return nil, conversionError(err, req.Year, req.Month, 1, locale)
	}

	resp := &calendarpb.MonthCalendarResponse{
		Year:      req.Year,
		Month:     req.Month,
		MonthName: helpers.MonthName(int(req.Month), helpers.CalendarBikram, req.Unicode),
		Method:    string(method),
		Days:      make([]*calendarpb.MonthDay, 0, len(days)),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, &calendarpb.MonthDay{
			Day:       int32(d.Bikram.Day),
			Gregorian: dateResponse(d.Gregorian, d.Weekday, helpers.CalendarGregorian, method, "", req.Unicode),
			Weekday:   int32(d.Weekday),
		})
	}
	return resp, nil
}

func (h *CalendarHandler) validate(req interface{}, locale string) error {
	err := h.validator.Validate(req)
	if err == nil {
		return nil
	}
	fields := helpers.FieldErrors(err, locale)
	if len(fields) == 0 {
		return status.Errorf(codes.InvalidArgument, "invalid request: %v", err)
	}
	return status.Error(codes.InvalidArgument, helpers.EncodeValidationError(fields))
}

func localeOf(locale string) string {
	if locale == "" {
		return helpers.GetDefaultLocale()
	}
	return locale
}

// conversionError maps converter failures to gRPC codes. A date that does
// not exist is the caller's mistake; a search that does not converge is ours.
func conversionError(err error, year, month, day int32, locale string) error {
	switch {
	case errors.Is(err, bikram.ErrInvalidDate):
		date := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		return status.Error(codes.InvalidArgument, helpers.DateNotExistMessage(date, locale))
	case errors.Is(err, bikram.ErrNonConvergence):
		return status.Errorf(codes.Internal, "conversion failed: %v", err)
	default:
		return status.Errorf(codes.Internal, "calendar error: %v", err)
	}
}

func dateResponse(d bikram.Date, wd time.Weekday, cal helpers.Calendar, method bikram.Method, layout string, unicode bool) *calendarpb.DateResponse {
	return &calendarpb.DateResponse{
		Year:        int32(d.Year),
		Month:       int32(d.Month),
		Day:         int32(d.Day),
		MonthName:   helpers.MonthName(d.Month, cal, unicode),
		Weekday:     int32(wd),
		WeekdayName: helpers.WeekdayName(wd, cal, unicode),
		Method:      string(method),
		Formatted:   format(helpers.DateView{Year: d.Year, Month: d.Month, Day: d.Day, Weekday: wd, Calendar: cal}, layout, unicode),
	}
}

func clockFormat(d bikram.Date, local time.Time, cal helpers.Calendar, unicode bool) string {
	return format(helpers.DateView{
		Year: d.Year, Month: d.Month, Day: d.Day,
		Weekday: local.Weekday(),
		Hour:    local.Hour(), Minute: local.Minute(), Second: local.Second(),
		Calendar: cal,
	}, helpers.DefaultClockLayout, unicode)
}

// format picks the strftime formatter when the layout has a directive.
func format(v helpers.DateView, layout string, unicode bool) string {
	if layout == "" {
		layout = helpers.DefaultSimpleLayout
	}
	if strings.Contains(layout, "%") {
		return helpers.FormatStrftime(v, layout, unicode)
	}
	return helpers.FormatSimple(v, layout, unicode)
}
