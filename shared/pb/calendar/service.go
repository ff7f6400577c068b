package calendar

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "nepdate.calendar.v1.CalendarService"

const (
	CalendarService_ToBikram_FullMethodName      = "/" + ServiceName + "/ToBikram"
	CalendarService_ToGregorian_FullMethodName   = "/" + ServiceName + "/ToGregorian"
	CalendarService_DaysInMonth_FullMethodName   = "/" + ServiceName + "/DaysInMonth"
	CalendarService_Today_FullMethodName         = "/" + ServiceName + "/Today"
	CalendarService_MonthCalendar_FullMethodName = "/" + ServiceName + "/MonthCalendar"
)

// CalendarServiceClient is the client API for CalendarService.
type CalendarServiceClient interface {
	ToBikram(ctx context.Context, in *GregorianRequest, opts ...grpc.CallOption) (*DateResponse, error)
	ToGregorian(ctx context.Context, in *BikramRequest, opts ...grpc.CallOption) (*DateResponse, error)
	DaysInMonth(ctx context.Context, in *MonthRequest, opts ...grpc.CallOption) (*DaysInMonthResponse, error)
	Today(ctx context.Context, in *TodayRequest, opts ...grpc.CallOption) (*TodayResponse, error)
	MonthCalendar(ctx context.Context, in *MonthRequest, opts ...grpc.CallOption) (*MonthCalendarResponse, error)
}

type calendarServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCalendarServiceClient(cc grpc.ClientConnInterface) CalendarServiceClient {
	return &calendarServiceClient{cc}
}

func (c *calendarServiceClient) ToBikram(ctx context.Context, in *GregorianRequest, opts ...grpc.CallOption) (*DateResponse, error) {
	out := new(DateResponse)
	if err := c.cc.Invoke(ctx, CalendarService_ToBikram_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *calendarServiceClient) ToGregorian(ctx context.Context, in *BikramRequest, opts ...grpc.CallOption) (*DateResponse, error) {
	out := new(DateResponse)
	if err := c.cc.Invoke(ctx, CalendarService_ToGregorian_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *calendarServiceClient) DaysInMonth(ctx context.Context, in *MonthRequest, opts ...grpc.CallOption) (*DaysInMonthResponse, error) {
	out := new(DaysInMonthResponse)
	if err := c.cc.Invoke(ctx, CalendarService_DaysInMonth_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *calendarServiceClient) Today(ctx context.Context, in *TodayRequest, opts ...grpc.CallOption) (*TodayResponse, error) {
	out := new(TodayResponse)
	if err := c.cc.Invoke(ctx, CalendarService_Today_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *calendarServiceClient) MonthCalendar(ctx context.Context, in *MonthRequest, opts ...grpc.CallOption) (*MonthCalendarResponse, error) {
	out := new(MonthCalendarResponse)
	if err := c.cc.Invoke(ctx, CalendarService_MonthCalendar_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CalendarServiceServer is the server API for CalendarService.
type CalendarServiceServer interface {
	ToBikram(context.Context, *GregorianRequest) (*DateResponse, error)
	ToGregorian(context.Context, *BikramRequest) (*DateResponse, error)
	DaysInMonth(context.Context, *MonthRequest) (*DaysInMonthResponse, error)
	Today(context.Context, *TodayRequest) (*TodayResponse, error)
	MonthCalendar(context.Context, *MonthRequest) (*MonthCalendarResponse, error)
	mustEmbedUnimplementedCalendarServiceServer()
}

// UnimplementedCalendarServiceServer must be embedded to have forward compatible implementations.
type UnimplementedCalendarServiceServer struct{}

func (UnimplementedCalendarServiceServer) ToBikram(context.Context, *GregorianRequest) (*DateResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ToBikram not implemented")
}
func (UnimplementedCalendarServiceServer) ToGregorian(context.Context, *BikramRequest) (*DateResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ToGregorian not implemented")
}
func (UnimplementedCalendarServiceServer) DaysInMonth(context.Context, *MonthRequest) (*DaysInMonthResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DaysInMonth not implemented")
}
func (UnimplementedCalendarServiceServer) Today(context.Context, *TodayRequest) (*TodayResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Today not implemented")
}
func (UnimplementedCalendarServiceServer) MonthCalendar(context.Context, *MonthRequest) (*MonthCalendarResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method MonthCalendar not implemented")
}
func (UnimplementedCalendarServiceServer) mustEmbedUnimplementedCalendarServiceServer() {}

func RegisterCalendarServiceServer(s grpc.ServiceRegistrar, srv CalendarServiceServer) {
	s.RegisterService(&CalendarService_ServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](
	method string,
	call func(CalendarServiceServer, context.Context, *Req) (*Resp, error),
) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CalendarServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(CalendarServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// CalendarService_ServiceDesc is the grpc.ServiceDesc for CalendarService.
var CalendarService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalendarServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ToBikram",
			Handler:    unaryHandler(CalendarService_ToBikram_FullMethodName, CalendarServiceServer.ToBikram),
		},
		{
			MethodName: "ToGregorian",
			Handler:    unaryHandler(CalendarService_ToGregorian_FullMethodName, CalendarServiceServer.ToGregorian),
		},
		{
			MethodName: "DaysInMonth",
			Handler:    unaryHandler(CalendarService_DaysInMonth_FullMethodName, CalendarServiceServer.DaysInMonth),
		},
		{
			MethodName: "Today",
			Handler:    unaryHandler(CalendarService_Today_FullMethodName, CalendarServiceServer.Today),
		},
		{
			MethodName: "MonthCalendar",
			Handler:    unaryHandler(CalendarService_MonthCalendar_FullMethodName, CalendarServiceServer.MonthCalendar),
		},
	},
	Streams: []grpc.StreamDesc{},
}
