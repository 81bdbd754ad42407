package clock

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "clockwidget.v1.ClockControl"

// Full method names.
const (
	SetAlarmMethod   = "/" + ServiceName + "/SetAlarm"
	StartTimerMethod = "/" + ServiceName + "/StartTimer"
	StopTimerMethod  = "/" + ServiceName + "/StopTimer"
	ResetTimerMethod = "/" + ServiceName + "/ResetTimer"
	GetStatusMethod  = "/" + ServiceName + "/GetStatus"
)

// ControlServer is the server API for the ClockControl service.
type ControlServer interface {
	SetAlarm(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
	StartTimer(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	StopTimer(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	ResetTimer(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	GetStatus(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// ControlServiceDesc describes the ClockControl service for grpc.Server.
//
//nolint:gochecknoglobals // Service descriptors are package-level by gRPC convention.
var ControlServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ControlServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SetAlarm",
			Handler:    setAlarmHandler,
		},
		{
			MethodName: "StartTimer",
			Handler:    emptyHandler(StartTimerMethod, ControlServer.StartTimer),
		},
		{
			MethodName: "StopTimer",
			Handler:    emptyHandler(StopTimerMethod, ControlServer.StopTimer),
		},
		{
			MethodName: "ResetTimer",
			Handler:    emptyHandler(ResetTimerMethod, ControlServer.ResetTimer),
		},
		{
			MethodName: "GetStatus",
			Handler:    emptyHandler(GetStatusMethod, ControlServer.GetStatus),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "clockwidget/v1/control.proto",
}

// RegisterControlServer registers srv on registrar.
func RegisterControlServer(registrar grpc.ServiceRegistrar, srv ControlServer) {
	registrar.RegisterService(&ControlServiceDesc, srv)
}

// setAlarmHandler decodes a StringValue and calls SetAlarm through the interceptor chain.
func setAlarmHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(ControlServer).SetAlarm(ctx, in) //nolint:forcetypeassert // Guaranteed by HandlerType.
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SetAlarmMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		//nolint:forcetypeassert // Guaranteed by HandlerType and dec.
		return srv.(ControlServer).SetAlarm(ctx, req.(*wrapperspb.StringValue))
	}

	return interceptor(ctx, in, info, handler)
}

// emptyHandler builds a method handler for RPCs taking google.protobuf.Empty.
func emptyHandler(
	fullMethod string,
	call func(ControlServer, context.Context, *emptypb.Empty) (*structpb.Struct, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(emptypb.Empty)
		if err := dec(in); err != nil {
			return nil, err
		}

		if interceptor == nil {
			return call(srv.(ControlServer), ctx, in) //nolint:forcetypeassert // Guaranteed by HandlerType.
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}

		handler := func(ctx context.Context, req any) (any, error) {
			//nolint:forcetypeassert // Guaranteed by HandlerType and dec.
			return call(srv.(ControlServer), ctx, req.(*emptypb.Empty))
		}

		return interceptor(ctx, in, info, handler)
	}
}

// ControlClient is the client stub for the ClockControl service.
type ControlClient struct {
	// cc is the connection RPCs are invoked on.
	cc grpc.ClientConnInterface
}

// NewControlClient creates a client stub bound to cc.
func NewControlClient(cc grpc.ClientConnInterface) *ControlClient {
	return &ControlClient{
		cc: cc,
	}
}

// SetAlarm arms the remote alarm.
func (c *ControlClient) SetAlarm(
	ctx context.Context,
	in *wrapperspb.StringValue,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, SetAlarmMethod, in, opts...)
}

// StartTimer starts the remote stopwatch.
func (c *ControlClient) StartTimer(
	ctx context.Context,
	in *emptypb.Empty,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, StartTimerMethod, in, opts...)
}

// StopTimer stops the remote stopwatch.
func (c *ControlClient) StopTimer(
	ctx context.Context,
	in *emptypb.Empty,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, StopTimerMethod, in, opts...)
}

// ResetTimer resets the remote stopwatch.
func (c *ControlClient) ResetTimer(
	ctx context.Context,
	in *emptypb.Empty,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, ResetTimerMethod, in, opts...)
}

// GetStatus returns the remote snapshot.
func (c *ControlClient) GetStatus(
	ctx context.Context,
	in *emptypb.Empty,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	return c.invoke(ctx, GetStatusMethod, in, opts...)
}

// invoke performs a unary call whose response is a snapshot Struct.
func (c *ControlClient) invoke(
	ctx context.Context,
	method string,
	in any,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}
