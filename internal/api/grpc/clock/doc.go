// Package clock implements the gRPC remote-control transport for the widget.
//
// The ClockControl service (clockwidget.v1.ClockControl) is described by a
// hand-written grpc.ServiceDesc over protobuf well-known types: requests are
// wrapperspb.StringValue or emptypb.Empty, every response is a structpb.Struct
// snapshot. Server adapts a business-service interface to that API and
// ControlClient is the matching client stub.
package clock
