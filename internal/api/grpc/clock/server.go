package clock

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	domain "github.com/oshokin/clock-widget/internal/domain/clock"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	SetAlarm(ctx context.Context, input string) (domain.Snapshot, error)
	StartTimer(ctx context.Context) (domain.Snapshot, error)
	StopTimer(ctx context.Context) (domain.Snapshot, error)
	ResetTimer(ctx context.Context) (domain.Snapshot, error)
	Snapshot(ctx context.Context) (domain.Snapshot, error)
}

// Snapshot field names used in the response Struct.
const (
	fieldTimestamp    = "timestamp"
	fieldClock        = "clock"
	fieldAlarmTime    = "alarm_time"
	fieldAlarmArmed   = "alarm_armed"
	fieldTimerRunning = "timer_running"
	fieldTimerElapsed = "timer_elapsed"
)

// Server implements the ClockControl gRPC API.
type Server struct {
	// service provides the controller operations.
	service Service
}

var _ ControlServer = (*Server)(nil)

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// SetAlarm arms the alarm. Malformed times map to InvalidArgument.
func (s *Server) SetAlarm(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	snapshot, err := s.service.SetAlarm(ctx, req.GetValue())
	if err != nil {
		return nil, toStatus(err, "unable to set alarm")
	}

	return ToProtoSnapshot(snapshot), nil
}

// StartTimer starts the stopwatch.
func (s *Server) StartTimer(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	snapshot, err := s.service.StartTimer(ctx)
	if err != nil {
		return nil, toStatus(err, "unable to start timer")
	}

	return ToProtoSnapshot(snapshot), nil
}

// StopTimer stops the stopwatch.
func (s *Server) StopTimer(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	snapshot, err := s.service.StopTimer(ctx)
	if err != nil {
		return nil, toStatus(err, "unable to stop timer")
	}

	return ToProtoSnapshot(snapshot), nil
}

// ResetTimer resets the stopwatch.
func (s *Server) ResetTimer(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	snapshot, err := s.service.ResetTimer(ctx)
	if err != nil {
		return nil, toStatus(err, "unable to reset timer")
	}

	return ToProtoSnapshot(snapshot), nil
}

// GetStatus returns the current snapshot.
func (s *Server) GetStatus(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	snapshot, err := s.service.Snapshot(ctx)
	if err != nil {
		return nil, toStatus(err, "unable to read status")
	}

	return ToProtoSnapshot(snapshot), nil
}

// toStatus converts a service error into a gRPC status error.
func toStatus(err error, internalMessage string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidAlarmFormat):
		return status.Error(codes.InvalidArgument, domain.ErrInvalidAlarmFormat.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, internalMessage)
	}
}

// ToProtoSnapshot converts a domain snapshot into the response Struct.
func ToProtoSnapshot(snapshot domain.Snapshot) *structpb.Struct {
	var timestamp string
	if !snapshot.Timestamp.IsZero() {
		timestamp = snapshot.Timestamp.Format(time.RFC3339)
	}

	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			fieldTimestamp:    structpb.NewStringValue(timestamp),
			fieldClock:        structpb.NewStringValue(snapshot.Clock),
			fieldAlarmTime:    structpb.NewStringValue(snapshot.AlarmTime),
			fieldAlarmArmed:   structpb.NewBoolValue(snapshot.AlarmArmed),
			fieldTimerRunning: structpb.NewBoolValue(snapshot.TimerRunning),
			fieldTimerElapsed: structpb.NewNumberValue(float64(snapshot.TimerElapsed)),
		},
	}
}

// FromProtoSnapshot converts a response Struct back into a domain snapshot.
// Missing or mistyped fields are left at their zero value.
func FromProtoSnapshot(st *structpb.Struct) domain.Snapshot {
	fields := st.GetFields()

	var timestamp time.Time
	if raw := fields[fieldTimestamp].GetStringValue(); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			timestamp = parsed
		}
	}

	return domain.Snapshot{
		Timestamp:    timestamp,
		Clock:        fields[fieldClock].GetStringValue(),
		AlarmTime:    fields[fieldAlarmTime].GetStringValue(),
		AlarmArmed:   fields[fieldAlarmArmed].GetBoolValue(),
		TimerRunning: fields[fieldTimerRunning].GetBoolValue(),
		TimerElapsed: int(fields[fieldTimerElapsed].GetNumberValue()),
	}
}
