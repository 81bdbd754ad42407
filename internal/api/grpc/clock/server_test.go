package clock

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	domain "github.com/oshokin/clock-widget/internal/domain/clock"
)

var errTestBroken = errors.New("scheduler is closed")

// fakeService implements Service on top of the real domain types, without a loop.
type fakeService struct {
	// alarm is the armed alarm.
	alarm domain.Alarm
	// stopwatch is the fake stopwatch.
	stopwatch domain.Stopwatch
	// broken makes every call fail with a non-domain error.
	broken bool
}

func (f *fakeService) snapshot() domain.Snapshot {
	at, armed := f.alarm.Time()

	return domain.Snapshot{
		Timestamp:    time.Date(2026, 10, 18, 7, 0, 0, 0, time.UTC),
		Clock:        "07:00:00",
		AlarmTime:    at,
		AlarmArmed:   armed,
		TimerRunning: f.stopwatch.Running(),
		TimerElapsed: f.stopwatch.Elapsed(),
	}
}

func (f *fakeService) SetAlarm(_ context.Context, input string) (domain.Snapshot, error) {
	if f.broken {
		return domain.Snapshot{}, errTestBroken
	}

	if err := f.alarm.Set(input); err != nil {
		return f.snapshot(), fmt.Errorf("alarm.set: %w", err)
	}

	return f.snapshot(), nil
}

func (f *fakeService) StartTimer(context.Context) (domain.Snapshot, error) {
	if f.broken {
		return domain.Snapshot{}, errTestBroken
	}

	f.stopwatch.Start()
	f.stopwatch.Tick()

	return f.snapshot(), nil
}

func (f *fakeService) StopTimer(context.Context) (domain.Snapshot, error) {
	f.stopwatch.Stop()

	return f.snapshot(), nil
}

func (f *fakeService) ResetTimer(context.Context) (domain.Snapshot, error) {
	f.stopwatch.Reset()

	return f.snapshot(), nil
}

func (f *fakeService) Snapshot(context.Context) (domain.Snapshot, error) {
	if f.broken {
		return domain.Snapshot{}, context.DeadlineExceeded
	}

	return f.snapshot(), nil
}

// TestServer_SetAlarm_Validation ensures invalid requests return InvalidArgument errors.
func TestServer_SetAlarm_Validation(t *testing.T) {
	t.Parallel()

	s := NewServer(new(fakeService))

	_, err := s.SetAlarm(context.Background(), nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.SetAlarm(context.Background(), wrapperspb.String("24:00"))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	resp, err := s.SetAlarm(context.Background(), wrapperspb.String("07:30"))
	require.NoError(t, err)

	snapshot := FromProtoSnapshot(resp)
	require.True(t, snapshot.AlarmArmed)
	require.Equal(t, "07:30", snapshot.AlarmTime)
}

// TestServer_ErrorMapping checks non-domain errors become Internal and context errors keep their code.
func TestServer_ErrorMapping(t *testing.T) {
	t.Parallel()

	s := NewServer(&fakeService{broken: true})

	_, err := s.SetAlarm(context.Background(), wrapperspb.String("07:30"))
	require.Equal(t, codes.Internal, status.Code(err))

	_, err = s.StartTimer(context.Background(), new(emptypb.Empty))
	require.Equal(t, codes.Internal, status.Code(err))

	_, err = s.GetStatus(context.Background(), new(emptypb.Empty))
	require.Equal(t, codes.DeadlineExceeded, status.Code(err))
}

// TestSnapshotConversion verifies the Struct encoding keeps every field.
func TestSnapshotConversion(t *testing.T) {
	t.Parallel()

	want := domain.Snapshot{
		Timestamp:    time.Date(2026, 10, 18, 7, 0, 0, 0, time.UTC),
		Clock:        "07:00:00",
		AlarmTime:    "07:30",
		AlarmArmed:   true,
		TimerRunning: true,
		TimerElapsed: 42,
	}

	got := FromProtoSnapshot(ToProtoSnapshot(want))
	require.True(t, want.Timestamp.Equal(got.Timestamp))

	got.Timestamp = want.Timestamp
	require.Equal(t, want, got)

	// Nil and empty structs decode to zero values.
	require.Equal(t, domain.Snapshot{}, FromProtoSnapshot(nil))
}

// TestControlService_OverBufconn exercises the hand-written descriptor and client stub end-to-end.
func TestControlService_OverBufconn(t *testing.T) {
	t.Parallel()

	lis := bufconn.Listen(1 << 20)

	grpcServer := grpc.NewServer()
	RegisterControlServer(grpcServer, NewServer(new(fakeService)))

	go func() {
		_ = grpcServer.Serve(lis)
	}()

	defer grpcServer.Stop()

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	defer func() {
		_ = conn.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := NewControlClient(conn)

	resp, err := client.SetAlarm(ctx, wrapperspb.String("06:15"))
	require.NoError(t, err)
	require.Equal(t, "06:15", FromProtoSnapshot(resp).AlarmTime)

	_, err = client.SetAlarm(ctx, wrapperspb.String("6:15"))
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	resp, err = client.StartTimer(ctx, new(emptypb.Empty))
	require.NoError(t, err)
	require.True(t, FromProtoSnapshot(resp).TimerRunning)
	require.Equal(t, 1, FromProtoSnapshot(resp).TimerElapsed)

	resp, err = client.StopTimer(ctx, new(emptypb.Empty))
	require.NoError(t, err)
	require.False(t, FromProtoSnapshot(resp).TimerRunning)
	require.Equal(t, 1, FromProtoSnapshot(resp).TimerElapsed)

	resp, err = client.ResetTimer(ctx, new(emptypb.Empty))
	require.NoError(t, err)
	require.Zero(t, FromProtoSnapshot(resp).TimerElapsed)

	resp, err = client.GetStatus(ctx, new(emptypb.Empty))
	require.NoError(t, err)

	current := FromProtoSnapshot(resp)
	require.Equal(t, "07:00:00", current.Clock)
	require.Equal(t, "06:15", current.AlarmTime)
}
