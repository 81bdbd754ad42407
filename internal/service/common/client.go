//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	api "github.com/oshokin/clock-widget/internal/api/grpc/clock"
	"github.com/oshokin/clock-widget/internal/config"
	domain "github.com/oshokin/clock-widget/internal/domain/clock"
)

// Client wraps the gRPC ClockControl client with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the widget.
	conn *grpc.ClientConn
	// api is the ClockControl client stub.
	api *api.ControlClient

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
	// actor is sent with every call so the widget can log who issued it.
	actor *Actor
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithActor attaches actor to every call as gRPC metadata.
func WithActor(actor Actor) Option {
	return func(c *Client) {
		c.actor = &actor
	}
}

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// Dial creates a gRPC client for the widget's control address.
// Note: this uses insecure transport credentials; the control server is
// meant to listen on loopback or a trusted network.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial clock widget: %w", err)
	}

	client := &Client{
		conn:        conn,
		api:         api.NewControlClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// SetAlarm arms the remote alarm for input (HH:MM).
func (c *Client) SetAlarm(ctx context.Context, input string) (domain.Snapshot, error) {
	return c.call(ctx, "set alarm", func(ctx context.Context) (*structpb.Struct, error) {
		return c.api.SetAlarm(ctx, wrapperspb.String(input))
	})
}

// StartTimer starts the remote stopwatch.
func (c *Client) StartTimer(ctx context.Context) (domain.Snapshot, error) {
	return c.call(ctx, "start timer", func(ctx context.Context) (*structpb.Struct, error) {
		return c.api.StartTimer(ctx, new(emptypb.Empty))
	})
}

// StopTimer stops the remote stopwatch.
func (c *Client) StopTimer(ctx context.Context) (domain.Snapshot, error) {
	return c.call(ctx, "stop timer", func(ctx context.Context) (*structpb.Struct, error) {
		return c.api.StopTimer(ctx, new(emptypb.Empty))
	})
}

// ResetTimer resets the remote stopwatch.
func (c *Client) ResetTimer(ctx context.Context) (domain.Snapshot, error) {
	return c.call(ctx, "reset timer", func(ctx context.Context) (*structpb.Struct, error) {
		return c.api.ResetTimer(ctx, new(emptypb.Empty))
	})
}

// Status retrieves the remote snapshot.
func (c *Client) Status(ctx context.Context) (domain.Snapshot, error) {
	return c.call(ctx, "get status", func(ctx context.Context) (*structpb.Struct, error) {
		return c.api.GetStatus(ctx, new(emptypb.Empty))
	})
}

// call runs rpc with the client's timeout and actor metadata and decodes the snapshot.
func (c *Client) call(
	ctx context.Context,
	what string,
	rpc func(context.Context) (*structpb.Struct, error),
) (domain.Snapshot, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := rpc(callCtx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%s: %w", what, err)
	}

	return api.FromProtoSnapshot(resp), nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline. The actor, if
// set, travels as outgoing metadata.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.actor != nil {
		ctx = metadata.AppendToOutgoingContext(ctx, api.ActorMetadataKey, c.actor.String())
	}

	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
