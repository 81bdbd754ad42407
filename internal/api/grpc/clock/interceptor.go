package clock

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/oshokin/clock-widget/internal/logger"
)

// ActorMetadataKey carries "username@hostname" of the caller.
const ActorMetadataKey = "x-clock-actor"

// unknownActor is logged when a caller sends no actor metadata.
const unknownActor = "<unknown>"

// ActorFromContext returns the caller recorded in incoming metadata.
func ActorFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return unknownActor
	}

	if values := md.Get(ActorMetadataKey); len(values) > 0 && values[0] != "" {
		return values[0]
	}

	return unknownActor
}

// LoggingInterceptor logs every call with its caller, status code and duration.
// base supplies the logger; the request context only contributes metadata.
func LoggingInterceptor(base context.Context) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		started := time.Now()
		actor := ActorFromContext(ctx)

		resp, err := handler(ctx, req)

		kvs := []any{
			"method", info.FullMethod,
			"actor", actor,
			"code", status.Code(err).String(),
			"duration", time.Since(started),
		}

		if err != nil {
			logger.WarnKV(base, "Control call failed", append(kvs, "error", err)...)
		} else {
			logger.InfoKV(base, "Control call", kvs...)
		}

		return resp, err
	}
}
