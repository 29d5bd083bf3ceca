package utils

import (
	"context"
)

type actorKey struct{}

// WithActor returns a context carrying the opaque actor ID of the current
// visitor. Set by the actor middleware, read by handlers.
func WithActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

// ActorFromContext extracts the actor ID placed by the actor middleware.
func ActorFromContext(ctx context.Context) (string, bool) {
	actorID, ok := ctx.Value(actorKey{}).(string)
	return actorID, ok && actorID != ""
}
