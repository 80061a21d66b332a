package auth

import (
	"context"

	"vegholic-api/apperror"
)

type actorKey struct{}

// WithActor records the authenticated caller on ctx.
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFrom returns the authenticated caller, if any.
func ActorFrom(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(actorKey{}).(string)
	return userID, ok && userID != ""
}

// CheckOwner fails with notFound when an authenticated caller touches a
// record owned by someone else. Unauthenticated calls pass.
func CheckOwner(ctx context.Context, ownerID string, notFound string) error {
	actor, ok := ActorFrom(ctx)
	if !ok || actor == ownerID {
		return nil
	}
	return apperror.NotFound(notFound)
}
