package assistant

import (
	"context"
)

type Mode string

const (
	ModeVisitor Mode = "visitor"
	ModeAdmin   Mode = "admin"
)

// Identity is the caller as resolved from the bearer credential of one request.
type Identity struct {
	UserID  string
	IsAdmin bool
}

func (i Identity) Mode() Mode {
	if i.IsAdmin {
		return ModeAdmin
	}
	return ModeVisitor
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the resolved identity, or an anonymous visitor
// when none was stored.
func IdentityFromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey{}).(Identity)
	return id
}

func ModeFromContext(ctx context.Context) Mode {
	return IdentityFromContext(ctx).Mode()
}
