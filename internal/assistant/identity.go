package assistant

import (
	"context"
	"net/http"

	"agencysite/internal/auth"

	"github.com/sirupsen/logrus"
)

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

type RoleChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// Resolver turns an Authorization header into an Identity. It never fails:
// every problem resolves to the less privileged visitor mode.
type Resolver struct {
	verifier TokenVerifier
	roles    RoleChecker
}

func NewResolver(verifier TokenVerifier, roles RoleChecker) *Resolver {
	return &Resolver{verifier: verifier, roles: roles}
}

func (r *Resolver) Resolve(ctx context.Context, authHeader string) Identity {
	if authHeader == "" {
		return Identity{}
	}

	token, err := auth.BearerToken(authHeader)
	if err != nil {
		logrus.Debugf("ignoring authorization header: %v", err)
		return Identity{}
	}

	userID, err := r.verifier.Verify(ctx, token)
	if err != nil {
		logrus.Debugf("bearer credential rejected, continuing as visitor: %v", err)
		return Identity{}
	}

	isAdmin, err := r.roles.IsAdmin(ctx, userID)
	if err != nil {
		logrus.Warnf("role lookup failed for user %s, continuing as visitor: %v", userID, err)
		return Identity{UserID: userID}
	}

	return Identity{UserID: userID, IsAdmin: isAdmin}
}

// Middleware resolves the caller once and stores the identity in the request
// context for every later step.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := r.Resolve(req.Context(), req.Header.Get("Authorization"))
		next.ServeHTTP(w, req.WithContext(WithIdentity(req.Context(), id)))
	})
}
