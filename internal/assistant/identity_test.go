package assistant

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agencysite/internal/auth"
)

type fakeRoles struct {
	admins map[string]bool
	err    error
	calls  int
}

func (f *fakeRoles) IsAdmin(ctx context.Context, userID string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.admins[userID], nil
}

const testSigningKey = "test-signing-key"

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateJWTToken(userID, userID+"@example.com", testSigningKey, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWTToken: %v", err)
	}
	return "Bearer " + token
}

func TestResolveWithoutValidCredentialIsVisitor(t *testing.T) {
	roles := &fakeRoles{admins: map[string]bool{"u1": true}}
	r := NewResolver(auth.NewVerifier(testSigningKey), roles)

	expired, err := auth.GenerateJWTToken("u1", "u1@example.com", testSigningKey, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWTToken: %v", err)
	}
	foreign, err := auth.GenerateJWTToken("u1", "u1@example.com", "another-key", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWTToken: %v", err)
	}

	headers := []string{
		"",
		"Bearer",
		"Basic dXNlcjpwYXNz",
		"Bearer not-a-jwt",
		"Bearer " + expired,
		"Bearer " + foreign,
	}
	for _, h := range headers {
		id := r.Resolve(context.Background(), h)
		if id.Mode() != ModeVisitor {
			t.Errorf("header %q: expected visitor, got %s", h, id.Mode())
		}
	}
	if roles.calls != 0 {
		t.Errorf("role lookup must not run without a valid credential, ran %d times", roles.calls)
	}
}

func TestResolveAdmin(t *testing.T) {
	r := NewResolver(auth.NewVerifier(testSigningKey), &fakeRoles{admins: map[string]bool{"u1": true}})

	id := r.Resolve(context.Background(), bearer(t, "u1"))
	if id.Mode() != ModeAdmin || id.UserID != "u1" {
		t.Errorf("expected admin u1, got %+v", id)
	}
}

func TestResolveSignedInWithoutRoleIsVisitor(t *testing.T) {
	r := NewResolver(auth.NewVerifier(testSigningKey), &fakeRoles{admins: map[string]bool{}})

	id := r.Resolve(context.Background(), bearer(t, "u2"))
	if id.Mode() != ModeVisitor {
		t.Errorf("expected visitor, got %s", id.Mode())
	}
	if id.UserID != "u2" {
		t.Errorf("expected user id to be kept, got %q", id.UserID)
	}
}

func TestResolveRoleLookupFailureIsVisitor(t *testing.T) {
	r := NewResolver(auth.NewVerifier(testSigningKey), &fakeRoles{err: errors.New("connection refused")})

	if id := r.Resolve(context.Background(), bearer(t, "u1")); id.Mode() != ModeVisitor {
		t.Errorf("expected visitor on lookup failure, got %s", id.Mode())
	}
}

func TestResolverMiddlewareStoresIdentity(t *testing.T) {
	r := NewResolver(auth.NewVerifier(testSigningKey), &fakeRoles{admins: map[string]bool{"u1": true}})

	var got Mode
	h := r.Middleware(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		got = ModeFromContext(req.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req.Header.Set("Authorization", bearer(t, "u1"))
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != ModeAdmin {
		t.Errorf("expected admin in context, got %s", got)
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/chat", nil))
	if got != ModeVisitor {
		t.Errorf("expected visitor in context, got %s", got)
	}
}

func TestModeFromEmptyContextIsVisitor(t *testing.T) {
	if m := ModeFromContext(context.Background()); m != ModeVisitor {
		t.Errorf("expected visitor, got %s", m)
	}
}
