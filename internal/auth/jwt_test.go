package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testKey = "test-signing-key"

func TestGenerateAndValidateJWTToken(t *testing.T) {
	token, err := GenerateJWTToken("user-1", "a@b.co", testKey, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWTToken() error = %v", err)
	}

	claims, err := ValidateJWTToken(token, testKey)
	if err != nil {
		t.Fatalf("ValidateJWTToken() error = %v", err)
	}
	if claims.Subject != "user-1" || claims.Email != "a@b.co" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := ValidateJWTToken(token, "other-key"); err == nil {
		t.Error("ValidateJWTToken() with wrong key should fail")
	}
}

func TestValidateJWTToken_Expired(t *testing.T) {
	token, err := GenerateJWTToken("user-1", "", testKey, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWTToken() error = %v", err)
	}
	if _, err := ValidateJWTToken(token, testKey); err == nil {
		t.Error("expired token should not validate")
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{"Bearer abc", "abc", nil},
		{"bearer abc", "abc", nil},
		{"", "", ErrMissingAuthorization},
		{"Basic abc", "", ErrMalformedAuthorization},
		{"Bearer", "", ErrMalformedAuthorization},
		{"Bearer a b", "", ErrMalformedAuthorization},
	}
	for _, tt := range tests {
		got, err := BearerToken(tt.header)
		if got != tt.want || !errors.Is(err, tt.wantErr) {
			t.Errorf("BearerToken(%q) = %q, %v; want %q, %v", tt.header, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestVerifier(t *testing.T) {
	token, _ := GenerateJWTToken("user-42", "", testKey, time.Hour)
	sub, err := NewVerifier(testKey).Verify(context.Background(), token)
	if err != nil || sub != "user-42" {
		t.Errorf("Verify() = %q, %v; want user-42, nil", sub, err)
	}
}

func TestJWTMiddleware(t *testing.T) {
	var gotUser string
	handler := JWTMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}), testKey)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no header: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	token, _ := GenerateJWTToken("user-7", "", testKey, time.Hour)
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK || gotUser != "user-7" {
		t.Errorf("valid token: status = %d user = %q", w.Code, gotUser)
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !CheckPasswordHash("s3cret", hash) {
		t.Error("CheckPasswordHash() rejected correct password")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("CheckPasswordHash() accepted wrong password")
	}
}
