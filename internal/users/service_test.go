package users

import (
	"context"
	"errors"
	"testing"
)

type fakeRepo struct {
	*MemoryRepository
	roleErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{MemoryRepository: NewMemoryRepository()}
}

func (f *fakeRepo) CountRoles(ctx context.Context, userID, role string) (int, error) {
	if f.roleErr != nil {
		return 0, f.roleErr
	}
	return f.MemoryRepository.CountRoles(ctx, userID, role)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	user, err := svc.RegisterWebUser(ctx, "owner@agency.co", "pw")
	if err != nil {
		t.Fatalf("RegisterWebUser() error = %v", err)
	}
	if _, err := svc.RegisterWebUser(ctx, "OWNER@agency.co", "pw"); !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("duplicate register error = %v, want ErrUserAlreadyExists", err)
	}

	got, err := svc.AuthenticateWebUser(ctx, "owner@agency.co", "pw")
	if err != nil || got.ID != user.ID {
		t.Errorf("AuthenticateWebUser() = %v, %v", got, err)
	}
	if _, err := svc.AuthenticateWebUser(ctx, "owner@agency.co", "bad"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v", err)
	}
	if _, err := svc.AuthenticateWebUser(ctx, "nobody@agency.co", "pw"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user error = %v", err)
	}
}

func TestIsAdmin(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	user, _ := svc.RegisterWebUser(ctx, "owner@agency.co", "pw")
	if ok, _ := svc.IsAdmin(ctx, user.ID); ok {
		t.Error("new user should not be admin")
	}

	if _, err := svc.GrantAdmin(ctx, "owner@agency.co"); err != nil {
		t.Fatalf("GrantAdmin() error = %v", err)
	}
	if ok, err := svc.IsAdmin(ctx, user.ID); !ok || err != nil {
		t.Errorf("IsAdmin() = %v, %v; want true", ok, err)
	}

	repo.roleErr = errors.New("connection reset")
	if ok, err := svc.IsAdmin(ctx, user.ID); ok || err == nil {
		t.Errorf("IsAdmin() with lookup error = %v, %v; want false and error", ok, err)
	}

	if _, err := svc.GrantAdmin(ctx, "ghost@agency.co"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GrantAdmin(unknown) error = %v", err)
	}
}
