package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/anrodrig/comanda/internal/domain/errors"
	"github.com/anrodrig/comanda/internal/domain/model"
	testhelpers "github.com/anrodrig/comanda/internal/test"
)

func newAuthFixture() (*AuthUseCase, *testhelpers.UserRepositoryStub) {
	users := testhelpers.NewUserRepositoryStub()
	uc := NewAuthUseCase(users, testhelpers.HasherStub{}, testhelpers.StrategyStub{
		IssueFn: func(userID int64) (string, error) { return "token", nil },
	})
	return uc, users
}

func TestAuthRegister(t *testing.T) {
	uc, users := newAuthFixture()

	usr, token, err := uc.Register(context.Background(), " User@Example.COM ", "secret", "Ada", "Lovelace", "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "token" {
		t.Fatalf("expected issued token, got %q", token)
	}
	if usr.Email != "user@example.com" {
		t.Fatalf("email must be normalized, got %q", usr.Email)
	}
	if usr.Role != model.RoleUser {
		t.Fatalf("new accounts must start as USER, got %s", usr.Role)
	}
	stored, err := users.GetByEmail(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if stored.PasswordHash != "hash:secret" {
		t.Fatalf("password must be stored hashed, got %q", stored.PasswordHash)
	}
}

func TestAuthRegisterDuplicate(t *testing.T) {
	uc, users := newAuthFixture()
	users.Add(&model.User{Email: "user@example.com"})

	_, _, err := uc.Register(context.Background(), "user@example.com", "secret", "", "", "")
	if !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthRegisterEmptyCredentials(t *testing.T) {
	uc, _ := newAuthFixture()
	for _, tc := range []struct{ email, password string }{{"", "secret"}, {"user@example.com", ""}} {
		_, _, err := uc.Register(context.Background(), tc.email, tc.password, "", "", "")
		if !errors.Is(err, domainErrors.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for %q/%q, got %v", tc.email, tc.password, err)
		}
	}
}

func TestAuthAuthenticate(t *testing.T) {
	uc, users := newAuthFixture()
	users.Add(&model.User{Email: "user@example.com", PasswordHash: "hash:secret"})

	_, token, err := uc.Authenticate(context.Background(), "User@example.com", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "token" {
		t.Fatalf("expected issued token, got %q", token)
	}
}

func TestAuthAuthenticateFailures(t *testing.T) {
	uc, users := newAuthFixture()
	users.Add(&model.User{Email: "user@example.com", PasswordHash: "hash:secret"})

	if _, _, err := uc.Authenticate(context.Background(), "user@example.com", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := uc.Authenticate(context.Background(), "ghost@example.com", "secret"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthBlockUser(t *testing.T) {
	uc, users := newAuthFixture()
	admin := users.Add(&model.User{Email: "a@example.com", Role: model.RoleAdmin})
	target := users.Add(&model.User{Email: "t@example.com"})

	if err := uc.BlockUser(context.Background(), admin.ID, target.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	blocked, err := users.IsBlocked(context.Background(), target.ID)
	if err != nil || !blocked {
		t.Fatalf("expected target to be blocked, got blocked=%v err=%v", blocked, err)
	}
}

func TestAuthBlockUserRequiresAdmin(t *testing.T) {
	uc, users := newAuthFixture()
	actor := users.Add(&model.User{Email: "u@example.com", Role: model.RoleUser})
	target := users.Add(&model.User{Email: "t@example.com"})

	if err := uc.BlockUser(context.Background(), actor.ID, target.ID); !errors.Is(err, domainErrors.ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
}
