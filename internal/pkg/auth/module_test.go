package auth

import (
	"testing"
	"time"

	"github.com/anrodrig/comanda/internal/config"
)

func TestNewTokenStrategySelectsScheme(t *testing.T) {
	tests := []struct {
		strategy string
		want     string
	}{
		{strategy: "jwt", want: "jwt"},
		{strategy: "hmac", want: "hmac"},
	}

	for _, tc := range tests {
		t.Run(tc.strategy, func(t *testing.T) {
			s := newTokenStrategy(strategyParams{Config: &config.Config{
				TokenStrategy: tc.strategy,
				TokenSecret:   "secret",
				TokenTTL:      time.Hour,
			}})
			if s.Name() != tc.want {
				t.Fatalf("expected %q strategy, got %q", tc.want, s.Name())
			}

			token, err := s.IssueToken(42)
			if err != nil {
				t.Fatalf("issue token: %v", err)
			}
			userID, err := s.ParseToken(token)
			if err != nil || userID != 42 {
				t.Fatalf("round trip failed: got %d (%v)", userID, err)
			}
		})
	}
}

func TestNewPasswordHasherSelectsScheme(t *testing.T) {
	if _, ok := newPasswordHasher(hasherParams{Config: &config.Config{PasswordHasher: "bcrypt"}}).(*BcryptHasher); !ok {
		t.Fatal("expected bcrypt hasher")
	}
	if _, ok := newPasswordHasher(hasherParams{Config: &config.Config{PasswordHasher: "argon2"}}).(*Argon2Hasher); !ok {
		t.Fatal("expected argon2 hasher")
	}
}
