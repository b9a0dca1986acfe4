package auth

import (
	"go.uber.org/fx"

	"github.com/anrodrig/comanda/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newPasswordHasher),
	fx.Provide(newTokenStrategy),
)

type hasherParams struct {
	fx.In

	Config *config.Config
}

func newPasswordHasher(p hasherParams) PasswordHasher {
	if p.Config.PasswordHasher == "bcrypt" {
		return NewBcryptHasher(0)
	}
	return NewArgon2Hasher()
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	if p.Config.TokenStrategy == "hmac" {
		return NewHMACStrategy(p.Config.TokenSecret, Options{TTL: p.Config.TokenTTL})
	}
	return NewJWTStrategy(p.Config.TokenSecret, Options{TTL: p.Config.TokenTTL})
}
