package dictionary

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/anrodrig/comanda/internal/config"
)

// Module provides the dictionary client to the fx container.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.DictionaryAddress, p.Logger)
}
