package llm

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/anrodrig/comanda/internal/config"
)

// Module provides the LLM client to the fx container.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.OpenAIAddress, p.Config.OpenAIKey, p.Config.OpenAIModel, p.Logger)
}
