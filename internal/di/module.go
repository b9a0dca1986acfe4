package di

import (
	"go.uber.org/fx"

	"github.com/anrodrig/comanda/internal/adapter/dictionary"
	"github.com/anrodrig/comanda/internal/adapter/events"
	"github.com/anrodrig/comanda/internal/adapter/llm"
	"github.com/anrodrig/comanda/internal/app"
	"github.com/anrodrig/comanda/internal/config"
	"github.com/anrodrig/comanda/internal/logger"
	"github.com/anrodrig/comanda/internal/pkg/auth"
	"github.com/anrodrig/comanda/internal/server/http/router"
	"github.com/anrodrig/comanda/internal/storage/postgres"
	"github.com/anrodrig/comanda/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		dictionary.Module,
		llm.Module,
		events.Module,
		usecase.Module,
		fx.Provide(func(client dictionary.Client) usecase.DictionaryProvider { return client }),
		fx.Provide(func(publisher events.Publisher) usecase.EventPublisher { return publisher }),
		fx.Provide(func(client llm.Client) app.LanguageModel { return client }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
