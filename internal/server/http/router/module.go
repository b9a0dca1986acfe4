package router

import (
	"go.uber.org/fx"

	"github.com/anrodrig/comanda/internal/app"
	"github.com/anrodrig/comanda/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Options(
	fx.Provide(func(facade *app.ComandaFacade) handlers.ComandaFacade { return facade }),
	fx.Provide(Setup),
)
