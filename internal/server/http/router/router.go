package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/anrodrig/comanda/internal/server/http/handlers"
	"github.com/anrodrig/comanda/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ComandaFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	menuHandler := handlers.NewMenuHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	wordHandler := handlers.NewWordHandler(facade)
	reportHandler := handlers.NewReportHandler(facade)

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	api.GET("/menu", menuHandler.List)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))

	authed.POST("/orders", orderHandler.Create)
	authed.GET("/orders", orderHandler.ListActive)
	authed.GET("/orders/:id", orderHandler.Get)

	words := authed.Group("/words")
	words.GET("", wordHandler.List)
	words.POST("", wordHandler.Create)
	words.GET("/:word", wordHandler.Get)
	words.PUT("/:id", wordHandler.Update)
	words.DELETE("/:id", wordHandler.Delete)

	admin := authed.Group("/admin")
	admin.PUT("/users/block", authHandler.Block)
	admin.POST("/menu", menuHandler.Create)
	admin.PUT("/menu/:id", menuHandler.Update)
	admin.DELETE("/menu/:id", menuHandler.Delete)
	admin.PUT("/menu/:id/stock", menuHandler.ToggleStock)
	admin.GET("/orders/pending", orderHandler.ListPending)
	admin.GET("/orders/confirmed", orderHandler.ListConfirmed)
	admin.PUT("/orders/:id", orderHandler.Update)
	admin.PUT("/orders/:id/status", orderHandler.ChangeStatus)
	admin.GET("/reports/balance", reportHandler.DailyBalance)

	return engine
}
