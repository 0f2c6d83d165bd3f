// Package router assembles the gin engine from config, middleware, and handlers.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tkrajnik/runkey/internal/config"
	"github.com/tkrajnik/runkey/internal/dispatch"
	"github.com/tkrajnik/runkey/internal/handlers"
	"github.com/tkrajnik/runkey/internal/middleware"
	"github.com/tkrajnik/runkey/internal/services"
	"github.com/tkrajnik/runkey/internal/store"
	"github.com/tkrajnik/runkey/internal/version"
)

// New builds the HTTP API exposed to the desktop shell.
func New(cfg *config.Config, commands *services.CommandService, executor *services.ExecutorService, history *services.HistoryService, dispatcher *dispatch.Dispatcher, settings *store.SettingsStore, commandStore *store.CommandStore) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.SecurityHeaders())

	commandHandler := handlers.NewCommandHandler(commands, executor)
	settingsHandler := handlers.NewSettingsHandler(settings, commandStore)
	runHandler := handlers.NewRunHandler(history)
	shortcutHandler := handlers.NewShortcutHandler(dispatcher)

	api := r.Group(cfg.Server.PathPrefix + "/api")
	{
		// Public version endpoint
		api.GET("/version", func(c *gin.Context) {
			c.JSON(http.StatusOK, version.Info())
		})

		protected := api.Group("")
		if cfg.Server.Token != "" {
			protected.Use(middleware.TokenAuth(cfg.Server.Token))
		}
		{
			protected.GET("/commands", commandHandler.List)
			protected.POST("/commands", commandHandler.Create)
			protected.PUT("/commands/:id", commandHandler.Update)
			protected.DELETE("/commands/:id", commandHandler.Delete)
			protected.POST("/commands/:id/execute", commandHandler.Execute)
			protected.POST("/commands/:id/kill", commandHandler.Kill)

			protected.GET("/settings", settingsHandler.Get)
			protected.PUT("/settings", settingsHandler.Update)
			protected.POST("/settings/storage-dir", settingsHandler.EnsureStorageDir)

			protected.POST("/shortcuts/trigger", shortcutHandler.Trigger)

			protected.GET("/runs", runHandler.List)
		}
	}

	return r
}
