package http

import (
	"go.uber.org/fx"

	"github.com/Conte777/GateFlow/internal/infrastructure/http/server"
)

// Module provides the health endpoint for fx dependency injection
var Module = fx.Module("http-delivery",
	fx.Provide(NewHealthHandler),
	fx.Invoke(registerRoutes),
)

func registerRoutes(srv *server.Server, handler *HealthHandler) {
	srv.Router.GET("/health", handler.Handle)
}
