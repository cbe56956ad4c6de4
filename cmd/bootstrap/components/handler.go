package components

import (
	"log/slog"

	"pos-terminal/internal/handler"
	"pos-terminal/internal/handler/api"
	"pos-terminal/internal/handler/middleware"
	"pos-terminal/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewTerminalHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(
		configureEngine,
		handler.NewRouter,
	),
)

// configureEngine must run before routes are registered.
func configureEngine(engine *gin.Engine, cfg config.Config, logger *slog.Logger) error {
	// unknown JSON keys are rejected; reqdto.Text accepts both numbers and strings
	gin.EnableJsonDecoderDisallowUnknownFields()
	engine.ContextWithFallback = true
	if err := engine.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return err
	}
	logger.Info("gin engine configured", "trusted_proxies", cfg.Server.TrustedProxies)
	return nil
}
