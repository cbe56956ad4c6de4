package bootstrap

import (
	"log/slog"

	"pos-terminal/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(logEffectiveConfig),
)

// logEffectiveConfig records what this till talks to. Secrets are never logged.
func logEffectiveConfig(cfg config.Config, logger *slog.Logger) {
	logger.Info("設定を読み込みました",
		"backend", cfg.Backend.BaseURL,
		"backend_timeout", cfg.Backend.Timeout,
		"backend_token_set", cfg.Backend.APIToken != "",
		"default_terminal", cfg.Terminal.DefaultID,
		"idle_ttl", cfg.Terminal.IdleTTL,
		"currency", cfg.Terminal.CurrencySymbol,
		"metrics", cfg.Metrics.Enabled,
	)
}
