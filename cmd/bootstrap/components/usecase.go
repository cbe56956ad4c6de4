package components

import (
	"context"
	"log/slog"
	"time"

	"pos-terminal/internal/pkg/clock"
	"pos-terminal/internal/usecase"
	"pos-terminal/internal/usecase/commands"
	"pos-terminal/internal/usecase/queries"

	"go.uber.org/fx"
)

const sessionSweepInterval = time.Minute

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewTerminalRegistry,
		commands.NewTerminalCommands,
	),
	fx.Invoke(runSessionSweeper),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCatalogCache,
	),
	fx.Invoke(warmCatalog),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

// warmCatalog loads products and clients at startup. A backend outage is not
// fatal: the first terminal request retries.
func warmCatalog(lc fx.Lifecycle, cache *queries.CatalogCache, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := cache.Refresh(ctx); err != nil {
				logger.Warn("カタログの初期読み込みに失敗しました", "error", err)
			}
			return nil
		},
	})
}

func runSessionSweeper(lc fx.Lifecycle, registry *commands.TerminalRegistry) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go registry.Run(ctx, sessionSweepInterval)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}
