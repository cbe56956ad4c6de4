package components

import (
	"pos-terminal/internal/infra/backend"
	"pos-terminal/internal/infra/metrics"
	"pos-terminal/internal/usecase/shared"

	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		fx.Annotate(
			backend.NewGateway,
			fx.As(new(shared.SyncGateway)),
		),
		metrics.NewRegistry,
		metrics.NewRecorder,
		func(r *metrics.Recorder) shared.CheckoutRecorder {
			return r
		},
	),
)
