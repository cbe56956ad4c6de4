package bootstrap

import (
	"pos-terminal/internal/pkg/config"
	"pos-terminal/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

// NewJWTService only validates tokens in production; the backend login issues them.
func NewJWTService(cfg config.Config) *jwt.Service {
	opts := []jwt.Option{jwt.WithLeeway(cfg.JWT.Leeway)}
	if cfg.JWT.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.JWT.Issuer))
	}
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.Duration, opts...)
}
