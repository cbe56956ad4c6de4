package middleware

import (
	"log/slog"
	"slices"
	"strings"

	"pos-terminal/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// The till UI needs these regardless of what the deployment configures.
var (
	requiredAllowHeaders  = []string{"Authorization", "Content-Type", TerminalHeader, RequestIDHeader, "Last-Event-ID"}
	requiredExposeHeaders = []string{RequestIDHeader, "Content-Disposition"}
)

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     mergeHeaders(cfg.AllowHeaders, requiredAllowHeaders),
		ExposeHeaders:    mergeHeaders(cfg.ExposeHeaders, requiredExposeHeaders),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized", "allow_origins", cfg.AllowOrigins, "allow_headers", corsCfg.AllowHeaders)
	return cors.New(corsCfg)
}

func mergeHeaders(configured, required []string) []string {
	merged := slices.Clone(configured)
	for _, h := range required {
		if !slices.ContainsFunc(merged, func(c string) bool { return strings.EqualFold(c, h) }) {
			merged = append(merged, h)
		}
	}
	return merged
}
