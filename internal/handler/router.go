package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"pos-terminal/internal/handler/api"
	"pos-terminal/internal/handler/middleware"
	"pos-terminal/internal/infra/metrics"
	"pos-terminal/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type routerDeps struct {
	Config          config.Config
	Logger          *middleware.Logger
	Metrics         *metrics.Recorder
	TerminalHandler *api.TerminalHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	recorder *metrics.Recorder,
	terminalHandler *api.TerminalHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	deps := routerDeps{
		Config:          cfg,
		Logger:          logger,
		Metrics:         recorder,
		TerminalHandler: terminalHandler,
		AuthMiddleware:  authMiddleware,
	}
	setupMiddleware(engine, deps)
	setupRoutes(engine, deps)
}

func setupMiddleware(engine *gin.Engine, deps routerDeps) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(deps.Config.CORS))
	if deps.Config.Metrics.Enabled {
		engine.Use(deps.Metrics.GinMiddleware())
	}
	engine.Use(deps.Logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, deps routerDeps) {
	engine.GET("/health", healthCheck)

	if deps.Config.Metrics.Enabled {
		engine.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := deps.TerminalHandler
	apiGroup := engine.Group("/api")
	{
		terminal := apiGroup.Group("/terminal")
		terminal.Use(deps.AuthMiddleware.RequireAuth())
		{
			addRoutes(terminal, []route{
				{Method: http.MethodGet, Path: "", Handler: h.View},
				{Method: http.MethodGet, Path: "/products", Handler: h.Search},
				{Method: http.MethodGet, Path: "/events", Handler: h.Events, Mw: []gin.HandlerFunc{middleware.EventStream()}},
				{Method: http.MethodPost, Path: "/catalog/refresh", Handler: h.RefreshCatalog},
			})

			addRoutes(terminal.Group("/cart"), []route{
				{Method: http.MethodPost, Path: "/items", Handler: h.AddItem},
				{Method: http.MethodDelete, Path: "/items/:productId", Handler: h.RemoveItem},
			})

			addRoutes(terminal.Group("/checkout"), []route{
				{Method: http.MethodPost, Path: "", Handler: h.BeginCheckout},
				{Method: http.MethodPatch, Path: "", Handler: h.UpdateCheckout},
				{Method: http.MethodDelete, Path: "", Handler: h.CancelCheckout},
				{Method: http.MethodPost, Path: "/confirm", Handler: h.ConfirmCheckout},
			})

			addRoutes(terminal.Group("/sales"), []route{
				{Method: http.MethodGet, Path: "/:id/receipt", Handler: h.Receipt},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
