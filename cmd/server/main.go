package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	playgroundvalidator "github.com/go-playground/validator/v10"
	"go.uber.org/fx"

	"github.com/novastream/novastream/internal/api"
	v1 "github.com/novastream/novastream/internal/api/v1"
	"github.com/novastream/novastream/internal/config"
	"github.com/novastream/novastream/internal/logger"
	"github.com/novastream/novastream/internal/service"
	"github.com/novastream/novastream/internal/types"
	"github.com/novastream/novastream/internal/validator"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Services
			provideServiceParams,
			service.NewInstallationService,
			service.NewTvQuoteService,
			service.NewStreamingQuoteService,
			service.NewOrderService,

			// API
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideServiceParams(cfg *config.Configuration, log *logger.Logger) service.ServiceParams {
	return service.ServiceParams{
		Logger: log,
		Config: cfg,
	}
}

// the validator dependency forces its initialization before any request
// validation runs
func provideHandlers(
	_ *playgroundvalidator.Validate,
	cfg *config.Configuration,
	log *logger.Logger,
	tvService service.TvQuoteService,
	streamingService service.StreamingQuoteService,
	orderService service.OrderService,
) api.Handlers {
	return api.Handlers{
		Quote:   v1.NewQuoteHandler(tvService, streamingService, orderService, cfg.Pricing.Currency, log),
		Catalog: v1.NewCatalogHandler(log),
	}
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	router *gin.Engine,
	log *logger.Logger,
) {
	if cfg.Deployment.Mode == types.ModeAPI {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("starting server on %s", cfg.Server.Address)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("shutting down server")
			return server.Shutdown(ctx)
		},
	})
}
