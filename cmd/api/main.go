package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"docregistry/docs"
	"docregistry/internal/app"
	"docregistry/internal/config"
	handlers "docregistry/internal/http/handler"
	"docregistry/internal/http/middleware"
	"docregistry/internal/logging"
	tracing "docregistry/internal/otel"
)

const shutdownTimeout = 10 * time.Second

// @title Document Registry API
// @version 1.0
// @description Correspondence registration log with per-year document numbering.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log := logging.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}

	// Persistence backend, registry engine, observers and document service
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize application", zap.Error(err))
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error("close application", zap.Error(err))
		}
	}()

	promMw, err := middleware.NewPrometheusMiddleware(a.Metrics)
	if err != nil {
		log.Fatal("failed to register http metrics", zap.Error(err))
	}

	server := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	// Register global middleware
	server.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	server.Use(middleware.RequestID())
	server.Use(middleware.Logger(log))
	server.Use(promMw.Handler())

	handlers.RegisterRoutes(server, handlers.Deps{
		Documents: a.Documents,
		Health:    a.Health,
		Metrics:   a.Metrics,
	})

	// Swagger UI with dynamic host and scheme
	server.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	// Websocket event stream runs on its own net/http listener; fasthttp connections
	// cannot be hijacked by gorilla/websocket.
	go a.Hub.Run(ctx)
	mux := http.NewServeMux()
	mux.Handle("/ws", otelhttp.NewHandler(a.Hub.Handler(), "events.subscribe"))
	eventsSrv := &http.Server{
		Addr:              cfg.EventsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info("events server listening", zap.String("addr", cfg.EventsAddr))
		if err := eventsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		addr := ":" + cfg.Port
		log.Info("http server listening", zap.String("addr", addr))
		if err := server.Listen(addr); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		log.Error("server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("http server shutdown", zap.Error(err))
	}
	if err := eventsSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("events server shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
