package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-web/config"
	"storefront-web/internal/broker"
	"storefront-web/internal/catalog"
	"storefront-web/internal/render"
	"storefront-web/internal/service"
	"storefront-web/internal/session"
	"storefront-web/internal/upstream"
	"storefront-web/internal/util"
	"storefront-web/internal/web"
	"storefront-web/internal/worker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer util.SyncLogger()
	logger := util.GetLogger()

	tp, err := util.InitTracer("storefront-web", cfg.Observ.JaegerEndpoint)
	if err != nil {
		logger.Warn("Failed to initialize tracer, continuing without tracing", zap.Error(err))
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(ctx)
		}()
	}

	sessions, err := session.NewStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Session.TTL)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer sessions.Close()

	client := upstream.NewClient(cfg.Upstream.BaseURL, &http.Client{Timeout: 15 * time.Second})
	client.SetAuthErrorHook(func() {
		util.SessionsExpiredTotal.Inc()
	})

	images := catalog.NewImageCache()
	pool := worker.NewImagePool(client, images, cfg.Catalog.ImageWorkers)
	pool.Start()
	defer pool.Stop()

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicActivity)
	defer producer.Close()
	events := broker.NewActivityPublisher(producer)

	catalogSvc := service.NewCatalogService(client, images, pool, events, cfg.Catalog.PageSize, cfg.Catalog.CategoryFetchLimit)

	registry := render.NewRegistry()
	templates, err := render.Templates()
	if err != nil {
		logger.Fatal("Failed to parse page templates", zap.Error(err))
	}
	if err := registry.Validate(templates); err != nil {
		logger.Fatal("Template registry incomplete", zap.Error(err))
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := web.NewHandler(cfg, client, catalogSvc, sessions, registry, events)
	router := web.NewRouter(handler, templates)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting storefront server",
			zap.String("port", cfg.Server.Port),
			zap.String("upstream", cfg.Upstream.BaseURL))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
	logger.Info("Server stopped")
}
