package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/api/handler"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/api/router"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/config"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/logger"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/storage"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/worker"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "Path to config file")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("loading config failed")
	}

	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	glog.SetLogger(hertzadapter.From(logger.Logger))
	logger.Info().Msg("configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.NewStorage(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("initializing storage failed")
	}
	defer store.Close()
	logger.Info().Msg("storage initialized")

	studentHandler := handler.NewStudentHandler(cfg, store)

	// Extraction worker runs in-process when the queue is configured.
	if store.RabbitMQ != nil {
		extractionWorker := worker.NewExtractionWorker(store, &cfg.RabbitMQ, logger.Logger)
		go func() {
			if err := extractionWorker.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error().Err(err).Msg("extraction worker stopped")
			}
		}()
		logger.Info().Msg("extraction worker started")
	}

	h := server.New(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.Use(func(c context.Context, ctx *app.RequestContext) {
		glog.CtxInfof(c, "Request: %s %s", string(ctx.Method()), string(ctx.Path()))
		ctx.Next(c)
		glog.CtxInfof(c, "Response: status %d", ctx.Response.StatusCode())
	})

	router.RegisterRoutes(h, studentHandler)
	logger.Info().Str("address", cfg.Server.Address).Msg("http server starting")

	go func() {
		if err := h.Run(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutdown signal received")

	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown failed")
	}
	logger.Info().Msg("shutdown complete")
}
