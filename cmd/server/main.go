package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lk2023060901/youtube-searcher-backend/internal/conf"
	"github.com/lk2023060901/youtube-searcher-backend/internal/data"
	"github.com/lk2023060901/youtube-searcher-backend/internal/pkg/logger"
	"github.com/lk2023060901/youtube-searcher-backend/internal/server"
	storagebiz "github.com/lk2023060901/youtube-searcher-backend/internal/storage/biz"
	storagedata "github.com/lk2023060901/youtube-searcher-backend/internal/storage/data"
	"github.com/lk2023060901/youtube-searcher-backend/internal/storage/service"
	"go.uber.org/zap"
)

var (
	configFile = flag.String("config", "config.yaml", "config file path")
)

func main() {
	flag.Parse()

	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logConfig := &logger.Config{
		Level:            config.Log.Level,
		Format:           config.Log.Format,
		Output:           config.Log.Output,
		EnableCaller:     config.Log.EnableCaller,
		EnableStacktrace: config.Log.EnableStacktrace,
		File: logger.FileConfig{
			Filename:   config.Log.File.Filename,
			MaxSize:    config.Log.File.MaxSize,
			MaxAge:     config.Log.File.MaxAge,
			MaxBackups: config.Log.File.MaxBackups,
			Compress:   config.Log.File.Compress,
		},
	}

	log, err := logger.New(logConfig)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	if err := logger.InitGlobal(logConfig); err != nil {
		log.Fatal("failed to initialize global logger", zap.Error(err))
	}

	log.Info("config loaded successfully")

	d, cleanup, err := data.NewData(config, log, data.Options{Redis: true})
	if err != nil {
		log.Fatal("failed to initialize data layer", zap.Error(err))
	}
	defer cleanup()

	responseRepo := storagedata.NewResponseRepo(d.DB)
	snippetRepo := storagedata.NewSnippetRepo(d.DB)
	storageUseCase := storagebiz.NewStorageUseCase(responseRepo, snippetRepo, log)

	storageService := service.NewStorageService(storageUseCase, d.RedisClient, config.Redis.CacheTTL, log.Logger)

	httpServer := server.NewHTTPServer(config, log, storageService)

	go func() {
		if err := httpServer.Start(); err != nil {
			log.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	log.Info("server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Stop(ctx); err != nil {
		log.Error("HTTP server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
