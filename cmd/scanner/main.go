package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lk2023060901/youtube-searcher-backend/internal/conf"
	"github.com/lk2023060901/youtube-searcher-backend/internal/data"
	"github.com/lk2023060901/youtube-searcher-backend/internal/pkg/logger"
	"github.com/lk2023060901/youtube-searcher-backend/internal/scanner"
	searchbiz "github.com/lk2023060901/youtube-searcher-backend/internal/search/biz"
	"github.com/lk2023060901/youtube-searcher-backend/internal/search/provider"
	searchtypes "github.com/lk2023060901/youtube-searcher-backend/internal/search/types"
	storagebiz "github.com/lk2023060901/youtube-searcher-backend/internal/storage/biz"
	storagedata "github.com/lk2023060901/youtube-searcher-backend/internal/storage/data"
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

	d, cleanup, err := data.NewData(config, log, data.Options{})
	if err != nil {
		log.Fatal("failed to initialize data layer", zap.Error(err))
	}
	defer cleanup()

	responseRepo := storagedata.NewResponseRepo(d.DB)
	snippetRepo := storagedata.NewSnippetRepo(d.DB)
	storageUseCase := storagebiz.NewStorageUseCase(responseRepo, snippetRepo, log)

	factory := provider.NewFactory()
	youtubeProvider, err := factory.Create(&searchtypes.ProviderConfig{
		ID:         searchtypes.ProviderYouTube,
		Name:       "YouTube Data API",
		APIHost:    config.YouTube.APIHost,
		APIKey:     config.YouTube.APIKey,
		Timeout:    int(config.YouTube.Timeout.Seconds()),
		RegionCode: config.YouTube.RegionCode,
		MaxResults: config.YouTube.MaxResults,
	})
	if err != nil {
		log.Fatal("failed to create search provider", zap.Error(err))
	}

	searchUseCase := searchbiz.NewSearchUseCase(youtubeProvider, storageUseCase, config.YouTube.MaxResults, log)

	queryConfig, err := scanner.LoadConfig(config.Scanner.QueryConfigPath)
	if err != nil {
		log.Fatal("failed to load query config", zap.Error(err))
	}

	sc, err := scanner.New(queryConfig, searchUseCase, config.Scanner.MaxItemsPerScan, config.Scanner.MaxQueries, log)
	if err != nil {
		log.Fatal("invalid query config", zap.Error(err))
	}

	if err := sc.Start(); err != nil {
		log.Fatal("failed to start scanner", zap.Error(err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down scanner...")
	sc.Stop()
	log.Info("scanner exited")
}
