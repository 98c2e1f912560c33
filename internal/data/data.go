package data

import (
	"fmt"

	"github.com/lk2023060901/youtube-searcher-backend/internal/conf"
	"github.com/lk2023060901/youtube-searcher-backend/internal/pkg/database"
	"github.com/lk2023060901/youtube-searcher-backend/internal/pkg/logger"
	pkgredis "github.com/lk2023060901/youtube-searcher-backend/internal/pkg/redis"
	storagedata "github.com/lk2023060901/youtube-searcher-backend/internal/storage/data"
)

// Data bundles the shared infrastructure clients
type Data struct {
	DB          *database.DB
	RedisClient *pkgredis.Client
	Logger      *logger.Logger
}

// Options toggles which clients NewData initializes. The scanner process
// has no use for the read cache.
type Options struct {
	Redis bool
}

// NewData initializes the database (with schema migration) and, when
// requested, the redis client. The returned cleanup closes everything.
func NewData(config *conf.Config, log *logger.Logger, opts Options) (*Data, func(), error) {
	db, err := initDB(config, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init database: %w", err)
	}

	var redisClient *pkgredis.Client
	if opts.Redis {
		redisClient, err = initRedis(config, log)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to init redis: %w", err)
		}
	}

	d := &Data{
		DB:          db,
		RedisClient: redisClient,
		Logger:      log,
	}

	cleanup := func() {
		log.Info("cleaning up data resources")

		if redisClient != nil {
			redisClient.Close()
		}
		db.Close()
	}

	return d, cleanup, nil
}

func initDB(config *conf.Config, log *logger.Logger) (*database.DB, error) {
	dbCfg := database.DefaultConfig()
	dbCfg.Host = config.Database.Host
	dbCfg.Port = config.Database.Port
	dbCfg.User = config.Database.User
	dbCfg.Password = config.Database.Password
	dbCfg.DBName = config.Database.DBName
	dbCfg.SSLMode = config.Database.SSLMode

	db, err := database.New(dbCfg, log)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&storagedata.ResponsePO{}, &storagedata.SnippetPO{}); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	return db, nil
}

func initRedis(config *conf.Config, log *logger.Logger) (*pkgredis.Client, error) {
	return pkgredis.New(&pkgredis.Config{
		Addr:     config.Redis.Addr(),
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	}, log)
}
