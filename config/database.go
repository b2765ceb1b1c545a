package config

import (
	"context"
	"time"

	"eduportal-backend/internal/repository"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectStore opens the persistence driver selected by cfg.StoreDriver.
func ConnectStore(ctx context.Context, cfg *Config, log *zap.Logger) (repository.Store, error) {
	switch cfg.StoreDriver {
	case DriverMongo:
		return connectMongo(ctx, cfg, log)
	case DriverPostgres:
		return connectPostgres(cfg, log)
	default:
		store, err := repository.OpenBolt(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		log.Info("connected to bolt", zap.String("path", cfg.BoltPath))
		return store, nil
	}
}

func connectMongo(ctx context.Context, cfg *Config, log *zap.Logger) (repository.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to MongoDB")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "pinging MongoDB")
	}
	store, err := repository.NewMongoStore(ctx, client, cfg.MongoDBName)
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	log.Info("connected to MongoDB", zap.String("database", cfg.MongoDBName))
	return store, nil
}

func connectPostgres(cfg *Config, log *zap.Logger) (repository.Store, error) {
	gormLog := logger.Default.LogMode(logger.Silent)
	if cfg.Debug {
		gormLog = logger.Default.LogMode(logger.Info)
	}
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormLog,
	})
	if err != nil {
		return nil, errors.Wrap(err, "connecting to PostgreSQL")
	}
	store, err := repository.NewPostgresStore(db)
	if err != nil {
		return nil, err
	}
	log.Info("connected to PostgreSQL", zap.String("host", cfg.Postgres.Host), zap.String("database", cfg.Postgres.Name))
	return store, nil
}
