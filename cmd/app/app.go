package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/careerfair/jobfair-api/internal/api"
	"github.com/careerfair/jobfair-api/internal/cache"
	"github.com/careerfair/jobfair-api/internal/config"
	"github.com/careerfair/jobfair-api/internal/db"
	"github.com/careerfair/jobfair-api/internal/logger"
	"github.com/careerfair/jobfair-api/internal/notify"
	"github.com/careerfair/jobfair-api/internal/repository/dao"
	"github.com/careerfair/jobfair-api/internal/service"
)

const configPath = "./cmd/app/config.yml"

func Start() error {
	conf, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate database -> %w", err)
	}

	statsCache, err := openStatsCache(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize redis -> %w", err)
	}

	publisher, closePublisher, err := openPublisher(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize rabbitmq -> %w", err)
	}
	defer closePublisher()

	s, err := api.NewServer(conf, postgresDB, statsCache, publisher)
	if err != nil {
		return fmt.Errorf("failed to initialize server -> %w", err)
	}

	conf.Watch(func(reloaded *config.AppConfig) {
		s.Assignments.SetBulkOptions(service.BulkOptions{
			BatchSize:  reloaded.Assignment.BulkBatchSize,
			BatchPause: reloaded.Assignment.BulkBatchPause,
		})
		zap.L().Info("bulk assignment options reloaded",
			zap.Int("batch_size", reloaded.Assignment.BulkBatchSize),
			zap.Duration("batch_pause", reloaded.Assignment.BulkBatchPause))
	}, func(err error) {
		zap.L().Warn("ignoring invalid config reload", zap.Error(err))
	})

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

func openStatsCache(conf *config.AppConfig) (service.StatsCache, error) {
	if url := os.Getenv("REDIS_URL"); url != "" {
		conf.Redis.URL = url
		conf.Redis.Enabled = true
	}
	if !conf.Redis.Enabled {
		zap.L().Info("redis disabled, statistics are not cached")
		return cache.Noop{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := cache.NewRedisClient(ctx, conf.Redis)
	if err != nil {
		return nil, err
	}

	return cache.NewStatsCache(client, conf.Assignment.StatsCacheTTL), nil
}

func openPublisher(conf *config.AppConfig) (service.EventPublisher, func(), error) {
	url := os.Getenv("AMQP_URL")
	if url == "" {
		url = conf.RabbitMQ.URL
	}
	if url == "" {
		zap.L().Info("rabbitmq disabled, assignment events are not published")
		return notify.Noop{}, func() {}, nil
	}

	publisher, err := notify.DialAMQP(url, conf.RabbitMQ.Queue)
	if err != nil {
		return nil, nil, err
	}

	return publisher, func() {
		if err := publisher.Close(); err != nil {
			zap.L().Warn("failed to close rabbitmq publisher", zap.Error(err))
		}
	}, nil
}
