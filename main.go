package main

import (
	"context"
	"log"

	"carwash-booking/cmd"
	"carwash-booking/internal/data/repository"
	"carwash-booking/internal/notify"
	"carwash-booking/internal/wire"
	"carwash-booking/pkg/database"
	"carwash-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	// Catalog cache is optional
	rdb, err := database.InitRedis(config.Redis)
	switch {
	case err != nil:
		logger.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
	case rdb != nil:
		defer rdb.Close()
		repos.Service = repository.NewCachedServiceRepository(repos.Service, rdb, config.Redis.CatalogCacheTTL, logger)
		logger.Info("Catalog cache enabled", zap.Duration("ttl", config.Redis.CatalogCacheTTL))
	}

	// Notification channels
	channels := []notify.Channel{notify.NewInboxChannel(repos.Notification)}
	if config.RabbitMQ.URL != "" {
		push, err := notify.NewAMQPChannel(config.RabbitMQ.URL, config.RabbitMQ.Queue, logger)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, push notifications disabled", zap.Error(err))
		} else {
			defer push.Close()
			channels = append(channels, push)
		}
	}
	dispatcher := notify.NewDispatcher(config.Notify, repos.User, logger, channels...)

	app := wire.Wiring(repos, config, dispatcher, notify.NewLogSMSSender(logger), logger)

	cmd.APIServer(app.Router, config.App.Port, config.App.ShutdownTimeout, logger, func(ctx context.Context) {
		if err := dispatcher.Wait(ctx); err != nil {
			logger.Warn("Pending notifications abandoned", zap.Error(err))
		}
	})
}
