// main.go
package main

import (
	"context"
	"log"
	"time"

	"cinema-reservation/cmd"
	"cinema-reservation/internal/cache"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/queue"
	"cinema-reservation/internal/wire"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/utils"

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

	// Apply schema
	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(migrateCtx, db); err != nil {
		logger.Fatal("Failed to migrate schema", zap.Error(err))
	}

	// Seat cache opsional; nil client berarti selalu baca database
	redisClient := cache.NewRedisClient(config.Redis, logger)
	seatCache := cache.NewSeatCache(redisClient, logger)
	if redisClient != nil {
		defer redisClient.Close()
		logger.Info("Seat cache enabled", zap.String("addr", config.Redis.Addr))
	}

	// Event publisher opsional; booking tetap jalan tanpa broker
	publisher, err := queue.NewPublisher(config.AMQP, logger)
	if err != nil {
		logger.Warn("Event publisher disabled", zap.Error(err))
		publisher = nil
	}
	if publisher != nil {
		defer publisher.Close()
		logger.Info("Event publisher connected")
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, db, seatCache, publisher, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port, logger)
}
