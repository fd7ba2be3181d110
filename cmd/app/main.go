package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trackmate/cmd"
	"trackmate/internal/adapters/out/kafka"
	"trackmate/internal/adapters/out/postgres"
	"trackmate/internal/adapters/out/rediscache"
	"trackmate/internal/adapters/out/zonecatalog"

	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	redisClient, err := rediscache.NewClient(ctx, configs.RedisAddr)
	if err != nil {
		log.Fatalf("Error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	producer := kafka.NewProducer(configs.KafkaBrokers)
	defer producer.Close()

	zones, err := zonecatalog.Load(configs.ZonesFile)
	if err != nil {
		log.Fatalf("Error loading zone catalog: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, redisClient, producer, zones, logger)
	if err != nil {
		log.Fatalf("Error wiring application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, app, configs.HTTPPort, logger)
}

// startWebServer serves the API until ctx is cancelled.
func startWebServer(ctx context.Context, app cmd.CompositionRoot, port string, logger *slog.Logger) {
	e, err := app.CreateRouter()
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			log.Fatalf("Error serving http: %v", startErr)
		}
	}()
	logger.InfoContext(ctx, "Server started", "port", port)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "Server shutdown failed", "error", err)
	}
}
