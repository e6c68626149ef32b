package main

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Online/internal/api/controller"
	"ctchen222/Tic-Tac-Toe-Online/internal/api/service"
	"ctchen222/Tic-Tac-Toe-Online/internal/config"
	"ctchen222/Tic-Tac-Toe-Online/internal/db"
	"ctchen222/Tic-Tac-Toe-Online/internal/hub"
	"ctchen222/Tic-Tac-Toe-Online/internal/logger"
	"ctchen222/Tic-Tac-Toe-Online/internal/repository"
	"ctchen222/Tic-Tac-Toe-Online/internal/server"
	"ctchen222/Tic-Tac-Toe-Online/internal/telemetry"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	ctx := context.Background()

	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: error loading .env file: %v", err)
	}

	cfg := config.MustLoad(os.Getenv("CONFIG_PATH"))
	logger.Init(cfg.LogLevel, os.Stdout)

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.ServiceName)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			slog.Error("error shutting down telemetry", "error", err)
		}
	}()

	// Create repositories
	var matchRepo repository.MatchRepository
	switch cfg.Server.Store {
	case config.StoreRedis:
		rdb, err := db.NewRedisClient(ctx, cfg.Redis.GetRedisAddr())
		if err != nil {
			log.Fatalf("failed to initialize redis: %v", err)
		}
		defer rdb.Close()
		matchRepo = repository.NewRedisMatchRepository(rdb)
	default:
		matchRepo = repository.NewMemoryMatchRepository()
	}
	slog.Info("match store ready", "store", cfg.Server.Store)

	matchController := controller.NewMatchController(service.NewMatchService(matchRepo))
	srv := server.NewServer(hub.NewHub(matchRepo), matchRepo, matchController)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: otelhttp.NewHandler(srv.Engine(), "tic-tac-toe"),
	}

	go func() {
		slog.Info("http server started", "server.addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server exiting")
}
