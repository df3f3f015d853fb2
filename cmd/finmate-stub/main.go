package main

import (
	"log/slog"
	"os"

	"github.com/namnm309/finmate-go/internal/platform/config"
	"github.com/namnm309/finmate-go/internal/stubserver"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store := stubserver.NewStore()
	userID, err := store.AddUser(cfg.StubSeedEmail, cfg.StubSeedPass)
	if err != nil {
		logger.Error("Failed to seed user", slog.String("error", err.Error()))
		os.Exit(1)
	}
	store.Seed(userID, cfg.StubSeedCount)
	logger.Info("Seeded fixture data",
		slog.String("email", cfg.StubSeedEmail),
		slog.Int("transactions", cfg.StubSeedCount))

	srv := stubserver.NewServer(stubserver.Config{
		JWTSecret: cfg.StubJWTSecret,
		JWTExpiry: cfg.StubJWTExpiry,
		Issuer:    cfg.StubIssuer,
	}, store, stubserver.NewHub(logger), logger)

	logger.Info("Stub server listening", slog.String("port", cfg.StubPort))
	if err := srv.Router().Run(":" + cfg.StubPort); err != nil {
		logger.Error("Server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
