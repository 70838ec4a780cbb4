// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"wordchain/internal/config"
	"wordchain/internal/game"
	"wordchain/internal/handlers"
	"wordchain/internal/history"
)

func main() {
	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("unknown log level %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	rules := game.DefaultRules()
	if cfg.RoundSeconds > 0 {
		rules.RoundDuration = time.Duration(cfg.RoundSeconds) * time.Second
	}

	store := game.NewStore(logger, rules)

	if cfg.RedisAddr != "" {
		publisher, err := history.Connect(cfg.RedisAddr, cfg.RedisDB, cfg.ResultsQueue)
		if err != nil {
			logger.Fatalf("failed to connect to Redis: %v", err)
		}
		defer publisher.Close()

		store.OnGameEnd = func(result game.GameResult) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := publisher.Publish(ctx, result); err != nil {
				logger.WithField("game_id", result.GameID).Warnf("failed to publish game result: %v", err)
			}
		}
		logger.Infof("publishing game results to Redis at %s", cfg.RedisAddr)
	}

	srv := handlers.NewServer(logger, store)

	addr := ":" + cfg.Port
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, srv.Routes()); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}
