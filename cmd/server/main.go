// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"palmier/internal/config"
	"palmier/internal/handlers"
	"palmier/internal/middleware"
	"palmier/internal/session"
	"palmier/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	st, closeStore, err := newStore(cfg)
	if err != nil {
		logger.Fatalf("store init: %v", err)
	}
	defer closeStore()

	svc := session.NewService(st, logger)
	srv := handlers.NewServer(svc, logger)

	mux := http.NewServeMux()

	// session endpoints
	mux.Handle("/game/", middleware.LogMiddleware(logger)(srv.GetGameHandler()))
	mux.Handle("/games", middleware.LogMiddleware(logger)(srv.ListGamesHandler()))
	mux.Handle("/create-game", middleware.LogMiddleware(logger)(srv.CreateGameHandler()))
	mux.Handle("/join-game/", middleware.LogMiddleware(logger)(srv.JoinGameHandler()))
	mux.Handle("/update-game/", middleware.LogMiddleware(logger)(srv.UpdateGameHandler()))

	// presence websocket
	mux.Handle("/ws", handlers.PresenceWSHandler(logger, srv.Presence))

	addr := ":" + cfg.Port
	logger.Infof("Running on %s (store=%s)", addr, cfg.StoreBackend)
	if err := http.ListenAndServe(addr, middleware.CORS(mux)); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// newStore builds the configured store backend and returns it with a
// teardown func.
func newStore(cfg config.Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendFile:
		return store.NewFileStore(cfg.DataDir), func() {}, nil
	case config.BackendPostgres:
		ps, err := store.NewPostgresStore(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return ps, ps.Close, nil
	case config.BackendRedis:
		rs, err := store.NewRedisStore(context.Background(), cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return rs, rs.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}
