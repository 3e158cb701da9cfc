package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"waterbuddy/internal/handlers"
	"waterbuddy/internal/logger"
	"waterbuddy/internal/repository"
	"waterbuddy/internal/server"
	"waterbuddy/internal/service"
	"waterbuddy/internal/store"

	"github.com/spf13/viper"
)

const tipRotateInterval = time.Hour

func main() {
	// load config.yml first so the log level comes from it
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log.level"))

	// pick the document-store backend
	st, closeStore, err := openStore(log)
	if err != nil {
		log.Fatalw("failed to init store", "err", err)
	}
	defer func() {
		if cerr := closeStore(); cerr != nil {
			log.Errorw("failed to close store", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(st, usersNode())
	services := service.NewService(repos, log, serviceConfig())
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// rotate the tip of the day while the server runs
	go services.Tips.Run(ctx, tipRotateInterval)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

func usersNode() string {
	if node := viper.GetString("store.users_node"); node != "" {
		return node
	}
	return "users"
}

func serviceConfig() service.Config {
	ttl := viper.GetInt("auth.token_ttl_minutes")
	if ttl <= 0 {
		ttl = 60
	}
	return service.Config{
		SigningKey:    viper.GetString("auth.signing_key"),
		TokenTTL:      time.Duration(ttl) * time.Minute,
		DefaultGoalML: viper.GetInt("goal.default_ml"),
	}
}

// openStore builds the configured store client: the hosted REST facade,
// or the local sqlite backend for development and offline use.
func openStore(log *logger.Logger) (store.Client, func() error, error) {
	noop := func() error { return nil }

	switch backend := viper.GetString("store.backend"); backend {
	case "sqlite":
		dbPath := viper.GetString("db.path")
		if dbPath == "" {
			log.Infow("db.path not set in config; using default file", "default", "waterbuddy.db")
			dbPath = "waterbuddy.db"
		}
		db, err := store.InitDB(dbPath)
		if err != nil {
			return nil, noop, err
		}
		return store.NewSQLite(db), db.Close, nil

	case "", "firebase":
		baseURL := viper.GetString("store.base_url")
		if baseURL == "" {
			return nil, noop, fmt.Errorf("store.base_url is required for the firebase backend")
		}
		timeout := viper.GetInt("store.timeout_seconds")
		if timeout <= 0 {
			timeout = 10
		}
		return store.NewFirebase(baseURL, time.Duration(timeout)*time.Second, log), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", backend)
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
