package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"task_manager/internal/config"
	"task_manager/internal/handlers"
	"task_manager/internal/logger"
	"task_manager/internal/repository"
	"task_manager/internal/server"
	"task_manager/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config from env; missing signing secret is fatal at startup
	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("error loading config", "err", err)
	}

	// open DB
	db, err := openDB(cfg)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, cfg)
	apiHandler := handlers.NewHandler(services, cfg, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func openDB(cfg *config.Config) (*sql.DB, error) {
	return repository.InitDB(cfg.DBPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
