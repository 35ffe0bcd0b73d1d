package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"newsboard/cmd/app"
	"newsboard/internal/config"
	handlers "newsboard/internal/handler"
	"newsboard/internal/logger"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()
	log := logger.New(cfg.Log)

	db, _, services, err := app.App(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialise store")
	}

	var health handlers.HealthChecker
	if db != nil {
		defer db.CloseDB()
		health = db
	}

	handlerChain := app.APIHandler(cfg, services, health, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           handlerChain,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.WithField("store", cfg.StoreDriver).Info("content API configured")
	if err := app.Serve(srv, log); err != nil {
		log.WithError(err).Error("server stopped with error")
		os.Exit(1)
	}
}
