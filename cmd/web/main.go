package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"newsboard/cmd/app"
	"newsboard/internal/config"
	"newsboard/internal/logger"
	"newsboard/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()
	log := logger.New(cfg.Log)

	server, closeSessions, err := app.WebApp(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialise web client")
	}
	defer closeSessions()

	router := server.Routes()
	router.Use(mux.MiddlewareFunc(middleware.LoggingMiddleware(log)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Web.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	log.WithFields(logrus.Fields{
		"api":     cfg.Web.APIBaseURL,
		"uploads": cfg.Web.UploadBackend,
		"session": cfg.Web.SessionStore,
	}).Info("web client configured")

	if err := app.Serve(srv, log); err != nil {
		log.WithError(err).Error("server stopped with error")
		os.Exit(1)
	}
}
