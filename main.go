package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"news-portal/bootstrap"
	"news-portal/config"
	"news-portal/routes"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	log := config.NewLogger(cfg)
	if cfg.UsesDefaultJWTSecret() {
		log.Warn("JWT_SECRET is not set, using the built-in development secret")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := config.InitDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Schema and default administrator must exist before serving.
	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = bootstrap.Run(bootCtx, db, bootstrap.Options{
		WithImages:    cfg.FeatureImages,
		AdminName:     cfg.AdminName,
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	}, log)
	cancel()
	if err != nil {
		_ = config.CloseDB(db)
		log.WithError(err).Fatal("Database bootstrap failed")
	}

	router, err := routes.Setup(cfg, db, log)
	if err != nil {
		_ = config.CloseDB(db)
		log.WithError(err).Fatal("Failed to build router")
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port":        cfg.Port,
			"driver":      cfg.DBDriver,
			"author_join": cfg.FeatureAuthorJoin,
			"images":      cfg.FeatureImages,
		}).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	if err := config.CloseDB(db); err != nil {
		log.WithError(err).Error("Failed to close database")
	}
	log.Info("Server exited")
}
