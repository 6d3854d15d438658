package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/broxB/AgroPlan-sub000/internal/catalog"
	"github.com/broxB/AgroPlan-sub000/internal/config"
	"github.com/broxB/AgroPlan-sub000/internal/guidelines"
	"github.com/broxB/AgroPlan-sub000/internal/planner"
	"github.com/broxB/AgroPlan-sub000/internal/store"
)

func main() {
	// Local overrides, ignored when absent
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging.Level)
	defer logger.Sync()

	logger.Info("Connecting to database",
		zap.String("driver", cfg.Database.Driver))
	db, err := store.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	st := store.New(db)
	if err := st.AutoMigrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	gl := guidelines.New(cfg.Guidelines.Dir)

	plannerHandler := planner.NewHandler(planner.NewService(st, gl, logger), logger)
	catalogHandler := catalog.NewHandler(catalog.NewService(st, gl, logger), logger)

	// Setup Router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// Register Routes
	api := router.Group("/api/v1")
	{
		plannerHandler.RegisterRoutes(api)
		catalogHandler.RegisterRoutes(api)
	}

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	// Start Server
	srv := &http.Server{
		Addr:    cfg.Server.GetServerAddr(),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.Int("port", cfg.Server.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}

func newLogger(level string) *zap.Logger {
	if level == "debug" {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}
