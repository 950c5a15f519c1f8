// File: app/app.go
package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AkashAman27/cuddly-nest-blog/config"
	"github.com/AkashAman27/cuddly-nest-blog/db"
	"github.com/AkashAman27/cuddly-nest-blog/handler"
	"github.com/AkashAman27/cuddly-nest-blog/logger"
	"github.com/AkashAman27/cuddly-nest-blog/ratelimit"
	"github.com/AkashAman27/cuddly-nest-blog/repository"
	"github.com/AkashAman27/cuddly-nest-blog/router"
	"github.com/AkashAman27/cuddly-nest-blog/secure"
	"github.com/AkashAman27/cuddly-nest-blog/service"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.Migrate("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	// --- Wiring All Layers Together ---
	// Repositories, services and handlers are created here; the secure
	// pipeline and the policy presets are built once and threaded through
	// route registration.

	userRepo := repository.NewUserRepository(database)
	authService := service.NewAuthService(userRepo)

	postRepo := repository.NewPostRepository(database)
	authorRepo := repository.NewAuthorRepository(database)
	taxonomyRepo := repository.NewTaxonomyRepository(database)
	sectionRepo := repository.NewSectionRepository(database)

	taxonomyService := service.NewTaxonomyService(taxonomyRepo)
	postService := service.NewPostService(postRepo, authorRepo, taxonomyService, redisClient)
	authorService := service.NewAuthorService(authorRepo)
	sectionService := service.NewSectionService(sectionRepo, postRepo)

	limiter := ratelimit.NewRedisLimiter(redisClient, ratelimit.ClassesFromConfig())
	pipeline := secure.NewPipeline(authService, limiter)
	presets := secure.DefaultPresets()

	r := router.NewRouter(pipeline, presets, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Post:     handler.NewPostHandler(postService),
		Author:   handler.NewAuthorHandler(authorService),
		Taxonomy: handler.NewTaxonomyHandler(taxonomyService),
		Section:  handler.NewSectionHandler(sectionService),
	})

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
