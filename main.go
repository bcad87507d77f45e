package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/drinkph/portal-go/config"
	"github.com/drinkph/portal-go/db"
	"github.com/drinkph/portal-go/handlers"
	"github.com/drinkph/portal-go/logger"
	"github.com/drinkph/portal-go/middleware"
	"github.com/drinkph/portal-go/notify"
	"github.com/drinkph/portal-go/repositories"
	"github.com/drinkph/portal-go/routes"
	"github.com/drinkph/portal-go/scheduler"
	"github.com/drinkph/portal-go/services"
	"github.com/drinkph/portal-go/workflow"
)

func main() {
	config.LoadConfig()

	if config.LogFile != "" {
		fileLogger, err := logger.NewWithFileRotation(config.LogFile)
		if err != nil {
			logger.Fatal("failed to open log file %s: %v", config.LogFile, err)
		}
		logger.SetDefaultLogger(fileLogger)
	}
	defer logger.Sync()

	db.Init()

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("redis unreachable at %s: %v", config.RedisAddr, err)
	}

	repos := repositories.New()
	hub := notify.NewHub()
	sink := notify.Fanout(notify.LogSink{}, hub)

	authService := services.NewAuthService(repos)
	projectService := services.NewProjectService(repos, sink)

	draftStore := repositories.NewRedisDraftStore(rdb, config.DraftTTL)
	manager := workflow.NewManager(
		workflow.NewClock(),
		draftStore,
		projectService,
		sink,
		config.AutoSaveDelay,
		config.DismissDelay,
	)

	jobs, err := scheduler.NewManager(authService, manager)
	if err != nil {
		logger.Fatal("failed to create scheduler: %v", err)
	}
	jobs.Start()
	defer jobs.Stop()

	auth := middleware.NewAuth(authService)
	r := gin.Default()
	routes.RegisterRoutes(r, auth,
		handlers.NewAuthHandler(authService),
		handlers.NewDraftHandler(manager),
		handlers.NewProjectHandler(projectService),
		handlers.NewWSHandler(authService, hub),
	)

	srv := &http.Server{
		Addr:    ":" + config.ServerPort,
		Handler: r,
	}

	go func() {
		logger.Info("listening on :%s", config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	// Flush any pending draft auto-saves before the process exits.
	manager.EvictIdle(0)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown: %v", err)
	}
}
