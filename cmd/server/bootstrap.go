package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/teamflow/backend/internal/config"
	"github.com/teamflow/backend/internal/models"
	"github.com/teamflow/backend/internal/services"
	"github.com/teamflow/backend/internal/utils"
	"github.com/teamflow/backend/pkg/logger"
)

// App holds the wired server and the background components that need a
// graceful stop.
type App struct {
	cfg       *config.Config
	router    *gin.Engine
	queue     services.TaskQueue
	worker    *services.Worker
	scheduler *services.Scheduler
}

// bootstrap wires the database, services, background workers and routes.
func bootstrap(cfg *config.Config) (*App, error) {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		return nil, err
	}
	if err := models.AutoMigrate(); err != nil {
		return nil, err
	}
	db := models.GetDB()

	// Notification pipeline: async via Redis when available, in-process otherwise
	notification := services.NewNotificationService(&cfg.Email)
	queue := services.InitTaskQueue(cfg)

	var worker *services.Worker
	if queue.IsAsync() {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(notification.ProcessInviteTask)
			if err := worker.Start(); err != nil {
				return nil, err
			}
		}
	} else if syncQueue, ok := queue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(notification.ProcessInviteTask)
	}

	systemLog := services.NewSystemLogService(db)

	scheduler := services.NewScheduler(db, cfg, systemLog)
	if err := scheduler.Start(); err != nil {
		return nil, err
	}

	app := &App{
		cfg:       cfg,
		queue:     queue,
		worker:    worker,
		scheduler: scheduler,
	}
	app.router = buildRouter(cfg, db, queue, systemLog)

	return app, nil
}

// Run serves HTTP until SIGINT/SIGTERM, then drains in-flight requests and
// stops the background components.
func (a *App) Run() {
	addr := a.cfg.Server.Host + ":" + a.cfg.Server.Port

	srv := &http.Server{
		Addr:    addr,
		Handler: a.router,
	}

	go func() {
		logger.Infof("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("forced shutdown: %v", err)
	}

	a.scheduler.Stop()
	if a.worker != nil {
		a.worker.Stop()
	}
	if err := a.queue.Close(); err != nil {
		logger.Warnf("queue close: %v", err)
	}

	logger.Infof("server stopped")
}
