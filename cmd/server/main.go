package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/teamflow/backend/internal/config"
	"github.com/teamflow/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	logger.Init(cfg.Log.Level)
	gin.SetMode(cfg.Server.Mode)

	app, err := bootstrap(cfg)
	if err != nil {
		logger.Fatalf("failed to start: %v", err)
	}

	app.Run()
}
