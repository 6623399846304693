package main

import (
	"fmt"
	"os"

	"solar-thermal-sizing/internal/api"
	"solar-thermal-sizing/internal/api/handlers"
	"solar-thermal-sizing/internal/config"
	"solar-thermal-sizing/internal/data"
	"solar-thermal-sizing/internal/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	defer logger.Close()

	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// API_CONFIG only supplies the model constants and the log level; household,
	// collector and economics come with each request.
	cfg, err := config.Load(os.Getenv("API_CONFIG"))
	if err != nil {
		logger.L().Fatalf("Failed to load config: %v", err)
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if err := logger.SetLogLevelString(cfg.LogLevel); err != nil {
		logger.L().Fatalf("Invalid log level: %v", err)
	}

	climateDir := data.GetDefaultClimateDir()
	datasets, err := data.ListDatasets(climateDir)
	if err != nil {
		logger.L().Warnf("Climate directory %s unreadable: %v", climateDir, err)
	} else if len(datasets) == 0 {
		logger.L().Warnf("No climate datasets found in %s; requests must send inline records", climateDir)
	} else {
		logger.L().Infof("Climate directory %s: %d datasets", climateDir, len(datasets))
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	sizingHandler := handlers.NewSizingHandler(climateDir, data.NewTableCache(), cfg.ModelConstants())
	router := api.NewRouter(sizingHandler)

	// Start server
	addr := fmt.Sprintf(":%s", port)
	logger.L().Infof("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		logger.L().Fatalf("Failed to start server: %v", err)
	}
}
