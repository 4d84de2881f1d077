package main

import (
	"context"
	"ghprofile/config"
	"ghprofile/logger"
	"ghprofile/output"
	"ghprofile/service"
	"log"
	"path/filepath"
)

func main() {
	cfg := config.NewConfig()
	if err := cfg.Load(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := output.EnsureDir(cfg.OutputDir); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel, "stdout", filepath.Join(cfg.OutputDir, output.LogFile)); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Token == "" {
		logger.Warn("GITHUB_TOKEN is not set, running unauthenticated with a low rate limit")
	}

	svc, err := service.NewService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize service: %v", err)
	}

	manifest, err := svc.Run(context.Background())
	if err != nil {
		log.Fatalf("Report generation failed: %v", err)
	}

	output.PrintManifest(manifest)
}
