package main

import (
	"flag"
	"log"
	"os"

	"DugoutEdge/internal/di"
	"DugoutEdge/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s sources=%s", cfg.Environment, cfg.Sources.Mode)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	if cfg.History.Enabled {
		log.Printf("clickhouse: connected and schema ready - db: %s", cfg.History.Database)
	}
	if cfg.Alerts.Enabled {
		log.Printf("kafka: connected brokers=%v topic=%s", cfg.Alerts.Brokers, cfg.Alerts.Topic)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
