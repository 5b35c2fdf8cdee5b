package main

import (
	"fmt"
	"log"

	"dartapi/internal/config"
	"dartapi/internal/pkg/dart"
	"dartapi/internal/routes"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dartClient := dart.New(cfg.DartAPIKey)

	router := routes.SetupRouter(dartClient, cfg)

	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting server on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
