package main

import (
	"github.com/craftui/server/internal/config"
	"github.com/craftui/server/internal/generator"
)

// creates and configures all service clients
func InitializeServices(cfg *config.Config) *Services {
	generatorClient := generator.NewClient(generator.Config{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
	})

	return &Services{
		Generator: generatorClient,
	}
}
