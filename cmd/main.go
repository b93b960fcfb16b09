package main

import (
	"go.uber.org/fx"

	"borica-qes/internal/config"
	deliveryhttp "borica-qes/internal/delivery/http"
	"borica-qes/internal/infrastructure/database"
	"borica-qes/internal/infrastructure/document"
	"borica-qes/internal/infrastructure/httpclient"
	"borica-qes/internal/infrastructure/logger"
	"borica-qes/internal/infrastructure/notifier"
	"borica-qes/internal/infrastructure/redis"
	"borica-qes/internal/infrastructure/repository"
	"borica-qes/internal/server"
	"borica-qes/internal/usecase"
)

func main() {
	fx.New(
		// Configuration
		config.Module,

		// Infrastructure
		logger.Module,
		database.Module,
		redis.Module,
		document.Module,
		httpclient.Module,
		notifier.Module,
		repository.Module,

		// Business Logic
		usecase.Module,

		// Delivery
		deliveryhttp.Module,

		// Server
		server.Module,
	).Run()
}
