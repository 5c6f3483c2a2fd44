package main

import (
	"pomade/config"
	"pomade/di"
	"pomade/shared/logger"
)

// @title Pomade API
// @version 1.0
// @description Barbershop booking API: staff schedules, appointments and messaging.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
