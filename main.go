package main

import (
	"log"

	"github.com/velstore/product-intake/config"
	"github.com/velstore/product-intake/service"
)

func main() {
	cfg, err := config.InitConfig("./config/config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	intakeService := service.NewService(cfg)
	if err := intakeService.StartService(); err != nil {
		log.Fatalf("failed to start intake service: %v", err)
	}
}
