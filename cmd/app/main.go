package main

import (
	"log"

	"checkout-svc/config"
	"checkout-svc/internal/app"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Config error: %s", err)
	}
	app.Run(cfg)
}
