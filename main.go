package main

import (
	"log"

	"github.com/kipkorir-dev/procpulse-agent/config"
	"github.com/kipkorir-dev/procpulse-agent/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
