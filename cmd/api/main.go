package main

import (
	"log"

	"bank-core/internal/pkg/components"
	"bank-core/internal/pkg/logging"
)

func main() {
	container, err := components.New()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	logging.Info("bank core initialized", map[string]interface{}{
		"port": container.GetConfig().Server.Port,
	})

	if err := container.Start(); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
