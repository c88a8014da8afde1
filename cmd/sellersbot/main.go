package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/maz-edu/sellersbot/core/logger"
	"github.com/maz-edu/sellersbot/internal/app"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := app.Run(ctx, cfgPath)

	if shutdownErr := logger.Shutdown(); shutdownErr != nil {
		log.Printf("logger shutdown error: %v", shutdownErr)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("sellersbot: %v", err)
	}
}
