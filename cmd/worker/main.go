package main

import (
	"context"
	"fixmycondo/config"
	"fixmycondo/di"
	"fixmycondo/shared/logger"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg := config.Get()

	logger.Init(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	worker := di.InitializeWorker()
	worker.Run(ctx)
}
