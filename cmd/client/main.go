package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/shivam13669/storiesby-auth/internal/cli"
	"github.com/shivam13669/storiesby-auth/internal/client"
	"github.com/shivam13669/storiesby-auth/internal/config"
	"github.com/shivam13669/storiesby-auth/internal/logger"
	"github.com/shivam13669/storiesby-auth/internal/session"
)

func main() {
	logger.Init()

	cfg, err := config.LoadClient()
	if err != nil {
		logger.Fatal("invalid configuration", map[string]any{
			"error": err.Error(),
		})
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	store, err := session.OpenSQLiteStore(cfg.SessionDBPath)
	if err != nil {
		logger.Fatal("failed to open session store", map[string]any{
			"error": err.Error(),
		})
	}
	defer store.Close()

	api := client.New(cfg.ServerURL)
	manager := session.NewManager(api, store)

	app := cli.NewApp(api, manager, os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil {
		logger.Fatal("cli failed", map[string]any{
			"error": err.Error(),
		})
	}
}
