package main

import (
	"context"
	"log/slog"
	"os"

	"chatdesk/internal/app"
	"chatdesk/internal/config"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	config.LoadDotEnv()
	server := config.LoadServer("HTTP_PORT", "8000")
	storage, err := config.LoadStorage()
	if err != nil {
		slog.Error("invalid storage configuration", "err", err)
		os.Exit(1)
	}

	// ---- Service ----
	h, err := app.NewDesk(ctx, app.DeskOptions{
		Server:      server,
		Storage:     storage,
		ParamPrefix: config.ParamPrefix(),
	})
	if err != nil {
		slog.Error("failed to create desk service", "err", err)
		os.Exit(1)
	}

	if err := app.Serve(ctx, "desk", server.Port, h); err != nil {
		slog.Error("desk server failed", "err", err)
		os.Exit(1)
	}
}
