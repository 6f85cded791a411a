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
	server := config.LoadServer("PERSONA_HTTP_PORT", "8001")

	// ---- Service ----
	h, err := app.NewPersona(ctx, app.PersonaOptions{
		Server:      server,
		ParamPrefix: config.ParamPrefix(),
	})
	if err != nil {
		slog.Error("failed to create persona service", "err", err)
		os.Exit(1)
	}

	if err := app.Serve(ctx, "persona", server.Port, h); err != nil {
		slog.Error("persona server failed", "err", err)
		os.Exit(1)
	}
}
