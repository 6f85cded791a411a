package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"chatdesk/handler"
	"chatdesk/internal/app"
	"chatdesk/internal/config"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	storage, err := config.LoadStorage()
	if err != nil {
		slog.Error("invalid storage configuration", "err", err)
		os.Exit(1)
	}

	// ---- Service ----
	router, err := app.NewDesk(ctx, app.DeskOptions{
		Server:      config.LoadServer("HTTP_PORT", "8000"),
		Storage:     storage,
		ParamPrefix: config.ParamPrefix(),
	})
	if err != nil {
		slog.Error("failed to create desk service", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	h, err := handler.NewHandler(router)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
