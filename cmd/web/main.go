package main

import (
	"setlist_backend/internal/app"
	"setlist_backend/internal/logger"
)

func main() {
	a, err := app.New()
	if err != nil {
		logger.Fatal("failed to start application", "error", err)
	}
	if err := a.Run(); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}
