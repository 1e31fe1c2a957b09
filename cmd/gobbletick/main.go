package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/rustyeddy/gobbletick/cmd/gobbletick/cmd"
)

func main() {
	// Pick up FINNHUB_TOKEN from a local .env if one exists.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
