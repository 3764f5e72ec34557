package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/cropdoctor/cropdoctor/internal/cli"
)

func main() {
	// Provider keys and server URL may come from a .env file
	_ = godotenv.Load()

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
