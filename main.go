package main

import (
	"log"

	"github.com/Conceptual-Machines/magda-charts/internal/cli"
	"github.com/joho/godotenv"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cli.Execute(releaseVersion)
}
