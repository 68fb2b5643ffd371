// Package main provides the LCOE API HTTP server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.sunfold.io/lcoe-api/internal/adapter/store"
	"go.sunfold.io/lcoe-api/internal/adapter/store/csv"
	httpHandler "go.sunfold.io/lcoe-api/internal/http"
	"go.sunfold.io/lcoe-api/internal/usecase"
)

const version = "0.1.0"

func main() {
	// Parse command-line flags.
	showHelp := flag.Bool("help", false, "Show usage information")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}

	if *showVersion {
		fmt.Printf("lcoe-api version %s\n", version)
		return
	}

	// Load configuration from environment.
	port := getEnv("PORT", "8080")
	scenarioDir := getEnv("SCENARIO_DIR", "./data/scenarios")

	log.Printf("Starting LCOE API server...")
	log.Printf("Port: %s", port)
	log.Printf("Scenario directory: %s", scenarioDir)

	// Initialize scenario store.
	scenarioStore := csv.NewScenarioStore(scenarioDir)

	// Cast to interface.
	var scenarios store.ScenarioLoader = scenarioStore

	// Initialize use case.
	surfaceUC := usecase.NewSurfaceUseCase(scenarios)

	// Setup router.
	router := httpHandler.SetupRouter(surfaceUC)

	// Start server.
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Server listening on %s", addr)
	log.Printf("Health check: http://localhost:%s/health", port)
	log.Printf("API endpoints:")
	log.Printf("  - GET  /v1/lcoe/surface")
	log.Printf("  - POST /v1/lcoe/selection")
	log.Printf("  - GET  /v1/lcoe/selection")
	log.Printf("  - GET  /v1/assumptions")
	log.Printf("  - GET  /v1/scenarios")

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// printUsage prints usage information.
func printUsage() {
	fmt.Printf("LCOE API Server v%s\n\n", version)
	fmt.Println("USAGE:")
	fmt.Println("  lcoe-api [flags]")
	fmt.Println()
	fmt.Println("FLAGS:")
	fmt.Println("  -help          Show this help message")
	fmt.Println("  -version       Show version information")
	fmt.Println()
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("  PORT                    Server port (default: 8080)")
	fmt.Println("  SCENARIO_DIR            Scenario preset directory (default: ./data/scenarios)")
	fmt.Println("  CORS_ALLOWED_ORIGINS    Comma-separated list of allowed origins (default: all origins)")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Start server with default settings")
	fmt.Println("  lcoe-api")
	fmt.Println()
	fmt.Println("  # Start server on custom port")
	fmt.Println("  PORT=3000 lcoe-api")
	fmt.Println()
	fmt.Println("API ENDPOINTS:")
	fmt.Println("  GET  /health                   Health check")
	fmt.Println("  GET  /v1/lcoe/surface          Evaluate the LCOE surface")
	fmt.Println("  POST /v1/lcoe/selection        Resolve a point selection")
	fmt.Println("  GET  /v1/lcoe/selection        Read the current selection")
	fmt.Println("  GET  /v1/assumptions           Input options and assumption notes")
	fmt.Println("  GET  /v1/scenarios             List preset scenarios")
	fmt.Println()
}
