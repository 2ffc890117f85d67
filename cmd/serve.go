package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/metalingusman/immich-deduper/internal/config"
	"github.com/metalingusman/immich-deduper/internal/database"
	"github.com/metalingusman/immich-deduper/internal/database/postgres"
	"github.com/metalingusman/immich-deduper/internal/immich"
	"github.com/metalingusman/immich-deduper/internal/selection"
	"github.com/metalingusman/immich-deduper/internal/web"
	"github.com/metalingusman/immich-deduper/internal/web/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the Immich Deduper web server.

The server evaluates duplicate clusters pushed or pulled into it, keeps
the selection state in sync with the rendered card surface, and streams
selection changes to connected clients.

Without DATABASE_URL the selection state and settings live in memory
only. Without IMMICH_URL the pull and trash endpoints are disabled and
candidates must be pushed by the client.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
}

// resolveServeHostPort resolves port and host from flags and environment variables.
func resolveServeHostPort(cmd *cobra.Command) (int, string) {
	port := mustGetInt(cmd, "port")
	host := mustGetString(cmd, "host")

	if envPort := os.Getenv("WEB_PORT"); envPort != "" {
		fmt.Sscanf(envPort, "%d", &port)
	}
	if envHost := os.Getenv("WEB_HOST"); envHost != "" {
		host = envHost
	}
	return port, host
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	var settingsRepo database.SettingsRepository
	var mirror selection.Mirror
	if cfg.Database.URL != "" {
		fmt.Printf("Connecting to PostgreSQL database...\n")
		pool, err := postgres.Initialize(&cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to initialize PostgreSQL: %w", err)
		}
		defer pool.Close()

		settingsRepo = postgres.NewSettingsRepository(pool)
		mirror = postgres.NewSelectionRepository(pool)
		fmt.Printf("Selection state persistence enabled (PostgreSQL)\n")
	} else {
		fmt.Printf("DATABASE_URL not set, keeping selection state in memory\n")
	}

	var client *immich.Immich
	if cfg.Immich.URL != "" {
		var err error
		client, err = immich.NewImmich(cfg.Immich.URL, cfg.Immich.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create Immich client: %w", err)
		}
		if me, err := client.GetMe(); err != nil {
			fmt.Printf("Warning: Immich connection check failed: %v\n", err)
		} else {
			fmt.Printf("Connected to Immich as %s\n", me.Email)
		}
	} else {
		fmt.Printf("IMMICH_URL not set, pull and trash endpoints disabled\n")
	}

	deduper := handlers.NewDeduperHandler(cfg, settingsRepo, mirror, client)
	port, host := resolveServeHostPort(cmd)

	server := web.NewServer(cfg, port, host, deduper)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Immich Deduper on http://%s:%d\n", host, port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
