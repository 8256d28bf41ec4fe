package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tumkwe/invest/internal/api"
	"github.com/tumkwe/invest/internal/api/handlers"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the collection service and API server",
	Long: `Starts the scheduled collection service together with the REST API.

This command:
- Restores the persisted task schedule
- Polls for due tasks and dispatches them
- Serves the collection API

Endpoints:
  GET    /health                          - Health check
  GET    /metrics                         - Prometheus metrics
  GET    /api/collection/summary          - Combined validation report
  GET    /api/collection/reports          - Latest reports per symbol
  GET    /api/collection/symbols          - Monitored symbols
  POST   /api/collection/symbols          - Add a symbol
  DELETE /api/collection/symbols/{symbol} - Remove a symbol
  GET    /api/collection/tasks            - Scheduled tasks
  POST   /api/collection/collect          - Trigger immediate collection

Example:
  go run ./cmd/invest start
  go run ./cmd/invest start --symbols AAPL,MSFT --port 8086`,
	RunE: runStart,
}

var (
	startSymbols string
	startPort    string
)

func init() {
	rootCmd.AddCommand(startCmd)

	// Flags
	startCmd.Flags().StringVar(&startSymbols, "symbols", "", "comma-separated symbols to monitor")
	startCmd.Flags().StringVar(&startPort, "port", "", "API server port (overrides PORT)")
}

func runStart(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Tumkwe Invest Collection Service ===")

	application, err := wire()
	if err != nil {
		return err
	}
	defer application.close()

	if startPort != "" {
		application.cfg.Port = startPort
	}

	log := application.logger
	manager := application.manager

	// Seed symbols from the flag. Existing schedules are kept.
	for _, symbol := range strings.Split(startSymbols, ",") {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol != "" {
			manager.AddSymbol(symbol)
		}
	}

	if len(manager.Symbols()) == 0 {
		log.Warn("No symbols monitored; add some via the API or --symbols")
	}

	// Start the collection manager
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := manager.Start(ctx); err != nil {
		return fmt.Errorf("start manager: %w", err)
	}

	// Start the API server
	collectionHandler := handlers.NewCollectionHandler(manager, log)
	router := api.NewRouter(collectionHandler, log, application.cfg.MetricsEnabled)
	server := api.New(application.cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Service running on http://localhost:%s\n", application.cfg.Port)
	fmt.Printf("   Monitored symbols: %s\n", strings.Join(manager.Symbols(), ", "))
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	cancel()
	manager.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}

	fmt.Println("✅ Service stopped")
	return nil
}
